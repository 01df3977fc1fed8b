package barcode

import (
	"fmt"
	"strings"
)

// Conflict is one sequence produced by two input barcodes.
type Conflict struct {
	Sequence string
	First    string
	Second   string
}

// AmbiguousError reports barcodes whose mismatch sets overlap.
type AmbiguousError struct {
	Mismatches int
	Conflicts  []Conflict
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d sequence(s) shared at %d mismatch(es)", ErrAmbiguousBarcodeSet, len(e.Conflicts), e.Mismatches)
	for i, c := range e.Conflicts {
		if i == 3 {
			b.WriteString(", ...")
			break
		}
		fmt.Fprintf(&b, "; %s from %s and %s", c.Sequence, c.First, c.Second)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrAmbiguousBarcodeSet) hold.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguousBarcodeSet
}
