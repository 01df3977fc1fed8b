// Package barcode expands index barcodes into the set of sequences reachable
// by a bounded number of base substitutions.
package barcode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidBarcode is returned for barcodes outside the ACGTN alphabet
	// and for negative mismatch bounds.
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrAmbiguousBarcodeSet is matched by *AmbiguousError.
	ErrAmbiguousBarcodeSet = errors.New("ambiguous barcode set")
)

// substitutions a mismatched position may take. N is never produced.
var mutations = []byte{'A', 'C', 'G', 'T'}

// Set is a flat set of barcode-length sequences.
type Set map[string]struct{}

// Has reports whether bc is a member of s.
func (s Set) Has(bc string) bool {
	_, ok := s[bc]
	return ok
}

// Members returns the sequences of s in sorted order, so that draws from a
// seeded source are reproducible.
func (s Set) Members() []string {
	out := make([]string, 0, len(s))
	for bc := range s {
		out = append(out, bc)
	}
	sort.Strings(out)
	return out
}

// Validate upper-cases bc and checks it against the ACGTN alphabet.
func Validate(bc string) (string, error) {
	if bc == "" {
		return "", fmt.Errorf("%w: empty sequence", ErrInvalidBarcode)
	}
	bc = strings.ToUpper(bc)
	for i := 0; i < len(bc); i++ {
		switch bc[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return "", fmt.Errorf("%w: %q has %q at position %d", ErrInvalidBarcode, bc, bc[i], i+1)
		}
	}
	return bc, nil
}

// Undetermined reports whether bc consists only of N, as the catch-all row
// of a sample sheet does.
func Undetermined(bc string) bool {
	return bc != "" && strings.Trim(strings.ToUpper(bc), "N") == ""
}

// Neighbors returns every sequence that differs from bc at exactly k
// positions, each differing position holding a base other than the
// original. bc must already be validated.
func Neighbors(bc string, k int) []string {
	if k == 0 {
		return []string{bc}
	}
	if k < 0 || k > len(bc) {
		return nil
	}

	var out []string
	buf := []byte(bc)
	positions := make([]int, k)

	var assign func(depth int)
	assign = func(depth int) {
		if depth == k {
			out = append(out, string(buf))
			return
		}
		p := positions[depth]
		orig := bc[p]
		for _, replacement := range mutations {
			if replacement == orig {
				continue
			}
			buf[p] = replacement
			assign(depth + 1)
		}
		buf[p] = orig
	}

	var choose func(start, depth int)
	choose = func(start, depth int) {
		if depth == k {
			assign(0)
			return
		}
		for p := start; p <= len(bc)-(k-depth); p++ {
			positions[depth] = p
			choose(p+1, depth+1)
		}
	}
	choose(0, 0)
	return out
}

// Expand returns the union of all sequences within maxMismatches
// substitutions of each barcode, the barcodes themselves included.
//
// A sequence reachable from two different barcodes (or a barcode listed
// twice) makes the set ambiguous; Expand then returns an *AmbiguousError
// naming every shared sequence rather than merging them.
func Expand(barcodes []string, maxMismatches int) (Set, error) {
	if maxMismatches < 0 {
		return nil, fmt.Errorf("%w: negative mismatch bound %d", ErrInvalidBarcode, maxMismatches)
	}

	origin := make(map[string]string)
	var conflicts []Conflict
	for _, raw := range barcodes {
		bc, err := Validate(raw)
		if err != nil {
			return nil, err
		}
		for k := 0; k <= maxMismatches; k++ {
			for _, variant := range Neighbors(bc, k) {
				if first, seen := origin[variant]; seen {
					conflicts = append(conflicts, Conflict{Sequence: variant, First: first, Second: bc})
					continue
				}
				origin[variant] = bc
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, &AmbiguousError{Mismatches: maxMismatches, Conflicts: conflicts}
	}

	set := make(Set, len(origin))
	for variant := range origin {
		set[variant] = struct{}{}
	}
	return set, nil
}

// Count is the size of Expand({bc}, m) for an ACGT barcode of the given
// length: 1 + sum over k of C(length, k) * 3^k.
func Count(length, m int) int {
	total := 1
	choose, pow := 1, 1
	for k := 1; k <= m && k <= length; k++ {
		choose = choose * (length - k + 1) / k
		pow *= len(mutations) - 1
		total += choose * pow
	}
	return total
}
