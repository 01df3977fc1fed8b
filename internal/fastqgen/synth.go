// Package fastqgen synthesizes paired-end FASTQ fixtures: a random insert
// shared by both mates, with R2 carrying the i7 barcode, an optional UMI and
// the i5 barcode after the insert.
package fastqgen

import (
	"errors"
	"fmt"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/barcode"
)

const (
	MaxUMILength  = 12
	MaxMismatches = 2

	dnaBases = "ACGT"

	// Phred+33, Q0..Q40
	qualities = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHI"

	cacheSize = 128
)

// ErrInvalidOptions is returned for options outside the accepted ranges.
var ErrInvalidOptions = errors.New("invalid synthesis options")

// Options describes one sample's worth of reads.
type Options struct {
	Output     string // prefix of the two output files
	Reads      int
	ReadLength int
	I7         string
	I5         string // may be empty
	UMILength  int
	Mismatches int
	Source     Source // nil seeds from the clock
}

// Stats describes what Synthesize wrote.
type Stats struct {
	Reads      int
	R1         string
	R2         string
	I7Variants int
	I5Variants int
}

// Paths returns the R1 and R2 file names for an output prefix.
func Paths(output string) (r1, r2 string) {
	return output + "_R1.fastq.gz", output + "_R2.fastq.gz"
}

func (o *Options) validate() error {
	switch {
	case o.Output == "":
		return fmt.Errorf("%w: empty output name", ErrInvalidOptions)
	case o.Reads < 1:
		return fmt.Errorf("%w: read count %d", ErrInvalidOptions, o.Reads)
	case o.ReadLength < 1:
		return fmt.Errorf("%w: read length %d", ErrInvalidOptions, o.ReadLength)
	case o.I7 == "":
		return fmt.Errorf("%w: empty i7", ErrInvalidOptions)
	case o.UMILength < 0 || o.UMILength > MaxUMILength:
		return fmt.Errorf("%w: UMI length %d not in [0, %d]", ErrInvalidOptions, o.UMILength, MaxUMILength)
	case o.Mismatches < 0 || o.Mismatches > MaxMismatches:
		return fmt.Errorf("%w: %d mismatches not in [0, %d]", ErrInvalidOptions, o.Mismatches, MaxMismatches)
	}
	return nil
}

// variants lists the mismatch set of a single barcode. An empty barcode
// contributes an empty suffix.
func variants(bc string, mismatches int) ([]string, error) {
	if bc == "" {
		return []string{""}, nil
	}
	set, err := barcode.Expand([]string{bc}, mismatches)
	if err != nil {
		return nil, err
	}
	return set.Members(), nil
}

func newRecord(name string, s, q []byte) (*fastx.Record, error) {
	sq, err := seq.NewSeqWithQual(seq.DNA, s, q)
	if err != nil {
		return nil, err
	}
	return &fastx.Record{ID: []byte(name), Name: []byte(name), Seq: sq}, nil
}

// Synthesize writes opts.Reads read pairs to <Output>_R1.fastq.gz and
// <Output>_R2.fastq.gz, replacing existing files. Both streams are closed
// before it returns, whatever the outcome.
func Synthesize(opts Options) (stats Stats, err error) {
	if err := opts.validate(); err != nil {
		return stats, err
	}

	i7s, err := variants(opts.I7, opts.Mismatches)
	if err != nil {
		return stats, fmt.Errorf("i7: %w", err)
	}
	i5s, err := variants(opts.I5, opts.Mismatches)
	if err != nil {
		return stats, fmt.Errorf("i5: %w", err)
	}

	src := opts.Source
	if src == nil {
		src = NewSource(0)
	}

	r1Path, r2Path := Paths(opts.Output)
	w1, err := NewRecordWriter(r1Path, cacheSize)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w1.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", r1Path, cerr)
		}
	}()
	w2, err := NewRecordWriter(r2Path, cacheSize)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w2.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", r2Path, cerr)
		}
	}()

	suffixLength := len(opts.I7) + opts.UMILength + len(opts.I5)
	for i := 1; i <= opts.Reads; i++ {
		var umi []byte
		if opts.UMILength > 0 {
			umi = randomBytes(src, dnaBases, opts.UMILength)
		}
		sequence := randomBytes(src, dnaBases, opts.ReadLength)

		r1, err := newRecord(ReadName(i, 1), sequence, randomBytes(src, qualities, len(sequence)))
		if err != nil {
			return stats, err
		}
		w1.Write(r1)

		mate := make([]byte, 0, len(sequence)+suffixLength)
		mate = append(mate, sequence...)
		mate = append(mate, pick(src, i7s)...)
		mate = append(mate, umi...)
		mate = append(mate, pick(src, i5s)...)

		r2, err := newRecord(ReadName(i, 2), mate, randomBytes(src, qualities, len(mate)))
		if err != nil {
			return stats, err
		}
		w2.Write(r2)
	}

	return Stats{
		Reads:      opts.Reads,
		R1:         r1Path,
		R2:         r2Path,
		I7Variants: len(i7s),
		I5Variants: len(i5s),
	}, nil
}
