// Package samplesheet reads the whitespace-delimited sheet of samples and
// their index barcodes.
package samplesheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidSheet is returned for rows that cannot be read.
var ErrInvalidSheet = errors.New("invalid sample sheet")

const headerToken = "sample_id"

// Entry is one sample row.
type Entry struct {
	SampleID string
	I7       string
	I5       string
	Reads    int
}

// ReadFile parses the sample sheet at filename.
func ReadFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return entries, nil
}

// Parse reads entries in sheet order. Lines shorter than five characters,
// the header line and # comments are skipped. The read count is the last
// field, so both the short (sample_id i7 i5 read_cnt) and the full
// seven-column layouts are accepted.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < 5 || strings.HasPrefix(line, headerToken) || strings.HasPrefix(line, "#") {
			continue
		}
		vals := strings.Fields(line)
		if len(vals) == 0 {
			continue
		}
		if len(vals) < 4 {
			return nil, fmt.Errorf("%w: line %d: want at least 4 fields, got %d", ErrInvalidSheet, lineNo, len(vals))
		}
		reads, err := strconv.Atoi(vals[len(vals)-1])
		if err != nil || reads < 0 {
			return nil, fmt.Errorf("%w: line %d: bad read count %q", ErrInvalidSheet, lineNo, vals[len(vals)-1])
		}
		if prev, dup := seen[vals[0]]; dup {
			return nil, fmt.Errorf("%w: line %d: sample %s already listed on line %d", ErrInvalidSheet, lineNo, vals[0], prev)
		}
		seen[vals[0]] = lineNo

		entries = append(entries, Entry{
			SampleID: vals[0],
			I7:       vals[1],
			I5:       vals[2],
			Reads:    reads,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
