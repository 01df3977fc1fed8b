package fastqgen

import "fmt"

const (
	// fixed instrument, lane and tile
	readNamePrefix = "FC01L1C001R001"

	// MaxReadIndex is the largest index the 8-digit header field holds.
	// Larger indices wrap and repeat earlier headers.
	MaxReadIndex = 99999999
)

// ReadIndex maps a 1-based read number onto the header field.
func ReadIndex(i int) int {
	if i > MaxReadIndex {
		return i % MaxReadIndex
	}
	return i
}

// ReadName is the header of read i for the given mate, without the leading @.
func ReadName(i, mate int) string {
	return fmt.Sprintf("%s%08d/%d", readNamePrefix, ReadIndex(i), mate)
}
