// Package pool merges per-sample gzip files into lane-level files.
//
// Merging is raw byte concatenation: a sequence of gzip members is itself a
// valid gzip stream, so nothing is recompressed.
package pool

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shenwei356/xopen"
)

// Concat writes the bytes of every src, in order, to dst, replacing dst.
func Concat(dst string, srcs []string) (err error) {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriterSize(out, 1<<20)
	for _, src := range srcs {
		if err := appendFile(w, src); err != nil {
			return err
		}
	}
	return w.Flush()
}

func appendFile(w io.Writer, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("appending %s: %w", src, err)
	}
	return nil
}

// Remove deletes every path, carrying on past failures. It returns the
// first error.
func Remove(paths []string) error {
	var first error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CountRecords decompresses a (possibly multi-member) gzip FASTQ file and
// counts its four-line records. A trailing partial record is an error.
func CountRecords(path string) (int, error) {
	r, err := xopen.Ropen(path)
	if errors.Is(err, xopen.ErrNoContent) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	lines := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		if lines%4 == 0 && (len(scanner.Bytes()) == 0 || scanner.Bytes()[0] != '@') {
			return 0, fmt.Errorf("%s: line %d: record does not start with @", path, lines+1)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if lines%4 != 0 {
		return 0, fmt.Errorf("%s: truncated record after line %d", path, lines)
	}
	return lines / 4, nil
}
