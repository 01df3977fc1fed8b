package fastqgen

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWriterFlushesAcrossBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batches.fastq.gz")
	w, err := NewRecordWriter(path, 3)
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		record, err := newRecord(fmt.Sprintf("r%d", i), []byte("ACGT"), []byte("IIII"))
		require.NoError(t, err)
		w.Write(record)
	}
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")

	lines := readLines(t, path)
	require.Len(t, lines, 40)
	for i := 0; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf("@r%d", i+1), lines[4*i], "records keep their order")
	}
}

func TestRecordWriterEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fastq.gz")
	w, err := NewRecordWriter(path, 8)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Empty(t, readLines(t, path))
}

func TestRecordWriterReportsWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	w, err := NewRecordWriter("/dev/full", 2)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		record, err := newRecord(fmt.Sprintf("r%d", i), []byte("ACGTACGTAC"), []byte("IIIIIIIIII"))
		require.NoError(t, err)
		w.Write(record)
	}
	assert.ErrorIs(t, w.Close(), syscall.ENOSPC)
	assert.NoError(t, w.Close(), "the error is reported once")
}

func TestNewRecordWriterUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := NewRecordWriter(filepath.Join(file, "x.fastq.gz"), 1)
	assert.Error(t, err)
}
