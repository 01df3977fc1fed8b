package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/cliutil"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/pool"
)

func TestRunGenerates(t *testing.T) {
	out := filepath.Join(t.TempDir(), "T1")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-o", out, "-n", "3", "-l", "10",
		"--i7", "ACGTACGT", "--i5", "TTTTAAAA",
		"--umi-len", "4", "--allowed-mismatches", "1", "--seed", "99",
	}, &stdout, &stderr)
	require.Equal(t, cliutil.ExitOK, code, stderr.String())
	assert.Equal(t, "FASTQ file generated: "+out+"\n", stdout.String())

	for _, suffix := range []string{"_R1.fastq.gz", "_R2.fastq.gz"} {
		n, err := pool.CountRecords(out + suffix)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	}
}

func TestRunBadI7Length(t *testing.T) {
	for _, i7 := range []string{"ACGTA", "ACGTACGTACGTA"} {
		out := filepath.Join(t.TempDir(), "bad")
		var stdout, stderr bytes.Buffer
		code := run([]string{"-o", out, "--i7", i7}, &stdout, &stderr)
		assert.Equal(t, cliutil.ExitUsage, code)
		assert.Contains(t, stderr.String(), "Error: i7 sequence must be between 6 and 12 characters in length.")
		assert.NoFileExists(t, out+"_R1.fastq.gz")
		assert.NoFileExists(t, out+"_R2.fastq.gz")
	}
}

func TestRunUsageErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x")
	for name, args := range map[string][]string{
		"missing i7":     {"-o", out},
		"missing output": {"--i7", "ACGTACGT"},
		"umi":            {"-o", out, "--i7", "ACGTACGT", "--umi-len", "13"},
		"mismatches":     {"-o", out, "--i7", "ACGTACGT", "--allowed-mismatches", "3"},
		"not a number":   {"-o", out, "--i7", "ACGTACGT", "-n", "many"},
		"bad base":       {"-o", out, "--i7", "ACGTACGZ"},
		"zero reads":     {"-o", out, "--i7", "ACGTACGT", "-n", "0"},
	} {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, cliutil.ExitUsage, run(args, &stdout, &stderr), stderr.String())
			assert.NotContains(t, stdout.String(), "FASTQ file generated")
		})
	}
}

func TestRunUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", filepath.Join(file, "x"), "--i7", "ACGTACGT", "-n", "2"}, &stdout, &stderr)
	assert.Equal(t, cliutil.ExitFailure, code)
}

func TestRunDiskFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	out := filepath.Join(t.TempDir(), "full")
	require.NoError(t, os.Symlink("/dev/full", out+"_R1.fastq.gz"))
	require.NoError(t, os.Symlink("/dev/full", out+"_R2.fastq.gz"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", out, "--i7", "ACGTACGT", "-n", "5000"}, &stdout, &stderr)
	assert.Equal(t, cliutil.ExitFailure, code)
	assert.NotContains(t, stdout.String(), "FASTQ file generated")
}
