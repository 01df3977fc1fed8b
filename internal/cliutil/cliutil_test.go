package cliutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/barcode"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/driver"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/fastqgen"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/samplesheet"
)

func TestExitCode(t *testing.T) {
	_, ambiguous := barcode.Expand([]string{"AAAAAA", "AAAAAT"}, 1)

	for _, tc := range []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("%w: i7 too short", ErrUsage), ExitUsage},
		{Usagef("bad %s", "flag"), ExitUsage},
		{fmt.Errorf("sample S1: %w", barcode.ErrInvalidBarcode), ExitUsage},
		{fmt.Errorf("x: %w", fastqgen.ErrInvalidOptions), ExitUsage},
		{fmt.Errorf("x: %w", samplesheet.ErrInvalidSheet), ExitUsage},
		{fmt.Errorf("x: %w", driver.ErrInvalidConfig), ExitUsage},
		{fmt.Errorf("sample S2: %w", ambiguous), ExitAmbiguous},
		{os.ErrPermission, ExitFailure},
		{errors.New("disk full"), ExitFailure},
	} {
		assert.Equal(t, tc.want, ExitCode(tc.err), "%v", tc.err)
	}
}

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(&buf, false)
	log.Debug("hidden")
	log.Info("Starting")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=Starting")

	SetupLogging(&buf, true)
	log.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	SetupLogging(os.Stderr, false)
}

func TestUsagef(t *testing.T) {
	err := Usagef("i7 sequence must be between %d and %d characters in length.", 6, 12)
	assert.EqualError(t, err, "i7 sequence must be between 6 and 12 characters in length.")
	assert.ErrorIs(t, err, ErrUsage)
}
