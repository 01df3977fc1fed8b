// Package cliutil holds what both commands share: exit codes and logging.
package cliutil

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/barcode"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/driver"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/fastqgen"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/samplesheet"
)

// Exit codes. Input errors and ambiguous barcodes are kept apart from
// I/O failures so wrapper scripts can tell them apart.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitAmbiguous = 3
)

// ErrUsage marks bad command-line input.
var ErrUsage = errors.New("usage")

// ExitCode maps an error returned by a command onto an exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, barcode.ErrAmbiguousBarcodeSet):
		return ExitAmbiguous
	case errors.Is(err, ErrUsage),
		errors.Is(err, barcode.ErrInvalidBarcode),
		errors.Is(err, fastqgen.ErrInvalidOptions),
		errors.Is(err, driver.ErrInvalidConfig),
		errors.Is(err, samplesheet.ErrInvalidSheet):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// SetupLogging sends plain timestamped log lines to w.
func SetupLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

// Usagef returns an error whose message is exactly the formatted text and
// that matches ErrUsage.
func Usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}
