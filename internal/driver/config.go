package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/barcode"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/fastqgen"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/samplesheet"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config maps a sample sheet onto pooled output files
type Config struct {
	SampleSheet       string `json:"sample_sheet"`
	Output            string `json:"output"`      // Prefix of the pooled files and the per-sample intermediates
	ReadLength        int    `json:"read_length"` // Insert length of every read
	UMILength         int    `json:"umi_length"`
	Mismatches        int    `json:"mismatches"`
	Reads             int    `json:"reads"` // When > 0, replaces every sheet read count
	Seed              int64  `json:"seed"`  // 0 seeds from the clock
	KeepIntermediates bool   `json:"keep_intermediates"`
	CheckCollisions   bool   `json:"check_collisions"`
	Progress          bool   `json:"progress"`
}

// DefaultConfig matches the settings the DS03 fixture was generated with.
func DefaultConfig() *Config {
	return &Config{
		ReadLength: 100,
		UMILength:  8,
		Mismatches: 1,
	}
}

// ReadConfigFile overlays the JSON configuration in filename onto c.
func ReadConfigFile(filename string, c *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return configFromJSON(data, c)
}

func configFromJSON(data []byte, c *Config) error {
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks c before any output is written.
func (c *Config) Validate() error {
	switch {
	case c.SampleSheet == "":
		return fmt.Errorf("%w: no sample sheet", ErrInvalidConfig)
	case c.Output == "":
		return fmt.Errorf("%w: no output prefix", ErrInvalidConfig)
	case c.ReadLength < 1:
		return fmt.Errorf("%w: read length %d", ErrInvalidConfig, c.ReadLength)
	case c.UMILength < 0 || c.UMILength > fastqgen.MaxUMILength:
		return fmt.Errorf("%w: UMI length %d", ErrInvalidConfig, c.UMILength)
	case c.Mismatches < 0 || c.Mismatches > fastqgen.MaxMismatches:
		return fmt.Errorf("%w: %d mismatches", ErrInvalidConfig, c.Mismatches)
	case c.Reads < 0:
		return fmt.Errorf("%w: read count %d", ErrInvalidConfig, c.Reads)
	}
	return nil
}

// readsFor is the number of reads to generate for e.
func (c *Config) readsFor(e samplesheet.Entry) int {
	if c.Reads > 0 {
		return c.Reads
	}
	return e.Reads
}

// checkCollisions expands every dual index (i7 followed by i5) together,
// so that a read drawn for one sample cannot fall into another sample's
// mismatch set. The catch-all Undetermined row is left out.
func checkCollisions(entries []samplesheet.Entry, mismatches int) error {
	duals := make([]string, 0, len(entries))
	for _, e := range entries {
		if barcode.Undetermined(e.I7) && barcode.Undetermined(e.I5) {
			continue
		}
		duals = append(duals, e.I7+e.I5)
	}
	_, err := barcode.Expand(duals, mismatches)
	return err
}
