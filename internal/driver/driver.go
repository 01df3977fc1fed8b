// Package driver generates one fixture pair per sample sheet row and pools
// them into a single pair of lane-level files.
package driver

import (
	"context"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/fastqgen"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/pool"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/samplesheet"
)

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Samples int
	Skipped []string // samples with no reads to generate
	Reads   int
	R1      string
	R2      string
}

// Run generates every sample in sheet order, concatenates the per-sample
// files into <Output>_R1.fastq.gz and <Output>_R2.fastq.gz, checks the
// pooled record counts, and deletes the intermediates unless asked to keep
// them. Cancellation is honoured between samples.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, err := samplesheet.ReadFile(cfg.SampleSheet)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s lists no samples", samplesheet.ErrInvalidSheet, cfg.SampleSheet)
	}
	if cfg.CheckCollisions {
		if err := checkCollisions(entries, cfg.Mismatches); err != nil {
			return nil, err
		}
	}

	summary := &Summary{RunID: uuid.New().String()}
	logger := log.WithField("run", summary.RunID)
	src := fastqgen.NewSource(cfg.Seed)

	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.Full.Start(len(entries))
		defer bar.Finish()
	}

	var r1s, r2s []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reads := cfg.readsFor(e)
		if reads == 0 {
			logger.WithField("sample", e.SampleID).Warn("no reads requested, skipping")
			summary.Skipped = append(summary.Skipped, e.SampleID)
			if bar != nil {
				bar.Increment()
			}
			continue
		}

		logger.WithField("sample", e.SampleID).Infof("generating fastq files for sample %s", e.SampleID)
		stats, err := fastqgen.Synthesize(fastqgen.Options{
			Output:     cfg.Output + "-" + e.SampleID,
			Reads:      reads,
			ReadLength: cfg.ReadLength,
			I7:         e.I7,
			I5:         e.I5,
			UMILength:  cfg.UMILength,
			Mismatches: cfg.Mismatches,
			Source:     src,
		})
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", e.SampleID, err)
		}
		logger.WithFields(log.Fields{
			"sample": e.SampleID,
			"reads":  stats.Reads,
			"i7":     stats.I7Variants,
			"i5":     stats.I5Variants,
		}).Debug("sample done")

		r1s = append(r1s, stats.R1)
		r2s = append(r2s, stats.R2)
		summary.Samples++
		summary.Reads += reads
		if bar != nil {
			bar.Increment()
		}
	}
	if summary.Samples == 0 {
		return nil, fmt.Errorf("%w: no sample has reads to generate", samplesheet.ErrInvalidSheet)
	}

	logger.Info("Merging all files ...")
	summary.R1, summary.R2 = fastqgen.Paths(cfg.Output)
	if err := pool.Concat(summary.R2, r2s); err != nil {
		return nil, err
	}
	if err := pool.Concat(summary.R1, r1s); err != nil {
		return nil, err
	}
	for _, pooled := range []string{summary.R1, summary.R2} {
		n, err := pool.CountRecords(pooled)
		if err != nil {
			return nil, err
		}
		if n != summary.Reads {
			return nil, fmt.Errorf("%s holds %d records, want %d", pooled, n, summary.Reads)
		}
	}

	if !cfg.KeepIntermediates {
		logger.Info("deleting sample files..")
		if err := pool.Remove(append(r1s, r2s...)); err != nil {
			return nil, err
		}
	}
	return summary, nil
}
