// Command mock_fastq writes one pair of random, barcode-tagged FASTQ files.
package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/cliutil"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/fastqgen"
)

const (
	minIndexLength = 6
	maxIndexLength = 12
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cliutil.SetupLogging(stderr, false)

	var (
		opts    fastqgen.Options
		seed    int64
		verbose bool
		started bool
	)
	cmd := &cobra.Command{
		Use:           "mock_fastq",
		Short:         "Generate a FASTQ file with random sequences.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			started = true
			cmd.SilenceUsage = true
			if verbose {
				cliutil.SetupLogging(stderr, true)
			}

			if opts.UMILength < 0 || opts.UMILength > fastqgen.MaxUMILength {
				return cliutil.Usagef("--umi-len must be between 0 and %d", fastqgen.MaxUMILength)
			}
			if opts.Mismatches < 0 || opts.Mismatches > fastqgen.MaxMismatches {
				return cliutil.Usagef("--allowed-mismatches must be 0, 1 or 2")
			}
			if len(opts.I7) < minIndexLength || len(opts.I7) > maxIndexLength {
				return cliutil.Usagef("i7 sequence must be between %d and %d characters in length.", minIndexLength, maxIndexLength)
			}

			opts.Source = fastqgen.NewSource(seed)
			stats, err := fastqgen.Synthesize(opts)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"reads": stats.Reads,
				"i7":    stats.I7Variants,
				"i5":    stats.I5Variants,
			}).Debug("done")
			fmt.Fprintf(stdout, "FASTQ file generated: %s\n", opts.Output)
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.Output, "output-file", "o", "", "Name of the output FASTQ file")
	f.IntVarP(&opts.Reads, "num-sequences", "n", 1000, "Number of sequences to generate")
	f.IntVarP(&opts.ReadLength, "sequence-length", "l", 100, "Length of each sequence")
	f.StringVar(&opts.I7, "i7", "", "I7 sequence (6 to 12 characters)")
	f.StringVar(&opts.I5, "i5", "", "I5 sequence (6 to 12 characters)")
	f.IntVar(&opts.UMILength, "umi-len", 0, "UMI length (0 to 12)")
	f.IntVar(&opts.Mismatches, "allowed-mismatches", 0, "Allowed mismatches (0, 1 or 2)")
	f.Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")
	_ = cmd.MarkFlagRequired("output-file")
	_ = cmd.MarkFlagRequired("i7")

	err := cmd.Execute()
	if err == nil {
		return cliutil.ExitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if !started {
		// flag parsing and required flags
		return cliutil.ExitUsage
	}
	return cliutil.ExitCode(err)
}
