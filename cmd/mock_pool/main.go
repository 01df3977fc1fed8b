// Command mock_pool generates a fixture pair for every sample in a sample
// sheet and pools them into one lane-level pair of FASTQ files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Altius/stampipes/programs/mock_fastq/internal/cliutil"
	"github.com/Altius/stampipes/programs/mock_fastq/internal/driver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// overlay copies every flag the user set onto cfg, so flags win over the
// configuration file.
func overlay(fs *pflag.FlagSet, flags, cfg *driver.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("sample-sheet", func() { cfg.SampleSheet = flags.SampleSheet })
	set("output", func() { cfg.Output = flags.Output })
	set("read-length", func() { cfg.ReadLength = flags.ReadLength })
	set("umi-len", func() { cfg.UMILength = flags.UMILength })
	set("allowed-mismatches", func() { cfg.Mismatches = flags.Mismatches })
	set("reads", func() { cfg.Reads = flags.Reads })
	set("seed", func() { cfg.Seed = flags.Seed })
	set("keep-intermediates", func() { cfg.KeepIntermediates = flags.KeepIntermediates })
	set("check-collisions", func() { cfg.CheckCollisions = flags.CheckCollisions })
	set("progress", func() { cfg.Progress = flags.Progress })
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cliutil.SetupLogging(stderr, false)

	var (
		flags      = *driver.DefaultConfig()
		configFile string
		cpuprofile string
		memprofile string
		verbose    bool
		started    bool
	)
	cmd := &cobra.Command{
		Use:           "mock_pool",
		Short:         "Generate per-sample FASTQ fixtures from a sample sheet and pool them.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			started = true
			cmd.SilenceUsage = true
			if verbose {
				cliutil.SetupLogging(stderr, true)
			}

			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("could not start CPU profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			cfg := driver.DefaultConfig()
			if configFile != "" {
				log.Println("Reading configuration")
				if err := driver.ReadConfigFile(configFile, cfg); err != nil {
					return fmt.Errorf("could not read config file: %w", err)
				}
			}
			overlay(cmd.Flags(), &flags, cfg)

			log.Println("Starting generation")
			summary, err := driver.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"run":     summary.RunID,
				"samples": summary.Samples,
				"reads":   summary.Reads,
			}).Info("done")
			fmt.Fprintln(stdout, summary.R1)
			fmt.Fprintln(stdout, summary.R2)

			if memprofile != "" {
				f, err := os.Create(memprofile)
				if err != nil {
					return fmt.Errorf("could not create memory profile: %w", err)
				}
				defer f.Close()
				runtime.GC() // get up-to-date statistics
				if err := pprof.WriteHeapProfile(f); err != nil {
					return fmt.Errorf("could not write memory profile: %w", err)
				}
			}
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&configFile, "configfile", "c", "", "read configuration from JSON `file`")
	f.StringVarP(&flags.SampleSheet, "sample-sheet", "s", "", "sample sheet `file`")
	f.StringVarP(&flags.Output, "output", "o", "", "prefix of the pooled and per-sample files")
	f.IntVarP(&flags.ReadLength, "read-length", "l", flags.ReadLength, "length of each insert")
	f.IntVar(&flags.UMILength, "umi-len", flags.UMILength, "UMI length (0 to 12)")
	f.IntVar(&flags.Mismatches, "allowed-mismatches", flags.Mismatches, "allowed barcode mismatches (0, 1 or 2)")
	f.IntVarP(&flags.Reads, "reads", "n", 0, "reads per sample, replacing the sheet counts (0 keeps them)")
	f.Int64Var(&flags.Seed, "seed", 0, "random seed (0 seeds from the clock)")
	f.BoolVar(&flags.KeepIntermediates, "keep-intermediates", false, "keep the per-sample files")
	f.BoolVar(&flags.CheckCollisions, "check-collisions", false, "fail if any two dual indices share a mismatch variant")
	f.BoolVar(&flags.Progress, "progress", false, "show a progress bar")
	f.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	f.StringVar(&memprofile, "memprofile", "", "write memory profile to `file`")
	f.BoolVarP(&verbose, "verbose", "v", false, "log debug detail")

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return cliutil.ExitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if !started {
		return cliutil.ExitUsage
	}
	return cliutil.ExitCode(err)
}
