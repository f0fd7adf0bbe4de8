// Package main provides bloomstat, which sizes a Bloom filter, loads it and
// compares the observed false-positive rate with the estimate.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BLOOMSTAT"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "bloomstat [file]",
		Short: "Measure a Bloom filter's false-positive rate",
		Long: `bloomstat sizes a filter for the given probability and expected count,
inserts the lines of file ("-" for stdin) or random elements when no file is
given, then probes random absent elements.

Every flag can also be set through the environment, e.g. BLOOMSTAT_PROBABILITY.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), "[bloomstat] ", log.LstdFlags)
			if cfg.Quiet {
				logger.SetOutput(io.Discard)
			}
			var in io.Reader
			if len(args) == 1 {
				r, closeFn, err := openInput(args[0], cmd.InOrStdin())
				if err != nil {
					return err
				}
				defer closeFn()
				in = r
			}
			rep, err := run(cfg, in, logger)
			if err != nil {
				return err
			}
			rep.render(cmd.OutOrStdout())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Float64P("probability", "p", defaultProbability, "target false-positive probability, in (0, 1)")
	flags.IntP("expected", "n", defaultExpected, "expected number of elements")
	flags.Int("probes", defaultProbes, "number of absent elements to probe")
	flags.String("hash", hashMurmur2, "base hash: murmur2 or murmur3")
	flags.Uint64("seed", 1, "seed of the random element generator")
	flags.BoolP("quiet", "q", false, "suppress progress logging")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func openInput(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}
