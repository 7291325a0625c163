package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/utkarsh5026/poolmap/internal/config"
	"github.com/utkarsh5026/poolmap/workload"
)

// errItemsFailed makes the process exit non-zero when a batch completed
// with failed slots.
var errItemsFailed = errors.New("one or more items failed")

type app struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(cfg *config.Config, out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, errOut: errOut}
	var verbose bool

	root := &cobra.Command{
		Use:           "poolmap",
		Short:         "Run a workload over a fixed-size worker pool and time it",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				a.cfg.LogLevel = "debug"
			}
			return a.cfg.ResolveDefaults()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	bindFlags(root.PersistentFlags(), cfg)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")

	root.AddCommand(a.primesCmd(), a.sqrtCmd())
	return root
}

// bindFlags exposes every config field as a flag whose default is the value
// already loaded from the environment.
func bindFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.IntVarP(&cfg.PoolSize, "pool-size", "p", cfg.PoolSize, "number of workers")
	fs.StringVar(&cfg.Dispatch, "dispatch", cfg.Dispatch, "dispatch mode: round-robin or first-available")
	fs.DurationVar(&cfg.Deadline, "deadline", cfg.Deadline, "abandon the batch after this long (0 = no deadline)")
	fs.DurationVar(&cfg.TeardownTimeout, "teardown-timeout", cfg.TeardownTimeout, "how long to wait for workers to exit")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "maximum invocations per second (0 = unlimited)")
	fs.IntVar(&cfg.RateBurst, "burst", cfg.RateBurst, "invocations allowed at once under --rate")
	fs.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "stop dispatching after the first failed item")
	fs.BoolVar(&cfg.CPUAffinity, "affinity", cfg.CPUAffinity, "pin each worker to a CPU core")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "show a progress bar on stderr")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug shows per-item events)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
}

func (a *app) primesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "primes [N...]",
		Short: "Test numbers for primality (defaults to a list of known primes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := workload.KnownPrimes
			if len(args) > 0 {
				var err error
				if inputs, err = parseArgs(args, func(s string) (int64, error) {
					return strconv.ParseInt(s, 10, 64)
				}); err != nil {
					return err
				}
			}

			return runBatch[int64, workload.Verdict](cmd.Context(), a, "primes", workload.Classify, inputs, workload.Verdict.String)
		},
	}
}

func (a *app) sqrtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sqrt [X...]",
		Short: "Compute square roots (defaults to 10 through 14)",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := []float64{10, 11, 12, 13, 14}
			if len(args) > 0 {
				var err error
				if inputs, err = parseArgs(args, func(s string) (float64, error) {
					return strconv.ParseFloat(s, 64)
				}); err != nil {
					return err
				}
			}

			return runBatch[float64, float64](cmd.Context(), a, "sqrt", workload.Sqrt, inputs, func(v float64) string {
				return strconv.FormatFloat(v, 'g', -1, 64)
			})
		},
	}
}

func parseArgs[T any](args []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, len(args))
	for i, s := range args {
		v, err := parse(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, s, err)
		}
		out[i] = v
	}
	return out, nil
}
