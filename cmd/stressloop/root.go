package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/stressloop/internal/config"
	"github.com/utkarsh5026/stressloop/internal/report"
	"github.com/utkarsh5026/stressloop/internal/sysinfo"
	"github.com/utkarsh5026/stressloop/stress"
)

const envFileFlag = "env-file"

// Execute builds the root command and runs it with a background context.
func Execute() error {
	return execute(context.Background(), newRootCmd())
}

// execute runs cmd and prints any error in red on its error stream. Flag and
// argument errors are raised before run, so they are reported here too.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		report.NewConsole(cmd.ErrOrStderr()).Error(err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stressloop",
		Short: "Generate sustained CPU load with a fixed bundle of compute kernels.",
		Long: `stressloop runs recursive Fibonacci, prime counting and a dense matrix ` +
			`multiplication on a short periodic trigger, printing timings and heap ` +
			`usage for every iteration until interrupted with Ctrl+C.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	def := config.Default()
	f := cmd.Flags()
	f.Duration("period", def.Period, "trigger period between iterations")
	f.Int("fib", def.FibonacciN, "Fibonacci depth")
	f.Int("primes", def.PrimeLimit, "upper bound for prime counting")
	f.Int("matrix", def.MatrixSize, "matrix dimension")
	f.Int("workers", def.Workers, "goroutines used inside the prime and matrix kernels")
	f.Bool("pin", def.Pin, "pin worker goroutines to CPU cores")
	f.Bool("progress", def.Progress, "draw a per-iteration progress bar on stderr")
	f.Bool("no-color", def.NoColor, "disable colored output")
	f.Int64("seed", def.Seed, "matrix random seed (0 uses the clock)")
	f.String(envFileFlag, "", "load STRESSLOOP_* variables from this file first")
	f.String("cpuprofile", def.CPUProfile, "write a CPU profile to this file")
	f.String("memprofile", def.MemProfile, "write a heap profile to this file on exit")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	host, err := sysinfo.Detect()
	if err != nil {
		return err
	}
	sampler, err := sysinfo.NewSampler()
	if err != nil {
		return err
	}

	if err := setupProfiling(cmd.OutOrStdout(), cfg.CPUProfile, cfg.MemProfile); err != nil {
		return err
	}

	console := report.NewConsole(cmd.OutOrStdout())
	var reporter stress.Reporter = console
	if cfg.Progress {
		reporter = report.WithProgress(console, cmd.ErrOrStderr())
	}

	driver, err := stress.New(cfg, reporter, stress.WithSampler(sampler))
	if err != nil {
		return err
	}

	console.Banner(host, cfg, xid.New().String())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return driver.Run(ctx)
}

// resolveConfig layers defaults, environment and explicitly set flags.
func resolveConfig(cmd *cobra.Command, lookup config.LookupFunc) (config.Config, error) {
	cfg := config.Default()
	f := cmd.Flags()

	envFile, err := f.GetString(envFileFlag)
	if err != nil {
		return cfg, err
	}
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if err := applyFlags(cmd, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !f.Changed(name) {
			return
		}
		if e := apply(); e != nil {
			err = fmt.Errorf("flag --%s: %w", name, e)
		}
	}

	set("period", func() (e error) { cfg.Period, e = f.GetDuration("period"); return })
	set("fib", func() (e error) { cfg.FibonacciN, e = f.GetInt("fib"); return })
	set("primes", func() (e error) { cfg.PrimeLimit, e = f.GetInt("primes"); return })
	set("matrix", func() (e error) { cfg.MatrixSize, e = f.GetInt("matrix"); return })
	set("workers", func() (e error) { cfg.Workers, e = f.GetInt("workers"); return })
	set("pin", func() (e error) { cfg.Pin, e = f.GetBool("pin"); return })
	set("progress", func() (e error) { cfg.Progress, e = f.GetBool("progress"); return })
	set("no-color", func() (e error) { cfg.NoColor, e = f.GetBool("no-color"); return })
	set("seed", func() (e error) { cfg.Seed, e = f.GetInt64("seed"); return })
	set("cpuprofile", func() (e error) { cfg.CPUProfile, e = f.GetString("cpuprofile"); return })
	set("memprofile", func() (e error) { cfg.MemProfile, e = f.GetString("memprofile"); return })
	return err
}
