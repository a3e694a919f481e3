package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/raybench/internal/artifact"
	"github.com/roach88/raybench/internal/builder"
	"github.com/roach88/raybench/internal/config"
	"github.com/roach88/raybench/internal/harness"
	"github.com/roach88/raybench/internal/hostcap"
	"github.com/roach88/raybench/internal/runner"
	"github.com/roach88/raybench/internal/store"
	"github.com/roach88/raybench/internal/subproc"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigFile string
	Database   string
	HostTag    string
	Trials     int
	AVX512     string // "auto" | "on" | "off"
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build every variant and execute the full benchmark sweep",
		Long: `Build every capability-supported renderer variant and execute the full
(variant x test case x trial) sweep.

A compile failure aborts the whole run; renderer failures are recorded via
their stderr captures and the sweep continues.

Example:
  raybench run
  raybench run --config bench.yaml --db results/runs.db --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML harness config (defaults built in)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run log (omit to disable)")
	cmd.Flags().StringVar(&opts.HostTag, "host-tag", "", "override the host tag in variant prefixes")
	cmd.Flags().IntVar(&opts.Trials, "trials", 0, "override the trial count")
	cmd.Flags().StringVar(&opts.AVX512, "avx512", "auto", "extended-width SIMD capability (auto|on|off)")

	return cmd
}

func runSweep(opts *RunOptions, cmd *cobra.Command) error {
	log := setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.HostTag != "" {
		cfg.HostTag = opts.HostTag
	}
	if opts.Trials > 0 {
		cfg.Trials = opts.Trials
	}

	caps, err := resolveCapabilities(opts.AVX512)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --avx512 value", err)
	}

	var recorder harness.Recorder
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run log", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				log.Error("error closing run log", "error", closeErr)
			}
		}()
		recorder = st
	}

	namer := artifact.Namer{OutputDir: cfg.OutputDir}
	b := &builder.Builder{
		Compiler: cfg.CompilerBin,
		Runner:   subproc.ExecRunner{Dir: cfg.CompileDir},
		Namer:    namer,
		Log:      log,
	}
	e := &runner.Executor{
		Renderer:  cfg.RendererBin,
		ConfigDir: cfg.ConfigDir,
		Runner:    subproc.ExecRunner{},
		Namer:     namer,
		Log:       log,
	}

	h := harness.New(cfg, caps, b, e, recorder, log)
	result, err := h.Run(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "sweep aborted", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf(
		"sweep %s complete: %d variants, %d cases, %d runs, %d render failures",
		result.RunToken, result.Variants, result.Cases, result.Runs, result.RenderFailures))
}

// loadConfig returns the built-in defaults when no file is given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(path)
}

// resolveCapabilities maps the --avx512 flag onto the host capability set.
// "auto" probes the host once; "on"/"off" force the value, which is useful
// for cross-checking variant enumeration and for CI hosts.
func resolveCapabilities(mode string) (hostcap.Capabilities, error) {
	switch mode {
	case "auto":
		return hostcap.Detect(), nil
	case "on":
		return hostcap.Capabilities{AVX512: true}, nil
	case "off":
		return hostcap.Capabilities{AVX512: false}, nil
	default:
		return hostcap.Capabilities{}, fmt.Errorf("must be auto, on or off, got %q", mode)
	}
}
