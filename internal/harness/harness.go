// Package harness is the top-level benchmark driver.
//
// One harness execution proceeds in a fixed, fully sequential order: generate
// the deduplicated test matrix, then for each enumerated build variant, clean
// and rebuild the renderer (fatal on compile failure), then run every test
// case for the configured number of trials (renderer failures tolerated).
// Exactly one child process is alive at any time.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/raybench/internal/builder"
	"github.com/roach88/raybench/internal/config"
	"github.com/roach88/raybench/internal/hostcap"
	"github.com/roach88/raybench/internal/matrix"
	"github.com/roach88/raybench/internal/runner"
	"github.com/roach88/raybench/internal/variant"
)

// Recorder receives build and run outcomes as they complete. Implementations
// persist them for later aggregation; the harness itself keeps nothing in
// memory beyond the summary counters.
type Recorder interface {
	RecordBuild(ctx context.Context, runToken string, out builder.Outcome) error
	RecordRun(ctx context.Context, runToken string, v variant.Variant, tc matrix.TestCase, trial int, out runner.Outcome) error
}

// Harness composes the matrix generator, variant builder and run executor.
type Harness struct {
	cfg      config.Config
	caps     hostcap.Capabilities
	builder  *builder.Builder
	executor *runner.Executor
	recorder Recorder // optional
	log      *slog.Logger
	runToken string
}

// New creates a harness. The capability set is probed once by the caller and
// fixed for the lifetime of the run. recorder may be nil.
func New(cfg config.Config, caps hostcap.Capabilities, b *builder.Builder, e *runner.Executor, recorder Recorder, log *slog.Logger) *Harness {
	return &Harness{
		cfg:      cfg,
		caps:     caps,
		builder:  b,
		executor: e,
		recorder: recorder,
		log:      log,
		runToken: uuid.Must(uuid.NewV7()).String(),
	}
}

// RunToken returns the time-sortable token identifying this harness
// execution in logs and the run log store.
func (h *Harness) RunToken() string {
	return h.runToken
}

// Result summarizes one harness execution.
type Result struct {
	RunToken       string `json:"run_token"`
	Variants       int    `json:"variants"`
	Cases          int    `json:"cases"`
	Runs           int    `json:"runs"`
	RenderFailures int    `json:"render_failures"`
}

// Run executes the full sweep.
//
// Iteration over the matrix uses a sorted snapshot so logging and the run log
// are reproducible; correctness never depends on that order. A build failure
// aborts immediately with an error and no further variants or runs are
// attempted. Renderer failures are counted and tolerated. Filesystem failures
// (output dir, capture files) are fatal since no artifact can be trusted
// without a writable output location.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(h.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", h.cfg.OutputDir, err)
	}

	set := matrix.Generator{Sweeps: h.cfg.Sweeps}.Produce()
	cases := set.Sorted()
	variants := variant.Enumerate(h.cfg.HostTag, h.caps)

	h.log.Info("harness starting",
		"run_token", h.runToken,
		"variants", len(variants),
		"cases", len(cases),
		"trials", h.cfg.Trials,
		"avx512", h.caps.AVX512,
	)

	result := &Result{RunToken: h.runToken, Variants: len(variants), Cases: len(cases)}

	for _, v := range variants {
		buildOut, err := h.builder.Build(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Prefix(), err)
		}
		if h.recorder != nil {
			if err := h.recorder.RecordBuild(ctx, h.runToken, buildOut); err != nil {
				return nil, fmt.Errorf("record build %s: %w", v.Prefix(), err)
			}
		}

		for _, tc := range cases {
			for trial := 0; trial < h.cfg.Trials; trial++ {
				out, err := h.executor.Execute(ctx, v, tc, trial)
				if err != nil {
					return nil, err
				}
				result.Runs++
				if out.Failed() {
					result.RenderFailures++
				}
				if h.recorder != nil {
					if err := h.recorder.RecordRun(ctx, h.runToken, v, tc, trial, out); err != nil {
						return nil, fmt.Errorf("record run %s: %w", out.Name, err)
					}
				}
			}
		}
	}

	h.log.Info("harness complete",
		"run_token", h.runToken,
		"runs", result.Runs,
		"render_failures", result.RenderFailures,
	)
	return result, nil
}
