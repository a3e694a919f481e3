package store

import (
	"context"
	"fmt"

	"github.com/roach88/raybench/internal/artifact"
	"github.com/roach88/raybench/internal/builder"
	"github.com/roach88/raybench/internal/matrix"
	"github.com/roach88/raybench/internal/runner"
	"github.com/roach88/raybench/internal/variant"
)

// RecordBuild inserts one build row. Implements harness.Recorder.
func (s *Store) RecordBuild(ctx context.Context, runToken string, out builder.Outcome) error {
	v := out.Variant
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (run_token, prefix, extension, data_width, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`,
		runToken,
		v.Prefix(),
		string(v.Extension),
		string(v.Width),
		out.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record build: %w", err)
	}
	return nil
}

// RecordRun inserts one run row. Implements harness.Recorder.
//
// The UNIQUE (run_token, name) constraint backs the naming invariant: a
// collision within one harness execution is a bug and surfaces as an error
// here rather than silently overwriting a row.
func (s *Store) RecordRun(ctx context.Context, runToken string, v variant.Variant, tc matrix.TestCase, trial int, out runner.Outcome) error {
	name := out.Name
	if name == "" {
		name = artifact.BaseName(v.Prefix(), tc, trial)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_token, name, prefix, scene_size, width, height, thread_count, render_mode, samples_per_pixel, trial, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runToken,
		name,
		v.Prefix(),
		tc.SceneSize,
		tc.Width,
		tc.Height,
		tc.ThreadCount,
		string(tc.Mode),
		tc.SamplesPerPixel,
		trial,
		out.ExitCode,
		out.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
