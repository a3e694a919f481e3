// Package builder drives the clean+build lifecycle of renderer build
// variants.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/raybench/internal/artifact"
	"github.com/roach88/raybench/internal/subproc"
	"github.com/roach88/raybench/internal/variant"
)

// Outcome records a successful variant build.
type Outcome struct {
	Variant  variant.Variant
	Duration time.Duration
}

// Builder compiles renderer build variants. Builds are strictly sequential
// and never incremental across variants: every build is preceded by a full
// clean so feature flags from a previous variant cannot leak into the next.
type Builder struct {
	Compiler string // compiler binary, e.g. "cargo"
	Runner   subproc.Runner
	Namer    artifact.Namer
	Log      *slog.Logger
}

// Build cleans all prior compiled artifacts, compiles the variant with its
// feature flags, and captures the compiler's output to variant-scoped files.
//
// A nonzero compiler exit status is fatal: the error aborts the whole harness
// run, after the captured output has been written. A broken build makes every
// downstream measurement meaningless, so there is no partial continuation.
func (b *Builder) Build(ctx context.Context, v variant.Variant) (Outcome, error) {
	prefix := v.Prefix()
	b.Log.Info("building variant", "prefix", prefix, "features", v.Features())

	clean, err := b.Runner.Run(ctx, b.Compiler, "clean")
	if err != nil {
		return Outcome{}, fmt.Errorf("clean for %s: %w", prefix, err)
	}
	if clean.ExitCode != 0 {
		return Outcome{}, fmt.Errorf("clean for %s: compiler exited with status %d: %s",
			prefix, clean.ExitCode, clean.Stderr)
	}

	args := []string{"build", "--release"}
	for _, f := range v.Features() {
		args = append(args, "--features", f)
	}

	res, err := b.Runner.Run(ctx, b.Compiler, args...)
	if err != nil {
		return Outcome{}, fmt.Errorf("build %s: %w", prefix, err)
	}

	stdoutPath, stderrPath := b.Namer.CompilePaths(prefix)
	if err := subproc.WriteCaptures(stdoutPath, stderrPath, res); err != nil {
		return Outcome{}, fmt.Errorf("build %s: %w", prefix, err)
	}

	if res.ExitCode != 0 {
		return Outcome{}, fmt.Errorf("build %s: compiler exited with status %d (see %s)",
			prefix, res.ExitCode, stderrPath)
	}

	b.Log.Info("variant built", "prefix", prefix, "duration", res.Duration)
	return Outcome{Variant: v, Duration: res.Duration}, nil
}
