// Package runner executes single renderer runs and captures their artifacts.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/raybench/internal/artifact"
	"github.com/roach88/raybench/internal/matrix"
	"github.com/roach88/raybench/internal/subproc"
	"github.com/roach88/raybench/internal/variant"
)

// Outcome records one completed renderer invocation. A nonzero ExitCode is a
// tolerated benchmarking result, not an error; the stderr capture file is the
// diagnostic of record.
type Outcome struct {
	Name     string // canonical base name of the run's artifacts
	ExitCode int
	Duration time.Duration
}

// Failed reports whether the renderer exited nonzero.
func (o Outcome) Failed() bool {
	return o.ExitCode != 0
}

// Executor invokes the renderer for one (variant, test case, trial) triple at
// a time, blocking until the child exits.
type Executor struct {
	Renderer  string // renderer binary path, e.g. "target/release/ray-tracing"
	ConfigDir string // directory holding scene-<N>-objects.toml / scene-<N>-camera.toml
	Runner    subproc.Runner
	Namer     artifact.Namer
	Log       *slog.Logger
}

// Args maps a test case onto the renderer's command-line contract. The scene
// and camera paths derive from the case's scene size; the report and image
// paths come from the artifact namer.
func Args(tc matrix.TestCase, scene, camera string, p artifact.RunPaths) []string {
	return []string{
		"--scene", scene,
		"--camera", camera,
		"--report", p.Report,
		"--width", strconv.Itoa(tc.Width),
		"--height", strconv.Itoa(tc.Height),
		"--output-image", p.Image,
		"--render-mode", string(tc.Mode),
		"--samples-per-pixel", strconv.Itoa(tc.SamplesPerPixel),
		"--thread-count", strconv.Itoa(tc.ThreadCount),
	}
}

// Execute runs the renderer once and writes the stdout/stderr captures after
// the process exits, on every exit path.
//
// A nonzero renderer exit status is non-fatal: it is recorded in the Outcome
// and iteration proceeds. Only a process that cannot be spawned, or a capture
// file that cannot be written, returns an error; both invalidate the sweep
// and abort the harness.
func (e *Executor) Execute(ctx context.Context, v variant.Variant, tc matrix.TestCase, trial int) (Outcome, error) {
	prefix := v.Prefix()
	paths := e.Namer.RunPaths(prefix, tc, trial)
	name := artifact.BaseName(prefix, tc, trial)

	scene := artifact.ScenePath(e.ConfigDir, tc.SceneSize)
	camera := artifact.CameraPath(e.ConfigDir, tc.SceneSize)

	e.Log.Info("rendering", "case", tc.String(), "trial", trial, "variant", prefix)

	res, err := e.Runner.Run(ctx, e.Renderer, Args(tc, scene, camera, paths)...)
	if err != nil {
		return Outcome{}, fmt.Errorf("render %s: %w", name, err)
	}

	if err := subproc.WriteCaptures(paths.Stdout, paths.Stderr, res); err != nil {
		return Outcome{}, fmt.Errorf("render %s: %w", name, err)
	}

	if res.ExitCode != 0 {
		e.Log.Warn("renderer exited nonzero", "name", name, "exit_code", res.ExitCode, "stderr", paths.Stderr)
	} else {
		e.Log.Info("render complete", "name", name, "duration", res.Duration)
	}

	return Outcome{Name: name, ExitCode: res.ExitCode, Duration: res.Duration}, nil
}
