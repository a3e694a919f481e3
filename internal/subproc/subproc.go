// Package subproc runs child processes one at a time and captures their
// output streams in full.
//
// The harness never streams subprocess output: both streams are buffered
// until the process exits, then written to capture files. There is no timeout
// and no cancellation beyond the passed context; a hung child blocks the
// caller indefinitely by design.
package subproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Result is the outcome of a completed child process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Runner abstracts child-process execution so the build and render steps can
// be exercised with fakes in tests.
type Runner interface {
	// Run spawns the command, blocks until it exits, and returns the fully
	// captured streams and exit status. A nonzero exit status is not an
	// error: it is reported through Result.ExitCode and the caller applies
	// its own failure policy. The returned error is reserved for processes
	// that could not be spawned or waited on at all.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	// Dir is the working directory for spawned commands. Empty means the
	// harness's own working directory.
	Dir string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("spawn %s: %w", name, err)
	}
	return res, nil
}

// WriteCaptures writes both captured streams to their files. The files are
// written on every exit path, including when the child failed; each write is
// flushed and closed before returning.
func WriteCaptures(stdoutPath, stderrPath string, res Result) error {
	if err := os.WriteFile(stdoutPath, res.Stdout, 0o644); err != nil {
		return fmt.Errorf("write stdout capture: %w", err)
	}
	if err := os.WriteFile(stderrPath, res.Stderr, 0o644); err != nil {
		return fmt.Errorf("write stderr capture: %w", err)
	}
	return nil
}
