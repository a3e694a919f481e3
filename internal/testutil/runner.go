// Package testutil provides deterministic fakes for harness tests.
package testutil

import (
	"context"

	"github.com/roach88/raybench/internal/subproc"
)

// Call records one subprocess invocation seen by a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// FakeRunner implements subproc.Runner without spawning processes. Tests
// script its behavior per call and inspect the recorded invocations.
type FakeRunner struct {
	Calls []Call

	// Script decides the result for each call. Nil means every call
	// succeeds with empty output.
	Script func(name string, args []string) (subproc.Result, error)
}

// Run implements subproc.Runner.
func (r *FakeRunner) Run(_ context.Context, name string, args ...string) (subproc.Result, error) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
	if r.Script != nil {
		return r.Script(name, args)
	}
	return subproc.Result{}, nil
}

// CallsFor returns the recorded calls whose command name matches.
func (r *FakeRunner) CallsFor(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
