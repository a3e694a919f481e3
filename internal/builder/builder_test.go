package builder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raybench/internal/artifact"
	"github.com/roach88/raybench/internal/subproc"
	"github.com/roach88/raybench/internal/testutil"
	"github.com/roach88/raybench/internal/variant"
)

func newBuilder(t *testing.T, fake *testutil.FakeRunner) *Builder {
	t.Helper()
	return &Builder{
		Compiler: "cargo",
		Runner:   fake,
		Namer:    artifact.Namer{OutputDir: t.TempDir()},
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBuild_CleansThenBuildsWithFeatures(t *testing.T) {
	fake := &testutil.FakeRunner{}
	b := newBuilder(t, fake)
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX512, Width: variant.WidthF32}

	_, err := b.Build(context.Background(), v)
	require.NoError(t, err)

	require.Len(t, fake.Calls, 2)
	assert.Equal(t, []string{"clean"}, fake.Calls[0].Args)
	assert.Equal(t, []string{"build", "--release", "--features", "avx512", "--features", "f32"}, fake.Calls[1].Args)
}

func TestBuild_BaselineVariantHasNoFeatureFlags(t *testing.T) {
	fake := &testutil.FakeRunner{}
	b := newBuilder(t, fake)
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF64}

	_, err := b.Build(context.Background(), v)
	require.NoError(t, err)

	assert.Equal(t, []string{"build", "--release"}, fake.Calls[1].Args)
}

func TestBuild_NonzeroCompilerExitIsFatal(t *testing.T) {
	fake := &testutil.FakeRunner{
		Script: func(name string, args []string) (subproc.Result, error) {
			if args[0] == "build" {
				return subproc.Result{ExitCode: 101, Stderr: []byte("error[E0425]: cannot find value")}, nil
			}
			return subproc.Result{}, nil
		},
	}
	b := newBuilder(t, fake)
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF32}

	_, err := b.Build(context.Background(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 101")
}

// The compiler's output is captured to variant-scoped files even when the
// build fails; the stderr capture is the diagnostic of record.
func TestBuild_WritesCapturesOnFailure(t *testing.T) {
	fake := &testutil.FakeRunner{
		Script: func(name string, args []string) (subproc.Result, error) {
			if args[0] == "build" {
				return subproc.Result{ExitCode: 1, Stdout: []byte("compiling"), Stderr: []byte("broken")}, nil
			}
			return subproc.Result{}, nil
		},
	}
	b := newBuilder(t, fake)
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF64}

	_, err := b.Build(context.Background(), v)
	require.Error(t, err)

	stdoutPath, stderrPath := b.Namer.CompilePaths(v.Prefix())
	stdout, err := os.ReadFile(stdoutPath)
	require.NoError(t, err)
	assert.Equal(t, "compiling", string(stdout))

	stderr, err := os.ReadFile(stderrPath)
	require.NoError(t, err)
	assert.Equal(t, "broken", string(stderr))
}

func TestBuild_CleanFailureIsFatal(t *testing.T) {
	fake := &testutil.FakeRunner{
		Script: func(name string, args []string) (subproc.Result, error) {
			if args[0] == "clean" {
				return subproc.Result{ExitCode: 1, Stderr: []byte("locked")}, nil
			}
			return subproc.Result{}, nil
		},
	}
	b := newBuilder(t, fake)
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF32}

	_, err := b.Build(context.Background(), v)
	require.Error(t, err)
	// The build step never ran.
	assert.Len(t, fake.Calls, 1)
}

func TestBuild_UnwritableOutputDirIsFatal(t *testing.T) {
	fake := &testutil.FakeRunner{}
	b := newBuilder(t, fake)
	b.Namer = artifact.Namer{OutputDir: filepath.Join(t.TempDir(), "missing")}
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF32}

	_, err := b.Build(context.Background(), v)
	assert.Error(t, err)
}
