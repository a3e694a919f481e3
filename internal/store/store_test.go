package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/raybench/internal/builder"
	"github.com/roach88/raybench/internal/matrix"
	"github.com/roach88/raybench/internal/runner"
	"github.com/roach88/raybench/internal/variant"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestRecordAndListBuilds(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX512, Width: variant.WidthF32}
	out := builder.Outcome{Variant: v, Duration: 42 * time.Second}

	if err := s.RecordBuild(ctx, "token-1", out); err != nil {
		t.Fatalf("RecordBuild() failed: %v", err)
	}

	builds, err := s.ListBuilds(ctx, "token-1")
	if err != nil {
		t.Fatalf("ListBuilds() failed: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("expected 1 build row, got %d", len(builds))
	}
	b := builds[0]
	if b.Prefix != "Box-AVX512-F32" || b.Extension != "AVX512" || b.DataWidth != "F32" {
		t.Errorf("unexpected build row: %+v", b)
	}
	if b.Duration != 42*time.Second {
		t.Errorf("expected 42s duration, got %v", b.Duration)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF64}
	tc := matrix.TestCase{SceneSize: 534, Width: 3840, Height: 2160, ThreadCount: 24, Mode: matrix.ModeVectorized, SamplesPerPixel: 100}
	out := runner.Outcome{Name: "Box-AVX-F64-534-3840x2160-24-vectorized-100-0", ExitCode: 1, Duration: 90 * time.Second}

	if err := s.RecordRun(ctx, "token-1", v, tc, 0, out); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := s.ListRuns(ctx, "token-1")
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run row, got %d", len(runs))
	}
	r := runs[0]
	if r.Name != out.Name || r.ExitCode != 1 || r.SceneSize != 534 || r.RenderMode != "vectorized" {
		t.Errorf("unexpected run row: %+v", r)
	}
}

// Duplicate run names within one harness execution violate the naming
// invariant; the unique constraint turns that bug into an error.
func TestRecordRun_RejectsDuplicateNames(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	v := variant.Variant{HostTag: "Box", Extension: variant.ExtAVX, Width: variant.WidthF32}
	tc := matrix.TestCase{SceneSize: 54, Width: 1920, Height: 1080, ThreadCount: 8, Mode: matrix.ModeScaler, SamplesPerPixel: 50}
	out := runner.Outcome{Name: "fixed-name"}

	if err := s.RecordRun(ctx, "token-1", v, tc, 0, out); err != nil {
		t.Fatalf("first RecordRun() failed: %v", err)
	}
	if err := s.RecordRun(ctx, "token-1", v, tc, 1, out); err == nil {
		t.Error("expected duplicate name to fail")
	}

	// The same name under a different harness execution is fine.
	if err := s.RecordRun(ctx, "token-2", v, tc, 0, out); err != nil {
		t.Errorf("RecordRun() with new token failed: %v", err)
	}
}

func TestListRuns_EmptyToken(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no rows, got %d", len(runs))
	}
}
