package store

import (
	"context"
	"fmt"
	"time"
)

// RunRow is one persisted renderer invocation.
type RunRow struct {
	RunToken        string
	Name            string
	Prefix          string
	SceneSize       int
	Width           int
	Height          int
	ThreadCount     int
	RenderMode      string
	SamplesPerPixel int
	Trial           int
	ExitCode        int
	Duration        time.Duration
}

// BuildRow is one persisted variant build.
type BuildRow struct {
	RunToken  string
	Prefix    string
	Extension string
	DataWidth string
	Duration  time.Duration
}

// ListRuns returns every run row for a harness execution, in insertion
// order, which is the harness's deterministic iteration order.
func (s *Store) ListRuns(ctx context.Context, runToken string) ([]RunRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, name, prefix, scene_size, width, height, thread_count,
		       render_mode, samples_per_pixel, trial, exit_code, duration_ms
		FROM runs WHERE run_token = ? ORDER BY id
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var durationMS int64
		if err := rows.Scan(&r.RunToken, &r.Name, &r.Prefix, &r.SceneSize, &r.Width, &r.Height,
			&r.ThreadCount, &r.RenderMode, &r.SamplesPerPixel, &r.Trial, &r.ExitCode, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// ListBuilds returns every build row for a harness execution in build order.
func (s *Store) ListBuilds(ctx context.Context, runToken string) ([]BuildRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, prefix, extension, data_width, duration_ms
		FROM builds WHERE run_token = ? ORDER BY id
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var out []BuildRow
	for rows.Next() {
		var b BuildRow
		var durationMS int64
		if err := rows.Scan(&b.RunToken, &b.Prefix, &b.Extension, &b.DataWidth, &durationMS); err != nil {
			return nil, fmt.Errorf("scan build row: %w", err)
		}
		b.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return out, nil
}
