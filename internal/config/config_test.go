package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raybench/internal/matrix"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

// The default campaign: 14 thread-scaling cases, 22 scene/resolution cases,
// 5 sample-scaling cases, with the (534, 4K, 24, vectorized, 100) tuple
// shared by all three sweeps.
func TestDefault_MatrixSize(t *testing.T) {
	cfg := Default()
	set := matrix.Generator{Sweeps: cfg.Sweeps}.Produce()
	assert.Equal(t, 39, set.Len())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
host_tag: TestBox
trials: 2
sweeps:
  - name: tiny
    scene_sizes: [54]
    resolutions:
      - width: 640
        height: 480
    thread_counts: [1]
    modes: [vectorized]
    samples_per_pixel: [10]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TestBox", cfg.HostTag)
	assert.Equal(t, 2, cfg.Trials)
	require.Len(t, cfg.Sweeps, 1)
	assert.Equal(t, "tiny", cfg.Sweeps[0].Name)
	// Unset fields keep their defaults.
	assert.Equal(t, "config_toml", cfg.ConfigDir)
	assert.Equal(t, "cargo", cfg.CompilerBin)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "host_tagg: Oops\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host tag", func(c *Config) { c.HostTag = "" }},
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"negative trials", func(c *Config) { c.Trials = -1 }},
		{"empty config dir", func(c *Config) { c.ConfigDir = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"empty renderer", func(c *Config) { c.RendererBin = "" }},
		{"empty compiler", func(c *Config) { c.CompilerBin = "" }},
		{"no sweeps", func(c *Config) { c.Sweeps = nil }},
		{"empty sweep axis", func(c *Config) { c.Sweeps[0].ThreadCounts = nil }},
		{"nonpositive scene size", func(c *Config) { c.Sweeps[0].SceneSizes = []int{0} }},
		{"nonpositive resolution", func(c *Config) {
			c.Sweeps[0].Resolutions = []matrix.Resolution{{Width: 0, Height: 1080}}
		}},
		{"nonpositive threads", func(c *Config) { c.Sweeps[0].ThreadCounts = []int{-4} }},
		{"bad render mode", func(c *Config) { c.Sweeps[0].Modes = []matrix.Mode{"turbo"} }},
		{"nonpositive samples", func(c *Config) { c.Sweeps[0].SamplesPerPixel = []int{0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSceneSizes_SortedDistinct(t *testing.T) {
	cfg := Default()
	sizes := cfg.SceneSizes()

	assert.Equal(t, []int{54, 102, 150, 198, 246, 294, 342, 390, 438, 486, 534}, sizes)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
