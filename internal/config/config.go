// Package config holds the harness configuration: trial count, sweep axes,
// variant prefixes and tool paths.
//
// All of it is an explicit value constructed once and passed into the harness
// at startup; nothing here is shared mutable process state.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/raybench/internal/matrix"
)

// Config is the full harness configuration.
type Config struct {
	// HostTag is the machine identifier leading every variant prefix,
	// e.g. "Intel13700K".
	HostTag string `yaml:"host_tag"`

	// Trials is the number of repetitions per (variant, test case) pair.
	Trials int `yaml:"trials"`

	// ConfigDir holds the scene/camera TOML files consumed by the renderer.
	ConfigDir string `yaml:"config_dir"`

	// OutputDir accumulates every artifact across variants, cases and trials.
	// Created if absent.
	OutputDir string `yaml:"output_dir"`

	// RendererBin is the compiled renderer executable.
	RendererBin string `yaml:"renderer_bin"`

	// CompilerBin is the build tool driving clean and release builds.
	CompilerBin string `yaml:"compiler_bin"`

	// CompileDir is the working directory for compiler invocations. Empty
	// means the harness's working directory.
	CompileDir string `yaml:"compile_dir"`

	// Sweeps define the test matrix as a union of cartesian products.
	Sweeps []matrix.Sweep `yaml:"sweeps"`
}

// Default axis values mirror the benchmark campaign the harness was built
// for: an 11-step scene-size ladder, HD and UHD resolutions, and the thread
// counts of a 24-way desktop part.
var (
	defaultSceneSizes  = []int{54, 102, 150, 198, 246, 294, 342, 390, 438, 486, 534}
	defaultResolutions = []matrix.Resolution{{Width: 1920, Height: 1080}, {Width: 3840, Height: 2160}}
	defaultThreads     = []int{1, 4, 8, 12, 16, 20, 24}
	defaultSamples     = []int{25, 50, 100, 200, 400}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HostTag:     "Intel13700K",
		Trials:      5,
		ConfigDir:   "config_toml",
		OutputDir:   "results",
		RendererBin: "target/release/ray-tracing",
		CompilerBin: "cargo",
		Sweeps: []matrix.Sweep{
			{
				Name:            "thread-scaling",
				SceneSizes:      []int{534},
				Resolutions:     []matrix.Resolution{{Width: 3840, Height: 2160}},
				ThreadCounts:    defaultThreads,
				Modes:           []matrix.Mode{matrix.ModeScaler, matrix.ModeVectorized},
				SamplesPerPixel: []int{100},
			},
			{
				Name:            "scene-resolution",
				SceneSizes:      defaultSceneSizes,
				Resolutions:     defaultResolutions,
				ThreadCounts:    []int{24},
				Modes:           []matrix.Mode{matrix.ModeVectorized},
				SamplesPerPixel: []int{100},
			},
			{
				Name:            "sample-scaling",
				SceneSizes:      []int{534},
				Resolutions:     []matrix.Resolution{{Width: 3840, Height: 2160}},
				ThreadCounts:    []int{24},
				Modes:           []matrix.Mode{matrix.ModeVectorized},
				SamplesPerPixel: defaultSamples,
			},
		},
	}
}

// Load reads a YAML configuration file over the defaults. Unknown fields are
// rejected so typos fail loudly instead of silently running the wrong sweep.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field the harness later assumes to be well-formed.
func (c Config) Validate() error {
	if c.HostTag == "" {
		return fmt.Errorf("host_tag is required")
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.RendererBin == "" {
		return fmt.Errorf("renderer_bin is required")
	}
	if c.CompilerBin == "" {
		return fmt.Errorf("compiler_bin is required")
	}
	if len(c.Sweeps) == 0 {
		return fmt.Errorf("at least one sweep is required")
	}
	for i, sw := range c.Sweeps {
		if err := validateSweep(sw); err != nil {
			return fmt.Errorf("sweeps[%d] (%s): %w", i, sw.Name, err)
		}
	}
	return nil
}

func validateSweep(sw matrix.Sweep) error {
	if len(sw.SceneSizes) == 0 || len(sw.Resolutions) == 0 || len(sw.ThreadCounts) == 0 ||
		len(sw.Modes) == 0 || len(sw.SamplesPerPixel) == 0 {
		return fmt.Errorf("every axis needs at least one value")
	}
	for _, n := range sw.SceneSizes {
		if n <= 0 {
			return fmt.Errorf("scene size must be positive, got %d", n)
		}
	}
	for _, r := range sw.Resolutions {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("resolution must be positive, got %s", r)
		}
	}
	for _, t := range sw.ThreadCounts {
		if t <= 0 {
			return fmt.Errorf("thread count must be positive, got %d", t)
		}
	}
	for _, m := range sw.Modes {
		if m != matrix.ModeScaler && m != matrix.ModeVectorized {
			return fmt.Errorf("unknown render mode %q", m)
		}
	}
	for _, s := range sw.SamplesPerPixel {
		if s <= 0 {
			return fmt.Errorf("samples per pixel must be positive, got %d", s)
		}
	}
	return nil
}

// SceneSizes returns the sorted distinct scene sizes across all sweeps.
// The validate command uses this to check config-dir completeness.
func (c Config) SceneSizes() []int {
	seen := make(map[int]struct{})
	for _, sw := range c.Sweeps {
		for _, n := range sw.SceneSizes {
			seen[n] = struct{}{}
		}
	}
	sizes := make([]int, 0, len(seen))
	for n := range seen {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	return sizes
}
