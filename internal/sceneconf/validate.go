package sceneconf

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/roach88/raybench/internal/artifact"
)

// Problem describes one defect found while checking a config directory.
type Problem struct {
	Path   string `json:"path"`
	Detail string `json:"detail"`
}

func (p Problem) String() string {
	return p.Path + ": " + p.Detail
}

// CheckDir verifies that configDir holds a parseable, schema-valid
// scene/camera TOML pair for every scene size the sweeps reference. It
// returns every problem found rather than stopping at the first, so one pass
// reports the full state of the directory.
func CheckDir(configDir string, sceneSizes []int) ([]Problem, error) {
	if _, err := os.Stat(configDir); err != nil {
		return nil, fmt.Errorf("config directory %s: %w", configDir, err)
	}

	var problems []Problem
	for _, size := range sceneSizes {
		problems = append(problems, checkFile(artifact.ScenePath(configDir, size), KindObjects)...)
		problems = append(problems, checkFile(artifact.CameraPath(configDir, size), KindCamera)...)
	}
	return problems, nil
}

func checkFile(path, kind string) []Problem {
	if _, err := os.Stat(path); err != nil {
		return []Problem{{Path: path, Detail: "missing"}}
	}

	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return []Problem{{Path: path, Detail: fmt.Sprintf("parse: %v", err)}}
	}
	if err := Validate(doc, kind); err != nil {
		return []Problem{{Path: path, Detail: err.Error()}}
	}
	return nil
}
