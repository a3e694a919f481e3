// Package sceneconf converts and validates the renderer's scene
// configuration files.
//
// Scene configs originate as JSON exports named
// scene_<N>_..._<objects|camera>.json and are converted to the
// scene-<N>-<kind>.toml layout the renderer and the harness consume.
package sceneconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Converted describes one successfully converted config file.
type Converted struct {
	Source    string `json:"source"`
	Dest      string `json:"dest"`
	SceneSize int    `json:"scene_size"`
	Kind      string `json:"kind"`
}

// ConvertDir converts every scene JSON file under jsonDir into TOML under
// tomlDir, creating tomlDir if absent. Files are processed in sorted order.
// Any malformed file is fatal; a partial conversion would leave the config
// dir silently incomplete for later sweeps.
func ConvertDir(jsonDir, tomlDir string, log *slog.Logger) ([]Converted, error) {
	if err := os.MkdirAll(tomlDir, 0o755); err != nil {
		return nil, fmt.Errorf("create toml directory %s: %w", tomlDir, err)
	}

	paths, err := filepath.Glob(filepath.Join(jsonDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", jsonDir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scene JSON files found in %s", jsonDir)
	}
	sort.Strings(paths)

	converted := make([]Converted, 0, len(paths))
	for _, path := range paths {
		c, err := ConvertFile(path, tomlDir)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", path, err)
		}
		log.Info("converted scene config", "source", c.Source, "dest", c.Dest)
		converted = append(converted, c)
	}
	return converted, nil
}

// ConvertFile converts a single scene JSON file. The document is validated
// against the scene schema before anything is written.
func ConvertFile(path, tomlDir string) (Converted, error) {
	size, kind, err := parseName(path)
	if err != nil {
		return Converted{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Converted{}, fmt.Errorf("read: %w", err)
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return Converted{}, err
	}
	if err := Validate(doc, kind); err != nil {
		return Converted{}, err
	}

	dest := filepath.Join(tomlDir, fmt.Sprintf("scene-%d-%s.toml", size, kind))
	if err := writeTOML(dest, doc); err != nil {
		return Converted{}, err
	}

	return Converted{Source: path, Dest: dest, SceneSize: size, Kind: kind}, nil
}

// parseName extracts the scene size and kind from a source file name of the
// form scene_<N>_..._<objects|camera>.json. The second underscore field is
// the scene size and the last is the kind; fields in between are free-form.
func parseName(path string) (size int, kind string, err error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")
	if len(parts) < 3 || parts[0] != "scene" {
		return 0, "", fmt.Errorf("unrecognized scene config name %q", stem)
	}

	size, err = strconv.Atoi(parts[1])
	if err != nil || size <= 0 {
		return 0, "", fmt.Errorf("unrecognized scene size in %q", stem)
	}

	kind = parts[len(parts)-1]
	if kind != KindObjects && kind != KindCamera {
		return 0, "", fmt.Errorf("unrecognized config kind %q in %q", kind, stem)
	}
	return size, kind, nil
}

// decodeJSON parses a scene document, keeping integer values integral so the
// TOML output preserves the source's number types.
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scene config root must be an object")
	}
	return doc, nil
}

// normalize converts json.Number leaves to int64 where the value is integral
// and float64 otherwise.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	default:
		return v
	}
}

func writeTOML(dest string, doc map[string]any) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}
