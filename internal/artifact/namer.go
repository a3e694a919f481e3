// Package artifact derives the canonical, collision-free names and paths for
// everything the harness writes to disk.
package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/roach88/raybench/internal/matrix"
)

// BaseName maps (variant prefix, test case, trial) to the canonical base name
// every output file of that run derives from.
//
// The format is fixed:
//
//	<prefix>-<scene>-<WIDTHxHEIGHT>-<threads>-<mode>-<spp>-<trial>
//
// Field order matters: within one harness execution distinct triples always
// produce distinct names, because the variant prefix, every TestCase field and
// the trial index all appear at fixed positions. A thread count of 100 can
// never collide with a samples-per-pixel of 100.
func BaseName(prefix string, tc matrix.TestCase, trial int) string {
	return fmt.Sprintf("%s-%d-%dx%d-%d-%s-%d-%d",
		prefix, tc.SceneSize, tc.Width, tc.Height, tc.ThreadCount, tc.Mode, tc.SamplesPerPixel, trial)
}

// RunPaths holds the four per-run artifact paths.
type RunPaths struct {
	Report string // renderer stats, TOML
	Image  string // rendered output, PNG
	Stdout string // captured renderer stdout
	Stderr string // captured renderer stderr
}

// Namer derives artifact paths rooted at the output directory.
type Namer struct {
	OutputDir string
}

// RunPaths returns the artifact paths for one (variant, case, trial) run.
func (n Namer) RunPaths(prefix string, tc matrix.TestCase, trial int) RunPaths {
	base := BaseName(prefix, tc, trial)
	return RunPaths{
		Report: filepath.Join(n.OutputDir, base+".toml"),
		Image:  filepath.Join(n.OutputDir, base+".png"),
		Stdout: filepath.Join(n.OutputDir, base+".stdout"),
		Stderr: filepath.Join(n.OutputDir, base+".stderr"),
	}
}

// CompilePaths returns the variant-scoped capture paths for the build step.
func (n Namer) CompilePaths(prefix string) (stdout, stderr string) {
	return filepath.Join(n.OutputDir, prefix+"-compile.stdout"),
		filepath.Join(n.OutputDir, prefix+"-compile.stderr")
}

// ScenePath returns the object-list config file for a scene size.
func ScenePath(configDir string, sceneSize int) string {
	return filepath.Join(configDir, fmt.Sprintf("scene-%d-objects.toml", sceneSize))
}

// CameraPath returns the camera config file for a scene size.
func CameraPath(configDir string, sceneSize int) string {
	return filepath.Join(configDir, fmt.Sprintf("scene-%d-camera.toml", sceneSize))
}
