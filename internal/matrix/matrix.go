// Package matrix builds the deduplicated benchmark test matrix.
//
// The matrix is the union of several axis-restricted sweeps. Each sweep is a
// full cartesian product over its axis value lists; sweeps overlap freely and
// the union collapses structurally identical cases to a single entry.
package matrix

import (
	"fmt"
	"sort"
)

// Mode selects the renderer's inner loop implementation.
type Mode string

const (
	ModeScaler     Mode = "scaler"
	ModeVectorized Mode = "vectorized"
)

// ValidModes lists the render modes the external renderer accepts.
var ValidModes = []Mode{ModeScaler, ModeVectorized}

// Resolution is an output image size in pixels.
type Resolution struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// TestCase is one point in the benchmark parameter space.
//
// TestCase is a comparable value type: equality and hashing are structural
// over all fields, which is what makes Set deduplication work. Fields are
// never mutated after construction.
type TestCase struct {
	SceneSize       int  `json:"scene_size"`
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	ThreadCount     int  `json:"thread_count"`
	Mode            Mode `json:"render_mode"`
	SamplesPerPixel int  `json:"samples_per_pixel"`
}

func (tc TestCase) String() string {
	return fmt.Sprintf("scene %d at %dx%d using %d threads in %s mode at %d samples per pixel",
		tc.SceneSize, tc.Width, tc.Height, tc.ThreadCount, tc.Mode, tc.SamplesPerPixel)
}

// Set is the working test matrix, keyed by the full structural value of
// TestCase. Inserting a case already present is a no-op.
type Set map[TestCase]struct{}

// NewSet creates an empty matrix.
func NewSet() Set {
	return make(Set)
}

// Add inserts a test case. Duplicates collapse silently.
func (s Set) Add(tc TestCase) {
	s[tc] = struct{}{}
}

// Contains reports whether the matrix holds a structurally equal case.
func (s Set) Contains(tc TestCase) bool {
	_, ok := s[tc]
	return ok
}

// Len returns the number of distinct cases.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the cases in a stable order: scene size, width, height,
// thread count, mode, samples per pixel. The matrix itself is unordered;
// callers use this only for reproducible logging and reporting.
func (s Set) Sorted() []TestCase {
	cases := make([]TestCase, 0, len(s))
	for tc := range s {
		cases = append(cases, tc)
	}
	sort.Slice(cases, func(i, j int) bool {
		a, b := cases[i], cases[j]
		switch {
		case a.SceneSize != b.SceneSize:
			return a.SceneSize < b.SceneSize
		case a.Width != b.Width:
			return a.Width < b.Width
		case a.Height != b.Height:
			return a.Height < b.Height
		case a.ThreadCount != b.ThreadCount:
			return a.ThreadCount < b.ThreadCount
		case a.Mode != b.Mode:
			return a.Mode < b.Mode
		default:
			return a.SamplesPerPixel < b.SamplesPerPixel
		}
	})
	return cases
}
