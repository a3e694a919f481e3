package matrix

// Sweep is one axis-restricted parameter sweep. Expansion is the full
// cartesian product over the five axis value lists; a sweep that varies only
// one axis pins the remaining axes to single-element lists.
type Sweep struct {
	Name            string       `yaml:"name"`
	SceneSizes      []int        `yaml:"scene_sizes"`
	Resolutions     []Resolution `yaml:"resolutions"`
	ThreadCounts    []int        `yaml:"thread_counts"`
	Modes           []Mode       `yaml:"modes"`
	SamplesPerPixel []int        `yaml:"samples_per_pixel"`
}

// Size returns the number of cases the sweep expands to, before dedup.
func (sw Sweep) Size() int {
	return len(sw.SceneSizes) * len(sw.Resolutions) * len(sw.ThreadCounts) * len(sw.Modes) * len(sw.SamplesPerPixel)
}

// expandInto adds every case of the sweep's cartesian product to the set.
func (sw Sweep) expandInto(s Set) {
	for _, scene := range sw.SceneSizes {
		for _, res := range sw.Resolutions {
			for _, threads := range sw.ThreadCounts {
				for _, mode := range sw.Modes {
					for _, spp := range sw.SamplesPerPixel {
						s.Add(TestCase{
							SceneSize:       scene,
							Width:           res.Width,
							Height:          res.Height,
							ThreadCount:     threads,
							Mode:            mode,
							SamplesPerPixel: spp,
						})
					}
				}
			}
		}
	}
}

// Generator produces the deduplicated matrix from a list of sweeps.
type Generator struct {
	Sweeps []Sweep
}

// Produce expands every sweep and unions the results. Overlapping tuples
// across sweeps collapse to one entry. Sweep definitions are static data, so
// there are no error conditions.
func (g Generator) Produce() Set {
	s := NewSet()
	for _, sw := range g.Sweeps {
		sw.expandInto(s)
	}
	return s
}
