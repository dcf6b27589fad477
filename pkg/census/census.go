// Package census classifies the clusters of a grid against the shape
// catalog.
package census

import (
	"sort"

	"lifewatch/pkg/cluster"
	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

// Classify names the catalog structure a cluster matches, or shapes.None.
func Classify(c cluster.Cluster) string {
	return shapes.Classify(c.Pattern())
}

// Detection describes one classified cluster.
type Detection struct {
	Name       string      `yaml:"name" json:"name"`
	Kind       shapes.Kind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Anchor     core.Point  `yaml:"anchor" json:"anchor"`
	Width      int         `yaml:"width" json:"width"`
	Height     int         `yaml:"height" json:"height"`
	Population int         `yaml:"population" json:"population"`
}

// Tally counts detections by name.
type Tally map[string]int

// Add merges o into t.
func (t Tally) Add(o Tally) {
	for k, v := range o {
		t[k] += v
	}
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Count is a single tally row.
type Count struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Sorted returns the tally ordered by descending count, then name.
func (t Tally) Sorted() []Count {
	out := make([]Count, 0, len(t))
	for k, v := range t {
		out = append(out, Count{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Frame is the classification of every cluster in one grid.
type Frame struct {
	Detections []Detection
	Tally      Tally
}

// Observer extracts and classifies clusters. The zero value uses
// orthogonal adjacency.
type Observer struct {
	Adjacency cluster.Adjacency
}

// Observe classifies every cluster of g. g is only read.
func (o Observer) Observe(g *core.Grid) Frame {
	clusters := cluster.ExtractWith(g, cluster.Options{Adjacency: o.Adjacency})
	f := Frame{
		Detections: make([]Detection, 0, len(clusters)),
		Tally:      Tally{},
	}
	for _, c := range clusters {
		p := c.Pattern()
		d := Detection{
			Name:       shapes.None,
			Anchor:     c.Anchor(),
			Width:      p.W,
			Height:     p.H,
			Population: c.Size(),
		}
		if e, ok := shapes.Lookup(p); ok {
			d.Name = e.Name
			d.Kind = e.Kind
		}
		f.Detections = append(f.Detections, d)
		f.Tally[d.Name]++
	}
	return f
}
