// Package cluster partitions the live cells of a toroidal grid into
// connected components.
package cluster

import (
	"fmt"

	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

// Adjacency selects which cells count as connected.
type Adjacency int

const (
	// Orthogonal joins live cells that share an edge.
	Orthogonal Adjacency = iota
	// Bridged is Orthogonal, but dead cells enclosed by a pattern also
	// conduct, so rings such as beehive, loaf and tub stay whole.
	Bridged
	// Moore joins live cells that share an edge or a corner.
	Moore
)

// String returns the name used in config files and flags.
func (a Adjacency) String() string {
	switch a {
	case Orthogonal:
		return "orthogonal"
	case Bridged:
		return "bridged"
	case Moore:
		return "moore"
	default:
		return fmt.Sprintf("adjacency(%d)", int(a))
	}
}

// ParseAdjacency maps a config name to an Adjacency.
func ParseAdjacency(s string) (Adjacency, error) {
	switch s {
	case "", "orthogonal":
		return Orthogonal, nil
	case "bridged":
		return Bridged, nil
	case "moore":
		return Moore, nil
	}
	return 0, fmt.Errorf("unknown adjacency %q", s)
}

// Cluster is one connected component of live cells.
type Cluster struct {
	// Grid is a copy of the source grid with every cell outside the
	// component cleared.
	Grid *core.Grid
	// Cells lists the member live cells in discovery order.
	Cells []core.Point

	// offsets holds unwrapped coordinates parallel to Cells.
	offsets []core.Point
}

// Size returns the number of live cells in the cluster.
func (c Cluster) Size() int { return len(c.Cells) }

// Anchor returns the top-left corner of the cluster's bounding box in grid
// coordinates (wrapped back onto the torus).
func (c Cluster) Anchor() core.Point {
	minX, minY, _, _, ok := c.unwrappedBounds()
	if !ok {
		return c.trimmedAnchor()
	}
	x, y := c.Grid.Wrap(minX, minY)
	return core.Point{X: x, Y: y}
}

// Pattern returns the minimal bounding sub-grid of the component. A
// component straddling the edge of the torus is reassembled from the
// coordinates recorded while flooding; one that wraps all the way round
// falls back to trimming Grid.
func (c Cluster) Pattern() shapes.Pattern {
	minX, minY, maxX, maxY, ok := c.unwrappedBounds()
	if !ok {
		return shapes.Shave(shapes.FromGrid(c.Grid))
	}
	p := shapes.NewPattern(maxX-minX+1, maxY-minY+1)
	for i, o := range c.offsets {
		src := c.Cells[i]
		p.Set(o.X-minX, o.Y-minY, c.Grid.At(src.X, src.Y))
	}
	return p
}

func (c Cluster) unwrappedBounds() (minX, minY, maxX, maxY int, ok bool) {
	if len(c.offsets) == 0 || len(c.offsets) != len(c.Cells) {
		return 0, 0, 0, 0, false
	}
	minX, minY = c.offsets[0].X, c.offsets[0].Y
	maxX, maxY = minX, minY
	for _, o := range c.offsets[1:] {
		minX = min(minX, o.X)
		maxX = max(maxX, o.X)
		minY = min(minY, o.Y)
		maxY = max(maxY, o.Y)
	}
	if maxX-minX+1 > c.Grid.W || maxY-minY+1 > c.Grid.H {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}

func (c Cluster) trimmedAnchor() core.Point {
	g := c.Grid
	top, left := g.H, g.W
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Alive(x, y) {
				top = min(top, y)
				left = min(left, x)
			}
		}
	}
	if top == g.H {
		return core.Point{}
	}
	return core.Point{X: left, Y: top}
}
