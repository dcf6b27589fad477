package cluster

import "lifewatch/pkg/core"

// Options tunes Extract.
type Options struct {
	Adjacency Adjacency
}

var (
	orthogonalDirs = []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	mooreDirs      = []core.Point{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}
)

type node struct {
	x, y   int // wrapped grid position
	ux, uy int // position unwrapped from the flood origin
}

// Extract partitions the live cells of g into maximal components under
// toroidal 4-directional adjacency. g is only read.
func Extract(g *core.Grid) []Cluster {
	return ExtractWith(g, Options{})
}

// Count returns the number of clusters Extract would produce.
func Count(g *core.Grid) int {
	return len(Extract(g))
}

// ExtractWith is Extract with a selectable adjacency. Clusters are emitted
// in row-major order of their first cell; callers should not depend on it.
func ExtractWith(g *core.Grid, opts Options) []Cluster {
	w, h := g.W, g.H
	cells := g.Cells()

	var passable []bool
	if opts.Adjacency == Bridged {
		passable = bridgeMask(g)
	} else {
		passable = make([]bool, len(cells))
		for i, c := range cells {
			passable[i] = c != core.Dead
		}
	}
	dirs := orthogonalDirs
	if opts.Adjacency == Moore {
		dirs = mooreDirs
	}

	visited := make([]bool, len(cells))
	var out []Cluster
	var queue []node
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !passable[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue[:0], node{x: x, y: y, ux: x, uy: y})

			c := Cluster{Grid: core.NewGrid(w, h)}
			dst := c.Grid.Cells()
			for head := 0; head < len(queue); head++ {
				n := queue[head]
				i := n.y*w + n.x
				if cells[i] != core.Dead {
					dst[i] = cells[i]
					c.Cells = append(c.Cells, core.Point{X: n.x, Y: n.y})
					c.offsets = append(c.offsets, core.Point{X: n.ux, Y: n.uy})
				}
				for _, d := range dirs {
					nx, ny := g.Wrap(n.x+d.X, n.y+d.Y)
					ni := ny*w + nx
					if visited[ni] || !passable[ni] {
						continue
					}
					visited[ni] = true
					queue = append(queue, node{x: nx, y: ny, ux: n.ux + d.X, uy: n.uy + d.Y})
				}
			}
			if len(c.Cells) > 0 {
				out = append(out, c)
			}
		}
	}
	return out
}

// bridgeMask marks live cells and dead cells enclosed by live ones. A dead
// cell with fewer than two live orthogonal neighbours seeds the background,
// which then spreads through orthogonally adjacent dead cells; whatever the
// background never reaches is passable.
func bridgeMask(g *core.Grid) []bool {
	w := g.W
	cells := g.Cells()
	background := make([]bool, len(cells))
	var queue []int
	for y := 0; y < g.H; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if cells[idx] != core.Dead {
				continue
			}
			live := 0
			for _, d := range orthogonalDirs {
				if g.Alive(x+d.X, y+d.Y) {
					live++
				}
			}
			if live < 2 {
				background[idx] = true
				queue = append(queue, idx)
			}
		}
	}
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x, y := idx%w, idx/w
		for _, d := range orthogonalDirs {
			nx, ny := g.Wrap(x+d.X, y+d.Y)
			ni := ny*w + nx
			if background[ni] || cells[ni] != core.Dead {
				continue
			}
			background[ni] = true
			queue = append(queue, ni)
		}
	}

	passable := make([]bool, len(cells))
	for i := range passable {
		passable[i] = !background[i]
	}
	return passable
}
