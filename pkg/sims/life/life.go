package life

import (
	"sync"

	"lifewatch/pkg/core"
)

// LiveNeighbors counts live cells among the 8 toroidally wrapped neighbours
// of (x, y), excluding the cell itself.
func LiveNeighbors(g *core.Grid, x, y int) int {
	w, h := g.W, g.H
	cells := g.Cells()
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := (y + dy + h) % h
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + w) % w
			if cells[ny*w+nx] != core.Dead {
				n++
			}
		}
	}
	return n
}

// Next applies the B3/S23 rule to a single cell.
func Next(alive bool, neighbors int) bool {
	return (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3)
}

// Step returns the next generation of g. g is not modified.
func Step(g *core.Grid) *core.Grid {
	next := core.NewGrid(g.W, g.H)
	StepInto(next, g)
	return next
}

// StepInto writes the generation following src into dst. Both grids must
// share dimensions and must not alias.
func StepInto(dst, src *core.Grid) {
	checkBuffers(dst, src)
	stepRows(dst, src, 0, src.H)
}

// StepParallel is StepInto with rows split into contiguous bands, one
// goroutine per band. It returns once every band has been written.
func StepParallel(dst, src *core.Grid, workers int) {
	checkBuffers(dst, src)
	if workers > src.H {
		workers = src.H
	}
	if workers <= 1 {
		stepRows(dst, src, 0, src.H)
		return
	}

	band := src.H / workers
	extra := src.H % workers
	var wg sync.WaitGroup
	start := 0
	for i := 0; i < workers; i++ {
		end := start + band
		if i < extra {
			end++
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			stepRows(dst, src, y0, y1)
		}(start, end)
		start = end
	}
	wg.Wait()
}

func stepRows(dst, src *core.Grid, y0, y1 int) {
	w := src.W
	cur := src.Cells()
	nxt := dst.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if Next(cur[idx] != core.Dead, LiveNeighbors(src, x, y)) {
				nxt[idx] = core.Alive
			} else {
				nxt[idx] = core.Dead
			}
		}
	}
}

func checkBuffers(dst, src *core.Grid) {
	if dst == src {
		panic("life: destination aliases source grid")
	}
	if dst.W != src.W || dst.H != src.H {
		panic("life: destination size differs from source grid")
	}
}

// Life implements core.Sim for Conway's Game of Life with toroidal wrapping.
type Life struct {
	cur     *core.Grid
	nxt     *core.Grid
	density float64
	workers int
}

// FromGrid wraps an existing grid; the Life takes ownership of g. Reset
// refills the board as a random soup of the given live-cell density.
func FromGrid(g *core.Grid, density float64) *Life {
	return &Life{cur: g, nxt: core.NewGrid(g.W, g.H), density: density}
}

// SetWorkers selects banded parallel stepping when n > 1.
func (l *Life) SetWorkers(n int) { l.workers = n }

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.cur.Size() }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Grid returns the current generation.
func (l *Life) Grid() *core.Grid { return l.cur }

// Reset randomizes the board using the provided seed. The result matches
// seed.Random for the same size, density and seed.
func (l *Life) Reset(seed int64) {
	core.NewRNG(seed).FillDensity(l.cur.Cells(), l.density)
}

// Density returns the live-cell density used by Reset.
func (l *Life) Density() float64 { return l.density }

// Step advances the simulation by one generation.
func (l *Life) Step() {
	StepParallel(l.nxt, l.cur, l.workers)
	l.cur, l.nxt = l.nxt, l.cur
}
