// Package shapes holds the catalog of named life-forms and the
// rotation-invariant matching used to recognise them.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"lifewatch/pkg/core"
)

// ErrRagged is returned by Parse when rows differ in length.
var ErrRagged = errors.New("shapes: rows have different lengths")

// Pattern is a small row-major bitmap. Patterns are treated as immutable;
// every transform returns a new value.
type Pattern struct {
	W, H  int
	cells []uint8
}

// NewPattern returns an all-dead pattern of the given size.
func NewPattern(w, h int) Pattern {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Pattern{W: w, H: h, cells: make([]uint8, w*h)}
}

// Parse builds a pattern from rows of 'X' or 'O' (alive) and '.' (dead).
func Parse(rows ...string) (Pattern, error) {
	if len(rows) == 0 {
		return Pattern{}, nil
	}
	w := len(rows[0])
	p := NewPattern(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return Pattern{}, fmt.Errorf("row %d: %w", y, ErrRagged)
		}
		for x := 0; x < w; x++ {
			switch row[x] {
			case 'X', 'O':
				p.cells[y*w+x] = core.Alive
			case '.':
			default:
				return Pattern{}, fmt.Errorf("shapes: row %d col %d: unexpected %q", y, x, row[x])
			}
		}
	}
	return p, nil
}

// MustParse is Parse for package-level literals; it panics on bad input.
func MustParse(rows ...string) Pattern {
	p, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return p
}

// FromGrid copies the whole grid into a pattern, keeping cell values.
func FromGrid(g *core.Grid) Pattern {
	p := NewPattern(g.W, g.H)
	copy(p.cells, g.Cells())
	return p
}

// At returns the cell value at (x, y); out-of-range reads are dead.
func (p Pattern) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= p.W || y >= p.H {
		return core.Dead
	}
	return p.cells[y*p.W+x]
}

// Set writes v at (x, y). It is meant for building patterns, not for
// mutating shared ones.
func (p Pattern) Set(x, y int, v uint8) {
	p.cells[y*p.W+x] = v
}

// Empty reports whether the pattern has no live cells.
func (p Pattern) Empty() bool { return p.Population() == 0 }

// Population counts live cells.
func (p Pattern) Population() int {
	n := 0
	for _, c := range p.cells {
		if c != core.Dead {
			n++
		}
	}
	return n
}

// Equal reports exact equality: same dimensions and same cell values.
func (p Pattern) Equal(o Pattern) bool {
	if p.W != o.W || p.H != o.H {
		return false
	}
	for i, c := range p.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Rotate returns the pattern turned 90° clockwise.
func (p Pattern) Rotate() Pattern {
	out := NewPattern(p.H, p.W)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			// (x, y) lands at column H-1-y, row x.
			out.cells[x*out.W+(p.H-1-y)] = p.cells[y*p.W+x]
		}
	}
	return out
}

// trimRows drops leading and trailing all-dead rows.
func (p Pattern) trimRows() Pattern {
	top, bottom := 0, p.H
	for top < bottom && p.rowEmpty(top) {
		top++
	}
	for bottom > top && p.rowEmpty(bottom-1) {
		bottom--
	}
	if top == 0 && bottom == p.H {
		return p
	}
	out := NewPattern(p.W, bottom-top)
	copy(out.cells, p.cells[top*p.W:bottom*p.W])
	return out
}

func (p Pattern) rowEmpty(y int) bool {
	for _, c := range p.cells[y*p.W : (y+1)*p.W] {
		if c != core.Dead {
			return false
		}
	}
	return true
}

// String renders the pattern as rows of 'X' and '.' separated by newlines.
func (p Pattern) String() string {
	var b strings.Builder
	for y := 0; y < p.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < p.W; x++ {
			if p.cells[y*p.W+x] != core.Dead {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
