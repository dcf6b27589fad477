package render

import (
	"bufio"
	"io"

	"lifewatch/pkg/core"
)

// Text glyphs for live and dead cells.
const (
	LiveGlyph = '#'
	DeadGlyph = '.'
)

// Text writes g as one line per row. Rows wider than maxCols are clipped;
// maxCols <= 0 disables clipping.
func Text(w io.Writer, g *core.Grid, maxCols int) error {
	cols := g.W
	if maxCols > 0 && maxCols < cols {
		cols = maxCols
	}
	bw := bufio.NewWriter(w)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		row := cells[y*g.W : y*g.W+cols]
		for _, c := range row {
			if c != core.Dead {
				bw.WriteByte(LiveGlyph)
			} else {
				bw.WriteByte(DeadGlyph)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
