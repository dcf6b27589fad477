package render

import (
	"fmt"
	"image/color"
	"io"

	"lifewatch/pkg/census"
	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

var kindColors = map[shapes.Kind]color.RGBA{
	shapes.Still:      {R: 80, G: 200, B: 120, A: 255},
	shapes.Oscillator: {R: 240, G: 200, B: 60, A: 255},
	shapes.Spaceship:  {R: 240, G: 90, B: 90, A: 255},
}

// KindColor returns the colour used for recognised clusters of kind k.
// Unrecognised clusters have none.
func KindColor(k shapes.Kind) (color.RGBA, bool) {
	c, ok := kindColors[k]
	return c, ok
}

// fillBinaryRGBA converts cell data into RGBA pixels in buf: any non-dead
// cell gets on, dead cells get off.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// tintDetections recolours the live cells inside each recognised
// detection's box with its kind colour. Boxes wrap around the w*h torus.
func tintDetections(buf []byte, cells []uint8, w, h int, dets []census.Detection) {
	for _, d := range dets {
		col, ok := kindColors[d.Kind]
		if !ok {
			continue
		}
		for dy := 0; dy < d.Height; dy++ {
			y := (d.Anchor.Y + dy) % h
			for dx := 0; dx < d.Width; dx++ {
				x := (d.Anchor.X + dx) % w
				i := y*w + x
				if cells[i] == core.Dead {
					continue
				}
				buf[i*4+0] = col.R
				buf[i*4+1] = col.G
				buf[i*4+2] = col.B
				buf[i*4+3] = col.A
			}
		}
	}
}

// Gray maps cells onto the 0/255 grayscale encoding used by PGM-style
// outputs.
func Gray(cells []uint8) []uint8 {
	out := make([]uint8, len(cells))
	for i, c := range cells {
		if c != 0 {
			out[i] = 255
		}
	}
	return out
}

// PGM writes g as a binary (P5) portable graymap, live cells white.
func PGM(w io.Writer, g *core.Grid) error {
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", g.W, g.H); err != nil {
		return err
	}
	_, err := w.Write(Gray(g.Cells()))
	return err
}
