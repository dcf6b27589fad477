//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"lifewatch/pkg/census"
)

// GridPainter keeps one grid-sized image. Live cells are drawn in Live,
// except those belonging to a recognised cluster, which take the colour of
// its kind.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	Live, Dead color.Color
}

// NewGridPainter allocates a painter for a w*h grid, white on black.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:    w,
		h:    h,
		img:  ebiten.NewImage(w, h),
		buf:  make([]byte, 4*w*h),
		Live: color.White,
		Dead: color.Black,
	}
}

// Paint uploads cells, tinted by dets, and draws the image scaled onto dst.
// Cells of the wrong length are ignored.
func (gp *GridPainter) Paint(dst *ebiten.Image, cells []uint8, dets []census.Detection, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, gp.Live, gp.Dead)
	tintDetections(gp.buf, cells, gp.w, gp.h, dets)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
