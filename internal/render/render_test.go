package render

import (
	"image/color"
	"slices"
	"strings"
	"testing"

	"lifewatch/pkg/census"
	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

func TestFillBinaryRGBA(t *testing.T) {
	cells := []uint8{0, 1, 0}
	buf := make([]byte, 4*len(cells))
	fillBinaryRGBA(buf, cells, color.White, color.Black)

	want := []byte{
		0, 0, 0, 255,
		255, 255, 255, 255,
		0, 0, 0, 255,
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
}

func TestTintDetections(t *testing.T) {
	// 4x3 torus: a blinker wrapping from column 3 to 1 on row 0, plus a lone
	// unrecognised cell at (1,2).
	cells := []uint8{
		1, 0, 1, 1,
		0, 0, 0, 0,
		0, 1, 0, 0,
	}
	buf := make([]byte, 4*len(cells))
	fillBinaryRGBA(buf, cells, color.White, color.Black)
	dets := []census.Detection{
		{Name: "blinker", Kind: shapes.Oscillator, Anchor: core.Point{X: 2, Y: 0}, Width: 3, Height: 1},
		{Name: shapes.None, Anchor: core.Point{X: 1, Y: 2}, Width: 1, Height: 1},
	}
	tintDetections(buf, cells, 4, 3, dets)

	osc, ok := KindColor(shapes.Oscillator)
	if !ok {
		t.Fatal("oscillators have no colour")
	}
	pixel := func(i int) color.RGBA {
		return color.RGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
	}
	for _, i := range []int{0, 2, 3} {
		if got := pixel(i); got != osc {
			t.Fatalf("blinker cell %d = %v, want %v", i, got, osc)
		}
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := pixel(9); got != white {
		t.Fatalf("unrecognised cell = %v, want plain live colour", got)
	}
	if got := pixel(1); got != (color.RGBA{A: 255}) {
		t.Fatalf("dead cell = %v, want dead colour", got)
	}
	if _, ok := KindColor(""); ok {
		t.Fatal("unrecognised clusters should have no kind colour")
	}
}

func TestGray(t *testing.T) {
	if got := Gray([]uint8{0, 1, 1, 0}); !slices.Equal(got, []uint8{0, 255, 255, 0}) {
		t.Fatalf("Gray = %v", got)
	}
}

func TestPGM(t *testing.T) {
	g := core.NewGrid(2, 2)
	g.Set(1, 0, core.Alive)

	var b strings.Builder
	if err := PGM(&b, g); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "P5\n2 2\n255\n\x00\xff\x00\x00"; got != want {
		t.Fatalf("PGM = %q, want %q", got, want)
	}
}

func TestText(t *testing.T) {
	g := core.NewGrid(4, 2)
	g.Set(0, 0, core.Alive)
	g.Set(3, 1, core.Alive)

	var b strings.Builder
	if err := Text(&b, g, 0); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "#...\n...#\n"; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}

	b.Reset()
	if err := Text(&b, g, 2); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "#.\n..\n"; got != want {
		t.Fatalf("clipped Text = %q, want %q", got, want)
	}
}
