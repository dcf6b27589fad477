//go:build ebiten

package ui

import (
	"fmt"
	"strings"

	"lifewatch/internal/render"
	"lifewatch/pkg/census"
	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// frameProvider is satisfied by runner.Session, whose Observe is cached per
// generation.
type frameProvider interface {
	Observe() census.Frame
	Generation() int
}

// Overlay outlines recognised clusters and prints the current tally.
type Overlay struct {
	sim       core.Sim
	scale     int
	showBoxes bool
	showTally bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showBoxes: true, showTally: true}
}

// Update toggles overlay layers: 1 for boxes, 2 for the tally.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBoxes = !o.showBoxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTally = !o.showTally
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(frameProvider)
	if !ok {
		return
	}
	frame := provider.Observe()
	scale := float32(max(o.scale, 1))

	if o.showBoxes {
		for _, d := range frame.Detections {
			col, known := render.KindColor(d.Kind)
			if !known {
				continue
			}
			x := float32(d.Anchor.X) * scale
			y := float32(d.Anchor.Y) * scale
			vector.StrokeRect(screen, x, y, float32(d.Width)*scale, float32(d.Height)*scale, 1, col, false)
		}
	}

	if o.showTally {
		var b strings.Builder
		fmt.Fprintf(&b, "gen %d\n", provider.Generation())
		for _, c := range frame.Tally.Sorted() {
			if c.Name == shapes.None {
				continue
			}
			fmt.Fprintf(&b, "%s %d\n", c.Name, c.Count)
		}
		ebitenutil.DebugPrint(screen, b.String())
	}
}
