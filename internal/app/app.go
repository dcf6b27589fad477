//go:build ebiten

package app

import (
	"time"

	"lifewatch/internal/render"
	"lifewatch/internal/ui"
	"lifewatch/pkg/census"
	"lifewatch/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type generationCounter interface {
	Generation() int
}

type observer interface {
	Observe() census.Frame
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay

	scale    int
	limit    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. Stepping halts once
// the simulation reports limit generations; limit <= 0 runs forever.
func New(sim core.Sim, scale int, seed int64, limit int) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		scale:   scale,
		limit:   limit,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

func (g *Game) done() bool {
	if g.limit <= 0 {
		return false
	}
	c, ok := g.sim.(generationCounter)
	return ok && c.Generation() >= g.limit
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	if (!g.paused || g.tickOnce) && !g.done() {
		g.sim.Step()
	}
	g.tickOnce = false
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var dets []census.Detection
	if o, ok := g.sim.(observer); ok {
		dets = o.Observe().Detections
	}
	g.painter.Paint(screen, g.sim.Cells(), dets, g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
