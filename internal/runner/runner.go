// Package runner drives a simulation tick by tick: step the grid, classify
// the clusters of the generation that was just stepped, hand the result to
// a sink, then commit the next generation.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"lifewatch/pkg/census"
	"lifewatch/pkg/cluster"
	"lifewatch/pkg/core"
	"lifewatch/pkg/seed"
	"lifewatch/pkg/sims/life"
)

// Report describes one observed generation.
type Report struct {
	RunID      string
	Generation int
	Population int
	Frame      census.Frame
	// Grid is the observed generation. It is only valid during the Sink
	// call; the buffer is reused by the next tick.
	Grid *core.Grid
}

// Sink consumes reports. Returning an error stops the run.
type Sink func(Report) error

// Options configures a Session.
type Options struct {
	Adjacency cluster.Adjacency
	// Workers > 1 enables banded parallel stepping.
	Workers int
	// Density > 0 makes Reset refill the board as a random soup of that
	// density and stamp Structures over it. Otherwise Reset restores the
	// initial grid.
	Density    float64
	Structures []seed.Placement
	Logger     *slog.Logger
}

// Session owns the current and next grid of one run.
type Session struct {
	id       string
	opts     Options
	observer census.Observer
	initial  *core.Grid
	sim      *life.Life
	gen      int
	log      *slog.Logger

	// frame caches the observation of generation frameGen.
	frame    census.Frame
	frameGen int
	framed   bool
}

// NewSession starts a run from a copy of g.
func NewSession(g *core.Grid, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		opts:     opts,
		observer: census.Observer{Adjacency: opts.Adjacency},
		initial:  g.Clone(),
	}
	s.start(g.Clone())
	return s
}

func (s *Session) start(g *core.Grid) {
	s.id = uuid.New().String()
	s.sim = life.FromGrid(g, s.opts.Density)
	s.sim.SetWorkers(s.opts.Workers)
	s.gen = 0
	s.framed = false
	s.log = s.opts.Logger.With(slog.String("run_id", s.id))
}

// ID identifies the current run; it changes on Reset.
func (s *Session) ID() string { return s.id }

// Generation returns the index of the current grid.
func (s *Session) Generation() int { return s.gen }

// Grid returns the current generation. Callers must not modify it.
func (s *Session) Grid() *core.Grid { return s.sim.Grid() }

// Observe classifies the current grid without advancing. Each generation
// is observed at most once; repeated calls return the cached frame.
func (s *Session) Observe() census.Frame {
	if !s.framed || s.frameGen != s.gen {
		s.frame = s.observer.Observe(s.sim.Grid())
		s.frameGen = s.gen
		s.framed = true
	}
	return s.frame
}

// Advance steps one generation without classifying anything.
func (s *Session) Advance() {
	s.sim.Step()
	s.gen++
}

// Tick advances one generation and reports the clusters of the grid as it
// was before the step.
func (s *Session) Tick() Report {
	pre := s.sim.Grid()
	frame := s.Observe()
	r := Report{
		RunID:      s.id,
		Generation: s.gen,
		Population: pre.Population(),
		Frame:      frame,
		Grid:       pre,
	}
	s.Advance()

	s.log.Debug("tick",
		slog.Int("generation", r.Generation),
		slog.Int("population", r.Population),
		slog.Int("clusters", len(frame.Detections)),
	)
	return r
}

// Name identifies the simulation for the viewer.
func (s *Session) Name() string { return s.sim.Name() }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size { return s.sim.Size() }

// Cells exposes the current grid values for rendering.
func (s *Session) Cells() []uint8 { return s.sim.Cells() }

// Step is Tick without the report, for the core.Sim interface.
func (s *Session) Step() { s.Tick() }

// Reset starts a new run: a fresh soup from n when Density is set, the
// initial grid otherwise.
func (s *Session) Reset(n int64) {
	s.start(s.initial.Clone())
	if s.opts.Density > 0 {
		s.sim.Reset(n)
		// Placements were validated when the initial grid was built.
		_ = seed.Place(s.sim.Grid(), s.opts.Structures)
	}
	s.log.Info("run reset", slog.Int64("seed", n))
}

// Run simulates generations ticks starting from g and passes every report
// to sink. It returns the final grid. g itself is not modified. With a nil
// sink no generation is classified.
func Run(g *core.Grid, generations int, opts Options, sink Sink) (*core.Grid, error) {
	s := NewSession(g, opts)
	s.log.Info("run started",
		slog.Int("width", g.W),
		slog.Int("height", g.H),
		slog.Int("generations", generations),
		slog.String("adjacency", opts.Adjacency.String()),
	)
	for i := 0; i < generations; i++ {
		if sink == nil {
			s.Advance()
			continue
		}
		r := s.Tick()
		if err := sink(r); err != nil {
			return s.Grid(), fmt.Errorf("generation %d: %w", r.Generation, err)
		}
	}
	s.log.Info("run finished",
		slog.Int("generations", s.gen),
		slog.Int("population", s.Grid().Population()),
	)
	return s.Grid(), nil
}
