package runner

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"lifewatch/pkg/cluster"
	"lifewatch/pkg/core"
	"lifewatch/pkg/seed"
	"lifewatch/pkg/shapes"
	"lifewatch/pkg/sims/life"
)

func blinkerGrid() *core.Grid {
	g := core.NewGrid(10, 10)
	g.Set(4, 3, core.Alive)
	g.Set(4, 4, core.Alive)
	g.Set(4, 5, core.Alive)
	return g
}

func TestRunReportsEachGeneration(t *testing.T) {
	g := blinkerGrid()
	before := g.Clone()

	var reports []Report
	final, err := Run(g, 3, Options{}, func(r Report) error {
		reports = append(reports, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !g.Equal(before) {
		t.Fatal("Run modified the caller's grid")
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i, r := range reports {
		if r.Generation != i {
			t.Fatalf("report %d has generation %d", i, r.Generation)
		}
		if r.Population != 3 {
			t.Fatalf("generation %d population = %d, want 3", i, r.Population)
		}
		if r.Frame.Tally["blinker"] != 1 {
			t.Fatalf("generation %d tally = %v", i, r.Frame.Tally)
		}
		if r.RunID == "" || r.RunID != reports[0].RunID {
			t.Fatalf("run id changed within a run: %q vs %q", r.RunID, reports[0].RunID)
		}
	}
	if want := life.Step(before); !final.Equal(want) {
		t.Fatalf("final grid after 3 steps:\n%s\nwant:\n%s", final, want)
	}
}

func TestRunZeroGenerations(t *testing.T) {
	g := blinkerGrid()
	calls := 0
	final, err := Run(g, 0, Options{}, func(Report) error { calls++; return nil })
	if err != nil || calls != 0 || !final.Equal(g) {
		t.Fatalf("zero generations: calls=%d err=%v", calls, err)
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0
	_, err := Run(blinkerGrid(), 10, Options{}, func(r Report) error {
		calls++
		if r.Generation == 1 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("err = %v, want errStop", err)
	}
	if calls != 2 {
		t.Fatalf("sink called %d times, want 2", calls)
	}
}

func TestTickObservesPreStepGrid(t *testing.T) {
	g := core.NewGrid(12, 12)
	seed.Stamp(g, 2, 2, shapes.MustParse(".X.", "..X", "XXX"))

	s := NewSession(g, Options{Adjacency: cluster.Moore})
	r := s.Tick()
	if len(r.Frame.Detections) != 1 {
		t.Fatalf("got %d detections, want 1", len(r.Frame.Detections))
	}
	if !r.Grid.Equal(g) {
		t.Fatal("report grid is not the pre-step grid")
	}
	d := r.Frame.Detections[0]
	if d.Name != "glider" || d.Anchor != (core.Point{X: 2, Y: 2}) {
		t.Fatalf("detection = %+v", d)
	}
	if s.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", s.Generation())
	}
	if !s.Grid().Equal(life.Step(g)) {
		t.Fatal("session grid is not the stepped grid")
	}
	if got := s.Observe().Tally["glider"]; got != 1 {
		t.Fatalf("stepped glider tally = %d, want 1", got)
	}
}

func TestObserveCachesPerGeneration(t *testing.T) {
	g := core.NewGrid(12, 12)
	seed.Stamp(g, 2, 2, shapes.MustParse("XX", "XX"))
	s := NewSession(g, Options{})

	first := s.Observe()
	// Mutating the grid behind the session's back is only visible once the
	// generation changes.
	s.Grid().Set(8, 8, core.Alive)
	if again := s.Observe(); len(again.Detections) != len(first.Detections) {
		t.Fatalf("second Observe re-ran extraction: %d vs %d detections", len(again.Detections), len(first.Detections))
	}

	r := s.Tick()
	if len(r.Frame.Detections) != 1 {
		t.Fatalf("Tick did not reuse the cached frame: %d detections", len(r.Frame.Detections))
	}
	if got := len(s.Observe().Detections); got != 1 {
		t.Fatalf("next generation has %d detections, want 1 (block)", got)
	}
}

func TestParallelWorkersMatchSerial(t *testing.T) {
	g := seed.Random(40, 30, 0.3, 11)
	serial, err := Run(g, 12, Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Run(g, 12, Options{Workers: 4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !serial.Equal(parallel) {
		t.Fatal("parallel run diverged from serial run")
	}
}

func TestSessionReset(t *testing.T) {
	g := blinkerGrid()
	s := NewSession(g, Options{})
	id := s.ID()
	s.Step()
	s.Step()
	s.Step()

	s.Reset(0)
	if s.Generation() != 0 || !s.Grid().Equal(g) {
		t.Fatal("Reset did not restore the initial grid")
	}
	if s.ID() == id {
		t.Fatal("Reset kept the previous run id")
	}

	placements := []seed.Placement{{Name: "block", X: 0, Y: 0}}
	soup := NewSession(g, Options{Density: 0.5, Structures: placements})
	soup.Step()
	soup.Reset(3)
	want := seed.Random(10, 10, 0.5, 3)
	if err := seed.Place(want, placements); err != nil {
		t.Fatal(err)
	}
	if soup.Generation() != 0 || !soup.Grid().Equal(want) {
		t.Fatal("Reset did not refill the soup and stamp the structures")
	}
}

func TestSessionImplementsSim(t *testing.T) {
	var sim core.Sim = NewSession(blinkerGrid(), Options{})
	if sim.Name() != "life" || sim.Size() != (core.Size{W: 10, H: 10}) || len(sim.Cells()) != 100 {
		t.Fatalf("unexpected sim: %s %+v", sim.Name(), sim.Size())
	}
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := Run(blinkerGrid(), 2, Options{Logger: log}, func(Report) error { return nil }); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"run started", "msg=tick", "run finished", "run_id="} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRunWithoutSinkSkipsClassification(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := blinkerGrid()
	final, err := Run(g, 3, Options{Logger: log}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !final.Equal(life.Step(g)) {
		t.Fatal("final grid after 3 steps is not the second blinker phase")
	}
	if out := buf.String(); strings.Contains(out, "msg=tick") {
		t.Fatalf("generations were classified without a sink:\n%s", out)
	}
}
