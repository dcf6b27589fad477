package census

import (
	"testing"

	"lifewatch/pkg/cluster"
	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

func place(g *core.Grid, ox, oy int, rows ...string) {
	for y, row := range rows {
		for x, c := range row {
			if c == 'X' {
				g.Set(ox+x, oy+y, core.Alive)
			}
		}
	}
}

func TestClassifyCluster(t *testing.T) {
	g := core.NewGrid(10, 10)
	place(g, 2, 3, "XX", "XX")

	cs := cluster.Extract(g)
	if len(cs) != 1 {
		t.Fatalf("got %d clusters, want 1", len(cs))
	}
	if got := Classify(cs[0]); got != "block" {
		t.Fatalf("Classify = %q, want block", got)
	}
}

func TestClassifyUnrecognised(t *testing.T) {
	g := core.NewGrid(12, 12)
	place(g, 3, 3,
		"XXXXX",
		"X.X.X",
		"XXXXX",
		"X...X",
		"XX.XX",
	)
	cs := cluster.Extract(g)
	if len(cs) != 1 {
		t.Fatalf("got %d clusters, want 1", len(cs))
	}
	if got := Classify(cs[0]); got != shapes.None {
		t.Fatalf("Classify = %q, want %q", got, shapes.None)
	}
}

func TestObserveMixedField(t *testing.T) {
	g := core.NewGrid(24, 24)
	place(g, 1, 1, "XX", "XX")
	place(g, 6, 1, ".XX.", "X..X", ".XX.")
	place(g, 14, 1, "XXX")
	place(g, 1, 8, ".X.", "..X", "XXX")
	// The twelve-cell lwss phase is connected even under Moore adjacency;
	// the nine-cell phases are not.
	place(g, 8, 8, "..XX.", "XX.XX", "XXXX.", ".XX..")
	place(g, 16, 16, "X")

	tests := []struct {
		adj  cluster.Adjacency
		want Tally
	}{
		{cluster.Moore, Tally{"block": 1, "beehive": 1, "blinker": 1, "glider": 1, "lwss": 1, shapes.None: 1}},
		{cluster.Bridged, Tally{"block": 1, "beehive": 1, "blinker": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.adj.String(), func(t *testing.T) {
			f := Observer{Adjacency: tt.adj}.Observe(g)
			for name, n := range tt.want {
				if f.Tally[name] != n {
					t.Errorf("tally[%s] = %d, want %d (tally %v)", name, f.Tally[name], n, f.Tally)
				}
			}
			if f.Tally.Total() != len(f.Detections) {
				t.Fatalf("tally total %d != %d detections", f.Tally.Total(), len(f.Detections))
			}
		})
	}
}

func TestObserveDetectionDetails(t *testing.T) {
	g := core.NewGrid(16, 16)
	place(g, 5, 9, "XXX")

	f := Observer{}.Observe(g)
	if len(f.Detections) != 1 {
		t.Fatalf("got %d detections, want 1", len(f.Detections))
	}
	d := f.Detections[0]
	want := Detection{
		Name:       "blinker",
		Kind:       shapes.Oscillator,
		Anchor:     core.Point{X: 5, Y: 9},
		Width:      3,
		Height:     1,
		Population: 3,
	}
	if d != want {
		t.Fatalf("detection = %+v, want %+v", d, want)
	}
}

func TestObserveEmpty(t *testing.T) {
	f := Observer{Adjacency: cluster.Moore}.Observe(core.NewGrid(8, 8))
	if len(f.Detections) != 0 || f.Tally.Total() != 0 {
		t.Fatalf("empty grid observed as %+v", f)
	}
}

func TestTallySorted(t *testing.T) {
	tally := Tally{"block": 2, "glider": 5, "blinker": 2}
	tally.Add(Tally{"block": 1, shapes.None: 1})

	got := tally.Sorted()
	want := []Count{{"glider", 5}, {"block", 3}, {"blinker", 2}, {shapes.None, 1}}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if tally.Total() != 11 {
		t.Fatalf("Total() = %d, want 11", tally.Total())
	}
}
