package shapes

// None is the classification of a pattern that matches no catalog entry.
const None = "none"

// Kind groups catalog entries by behaviour.
type Kind string

const (
	// Still lifes never change.
	Still Kind = "still"
	// Oscillator patterns repeat in place.
	Oscillator Kind = "oscillator"
	// Spaceship patterns repeat translated.
	Spaceship Kind = "spaceship"
)

// Entry pairs a reference pattern with its name. Oscillators and spaceships
// have one entry per phase or orientation, all sharing a name.
type Entry struct {
	Name    string
	Kind    Kind
	Phase   int
	Pattern Pattern
}

// catalog is built once at init and never written afterwards. Order is the
// tie-break for Lookup.
var catalog = build([]struct {
	name string
	kind Kind
	rows []string
}{
	{"block", Still, []string{
		"XX",
		"XX",
	}},
	{"beehive", Still, []string{
		".XX.",
		"X..X",
		".XX.",
	}},
	{"loaf", Still, []string{
		".XX.",
		"X..X",
		".X.X",
		"..X.",
	}},
	{"boat", Still, []string{
		"XX.",
		"X.X",
		".X.",
	}},
	{"tub", Still, []string{
		".X.",
		"X.X",
		".X.",
	}},

	{"blinker", Oscillator, []string{
		"X",
		"X",
		"X",
	}},
	{"blinker", Oscillator, []string{
		"XXX",
	}},
	{"toad", Oscillator, []string{
		"..X.",
		"X..X",
		"X..X",
		".X..",
	}},
	{"toad", Oscillator, []string{
		".XXX",
		"XXX.",
	}},
	{"beacon", Oscillator, []string{
		"XX..",
		"XX..",
		"..XX",
		"..XX",
	}},
	{"beacon", Oscillator, []string{
		"XX..",
		"X...",
		"...X",
		"..XX",
	}},

	{"glider", Spaceship, []string{
		".X.",
		"..X",
		"XXX",
	}},
	{"glider", Spaceship, []string{
		"X.X",
		".XX",
		".X.",
	}},
	{"glider", Spaceship, []string{
		"..X",
		"X.X",
		".XX",
	}},
	{"glider", Spaceship, []string{
		"X..",
		".XX",
		"XX.",
	}},
	{"lwss", Spaceship, []string{
		"X..X.",
		"....X",
		"X...X",
		".XXXX",
	}},
	{"lwss", Spaceship, []string{
		"..XX.",
		"XX.XX",
		"XXXX.",
		".XX..",
	}},
	{"lwss", Spaceship, []string{
		".XXXX",
		"X...X",
		"....X",
		"X..X.",
	}},
	{"lwss", Spaceship, []string{
		".XX..",
		"XXXX.",
		"XX.XX",
		"..XX.",
	}},
})

func build(defs []struct {
	name string
	kind Kind
	rows []string
}) []Entry {
	out := make([]Entry, 0, len(defs))
	phases := map[string]int{}
	for _, d := range defs {
		out = append(out, Entry{
			Name:    d.name,
			Kind:    d.kind,
			Phase:   phases[d.name],
			Pattern: MustParse(d.rows...),
		})
		phases[d.name]++
	}
	return out
}

// Structures returns the catalog in declaration order. The same entries
// serve for seeding grids and for recognition. Callers must not modify the
// returned patterns.
func Structures() []Entry {
	return catalog[:len(catalog):len(catalog)]
}

// Structure returns the given phase of the named structure.
func Structure(name string, phase int) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name && e.Phase == phase {
			return e, true
		}
	}
	return Entry{}, false
}

// Names lists distinct structure names in declaration order.
func Names() []string {
	var names []string
	seen := map[string]bool{}
	for _, e := range catalog {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// Lookup matches p against the catalog under all four rotations. The first
// entry in declaration order that equals any rotation wins. Size
// differences are plain non-matches.
func Lookup(p Pattern) (Entry, bool) {
	candidates := Canonicalize(p)
	if len(candidates) == 0 {
		return Entry{}, false
	}
	for _, e := range catalog {
		for _, c := range candidates {
			if e.Pattern.Equal(c) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Classify returns the name of the catalog entry matching p, or None.
func Classify(p Pattern) string {
	if e, ok := Lookup(p); ok {
		return e.Name
	}
	return None
}
