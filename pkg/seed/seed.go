// Package seed builds initial grids: from the plain-text seed format, from
// named catalog structures, or from a random soup.
package seed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lifewatch/pkg/core"
	"lifewatch/pkg/shapes"
)

// Sentinel causes wrapped by ConfigError.
var (
	ErrBadHeader      = errors.New("header must be \"<width> <height>\"")
	ErrBadDimensions  = errors.New("width and height must be positive")
	ErrBadGenerations = errors.New("generation count must be a non-negative integer")
	ErrBadCell        = errors.New("cell line must be \"<x> <y>\"")
	ErrOutOfRange     = errors.New("cell outside the grid")
	ErrUnknownShape   = errors.New("unknown structure")
)

// ConfigError reports invalid seed data. It is fatal for the run.
type ConfigError struct {
	Line int // 1-based line number, 0 when not tied to a line
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("seed: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("seed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Seed is a materialised initial condition.
type Seed struct {
	Grid        *core.Grid
	Generations int
}

// Load reads a seed file from disk.
func Load(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the seed format: "<width> <height>", then the generation
// count, then one "<x> <y>" line per live cell. Blank lines and lines
// starting with '#' are skipped.
func Parse(r io.Reader) (*Seed, error) {
	sc := bufio.NewScanner(r)
	var (
		s      Seed
		stage  int
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch stage {
		case 0:
			w, h, err := parsePair(fields)
			if err != nil {
				return nil, &ConfigError{Line: lineNo, Err: fmt.Errorf("%w: %v", ErrBadHeader, err)}
			}
			if w <= 0 || h <= 0 {
				return nil, &ConfigError{Line: lineNo, Err: fmt.Errorf("%w: got %dx%d", ErrBadDimensions, w, h)}
			}
			s.Grid = core.NewGrid(w, h)
		case 1:
			if len(fields) != 1 {
				return nil, &ConfigError{Line: lineNo, Err: ErrBadGenerations}
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 {
				return nil, &ConfigError{Line: lineNo, Err: ErrBadGenerations}
			}
			s.Generations = n
		default:
			x, y, err := parsePair(fields)
			if err != nil {
				return nil, &ConfigError{Line: lineNo, Err: fmt.Errorf("%w: %v", ErrBadCell, err)}
			}
			if !s.Grid.Contains(x, y) {
				return nil, &ConfigError{Line: lineNo, Err: fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfRange, x, y, s.Grid.W, s.Grid.H)}
			}
			s.Grid.Set(x, y, core.Alive)
		}
		stage++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	switch stage {
	case 0:
		return nil, &ConfigError{Err: fmt.Errorf("%w: missing", ErrBadHeader)}
	case 1:
		return nil, &ConfigError{Err: fmt.Errorf("%w: missing", ErrBadGenerations)}
	}
	return &s, nil
}

func parsePair(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Write emits g in the seed format with the given generation count.
func Write(w io.Writer, g *core.Grid, generations int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n%d\n", g.W, g.H, generations)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Alive(x, y) {
				fmt.Fprintf(bw, "%d %d\n", x, y)
			}
		}
	}
	return bw.Flush()
}

// Stamp copies p onto g with its top-left corner at (x, y), wrapping around
// the grid edges. Dead pattern cells overwrite the grid too.
func Stamp(g *core.Grid, x, y int, p shapes.Pattern) {
	for dy := 0; dy < p.H; dy++ {
		for dx := 0; dx < p.W; dx++ {
			g.Set(x+dx, y+dy, p.At(dx, dy))
		}
	}
}

// Placement names a catalog structure to stamp at a position.
type Placement struct {
	Name  string `yaml:"name"`
	Phase int    `yaml:"phase"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// Place stamps each placement onto g in order.
func Place(g *core.Grid, placements []Placement) error {
	for _, pl := range placements {
		e, ok := shapes.Structure(pl.Name, pl.Phase)
		if !ok {
			return &ConfigError{Err: fmt.Errorf("%w: %s phase %d", ErrUnknownShape, pl.Name, pl.Phase)}
		}
		if !g.Contains(pl.X, pl.Y) {
			return &ConfigError{Err: fmt.Errorf("%w: %s at (%d,%d) not in %dx%d", ErrOutOfRange, pl.Name, pl.X, pl.Y, g.W, g.H)}
		}
		Stamp(g, pl.X, pl.Y, e.Pattern)
	}
	return nil
}

// DefaultDensity is the live-cell fraction of a random soup.
const DefaultDensity = 0.2

// Random returns a w×h soup where each cell is alive with probability
// density, reproducible for a given seed.
func Random(w, h int, density float64, seed int64) *core.Grid {
	g := core.NewGrid(w, h)
	core.NewRNG(seed).FillDensity(g.Cells(), density)
	return g
}
