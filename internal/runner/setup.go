package runner

import (
	"log/slog"

	"lifewatch/internal/config"
	"lifewatch/pkg/core"
	"lifewatch/pkg/seed"
)

// Prepare builds the initial grid and generation count for cfg. A seed
// file supplies both unless keepGens is set, in which case cfg.Generations
// wins. Without a seed file the grid is a random soup. Structures are
// stamped last. Any seed problem is returned as a *seed.ConfigError before
// the first tick.
func Prepare(cfg *config.Config, keepGens bool) (*core.Grid, int, error) {
	var (
		g    *core.Grid
		gens = cfg.Generations
	)
	if cfg.SeedFile != "" {
		s, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return nil, 0, err
		}
		g = s.Grid
		if !keepGens {
			gens = s.Generations
		}
	} else {
		g = seed.Random(cfg.Width, cfg.Height, cfg.Density, cfg.Seed)
	}
	if err := seed.Place(g, cfg.Structures); err != nil {
		return nil, 0, err
	}
	return g, gens, nil
}

// NewOptions builds session options from cfg. Random-soup runs reset to a
// fresh soup with the configured density and structures; seed-file runs
// reset to the loaded grid.
func NewOptions(cfg *config.Config, log *slog.Logger) Options {
	opts := Options{
		Adjacency: cfg.AdjacencyMode(),
		Workers:   cfg.Workers,
		Logger:    log,
	}
	if cfg.SeedFile == "" {
		opts.Density = cfg.Density
		opts.Structures = cfg.Structures
	}
	return opts
}
