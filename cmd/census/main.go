// Command census runs many random soups in parallel and tallies the
// life-forms present in their final generations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"lifewatch/internal/runner"
	"lifewatch/pkg/census"
	"lifewatch/pkg/cluster"
	"lifewatch/pkg/core"
	"lifewatch/pkg/seed"
	"lifewatch/pkg/shapes"
)

type sweep struct {
	soups     int
	gens      int
	size      int
	density   float64
	workers   int
	seed      int64
	adjacency cluster.Adjacency
}

type soupResult struct {
	index int
	tally census.Tally
	err   error
}

func main() {
	soups := flag.Int("soups", 64, "number of random soups")
	gens := flag.Int("gens", 500, "generations per soup")
	size := flag.Int("size", 64, "soup width and height")
	density := flag.Float64("density", seed.DefaultDensity, "initial live-cell density")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	base := flag.Int64("seed", 1, "base seed; each soup derives its own")
	adjacency := flag.String("adjacency", "moore", "cluster adjacency: orthogonal, bridged or moore")
	asYAML := flag.Bool("yaml", false, "print the tally as YAML")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	adj, err := cluster.ParseAdjacency(*adjacency)
	if err != nil {
		log.Error("bad flag", slog.Any("err", err))
		os.Exit(2)
	}
	sw := sweep{
		soups:     *soups,
		gens:      *gens,
		size:      *size,
		density:   *density,
		workers:   *workers,
		seed:      *base,
		adjacency: adj,
	}
	if err := sw.validate(); err != nil {
		log.Error("bad flag", slog.Any("err", err))
		os.Exit(2)
	}

	log.Info("census started",
		slog.Int("soups", sw.soups),
		slog.Int("workers", sw.workers),
		slog.Int("generations", sw.gens),
		slog.String("adjacency", adj.String()),
	)
	start := time.Now()
	tally, err := sw.run()
	if err != nil {
		log.Error("census failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("census finished", slog.Duration("elapsed", time.Since(start)))

	if *asYAML {
		err = writeYAML(os.Stdout, tally)
	} else {
		err = writeTable(os.Stdout, tally)
	}
	if err != nil {
		log.Error("failed to write tally", slog.Any("err", err))
		os.Exit(1)
	}
}

var errBadSweep = errors.New("invalid census")

func (s sweep) validate() error {
	switch {
	case s.soups < 0:
		return fmt.Errorf("%w: soups must be non-negative, got %d", errBadSweep, s.soups)
	case s.gens < 0:
		return fmt.Errorf("%w: generations must be non-negative, got %d", errBadSweep, s.gens)
	case s.size <= 0:
		return fmt.Errorf("%w: size must be positive, got %d", errBadSweep, s.size)
	case s.density < 0 || s.density > 1:
		return fmt.Errorf("%w: density must be in [0,1], got %g", errBadSweep, s.density)
	}
	return nil
}

// seeds derives one seed per soup from the base seed.
func (s sweep) seeds() []int64 {
	rng := core.NewRNG(s.seed)
	out := make([]int64, s.soups)
	for i := range out {
		out[i] = rng.Int64()
	}
	return out
}

func (s sweep) run() (census.Tally, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	workers := s.workers
	if workers < 1 {
		workers = 1
	}

	type job struct {
		index int
		seed  int64
	}
	jobs := make(chan job)
	results := make(chan soupResult)
	var wg sync.WaitGroup

	observer := census.Observer{Adjacency: s.adjacency}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				g := seed.Random(s.size, s.size, s.density, j.seed)
				final, err := runner.Run(g, s.gens, runner.Options{Adjacency: s.adjacency}, nil)
				if err != nil {
					results <- soupResult{index: j.index, err: fmt.Errorf("soup %d: %w", j.index, err)}
					continue
				}
				results <- soupResult{index: j.index, tally: observer.Observe(final).Tally}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i, sd := range s.seeds() {
			jobs <- job{index: i, seed: sd}
		}
		close(jobs)
	}()

	total := census.Tally{}
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		total.Add(res.tally)
	}
	return total, firstErr
}

func writeTable(w io.Writer, t census.Tally) error {
	for _, c := range t.Sorted() {
		if _, err := fmt.Fprintf(w, "%-10s %6d\n", c.Name, c.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-10s %6d (%d unrecognised)\n", "total", t.Total(), t[shapes.None])
	return err
}

func writeYAML(w io.Writer, t census.Tally) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Sorted()); err != nil {
		return err
	}
	return enc.Close()
}
