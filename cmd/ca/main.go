// Command ca runs Conway's Game of Life on a toroidal grid and reports the
// life-forms recognised in every generation.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"lifewatch/internal/config"
	"lifewatch/internal/render"
	"lifewatch/internal/runner"
	"lifewatch/pkg/core"
	"lifewatch/pkg/seed"
	"lifewatch/pkg/shapes"
)

func main() {
	fs := flag.NewFlagSet("ca", flag.ExitOnError)
	show := fs.Bool("show", false, "print every generation as text")
	gui := fs.Bool("gui", false, "open a window (requires -tags ebiten)")
	pgm := fs.String("pgm", "", "write the final generation to this PGM file")
	dumpSeed := fs.String("dump-seed", "", "write the final generation to this seed file")
	saveConfig := fs.String("save-config", "", "write the effective configuration to this YAML file")
	cfg, set, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.Logger(os.Stderr)

	if *saveConfig != "" {
		if err := cfg.Save(*saveConfig); err != nil {
			log.Error("failed to save config", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("config saved", slog.String("path", *saveConfig))
	}

	grid, gens, err := runner.Prepare(cfg, set["gens"])
	if err != nil {
		log.Error("failed to prepare grid", slog.Any("err", err))
		os.Exit(1)
	}
	opts := runner.NewOptions(cfg, log)

	if *gui {
		if err := runGUI(cfg, runner.NewSession(grid, opts), gens); err != nil {
			log.Error("viewer failed", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}

	cols := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			cols = w
		}
	}
	final, err := runner.Run(grid, gens, opts, func(r runner.Report) error {
		return printReport(os.Stdout, r, *show, cols)
	})
	if err != nil {
		log.Error("run failed", slog.Any("err", err))
		os.Exit(1)
	}

	if *pgm != "" {
		if err := writePGM(*pgm, final); err != nil {
			log.Error("failed to write image", slog.Any("err", err))
			os.Exit(1)
		}
	}
	if *dumpSeed != "" {
		if err := writeSeed(*dumpSeed, final, gens); err != nil {
			log.Error("failed to write seed", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func printReport(w io.Writer, r runner.Report, show bool, cols int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "gen %d pop %d clusters %d", r.Generation, r.Population, len(r.Frame.Detections))
	for _, c := range r.Frame.Tally.Sorted() {
		if c.Name == shapes.None {
			continue
		}
		fmt.Fprintf(&b, " %s=%d", c.Name, c.Count)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if !show {
		return nil
	}
	if err := render.Text(w, r.Grid, cols); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeSeed saves g so a later run can continue from it for another gens
// generations.
func writeSeed(path string, g *core.Grid, gens int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := seed.Write(f, g, gens); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePGM(path string, g *core.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PGM(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
