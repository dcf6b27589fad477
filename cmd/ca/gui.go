//go:build ebiten

package main

import (
	"errors"

	"lifewatch/internal/app"
	"lifewatch/internal/config"
	"lifewatch/internal/runner"

	"github.com/hajimehoshi/ebiten/v2"
)

func runGUI(cfg *config.Config, session *runner.Session, gens int) error {
	game := app.New(session, cfg.Scale, cfg.Seed, gens)
	size := session.Size()

	ebiten.SetWindowTitle("lifewatch - " + session.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
