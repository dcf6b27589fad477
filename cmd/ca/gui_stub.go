//go:build !ebiten

package main

import (
	"errors"

	"lifewatch/internal/config"
	"lifewatch/internal/runner"
)

func runGUI(*config.Config, *runner.Session, int) error {
	return errors.New("the GUI requires the ebiten build tag; re-run with `go run -tags ebiten ./cmd/ca -gui`")
}
