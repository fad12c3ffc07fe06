// Package dataset stores outcome rows written by the simulation
package dataset

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/quasilyte/gdata/v2"

	"rocketsim/game"
)

// Sink is a game.DatasetSink that owns resources
type Sink interface {
	game.DatasetSink
	io.Closer
}

// Open creates the sink selected by cfg.Backend
func Open(cfg game.DatasetConfig, logger *slog.Logger) (Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case "", "file":
		logger.Info("dataset sink opened", "backend", "file", "dir", cfg.Dir)
		return NewFileSink(cfg.Dir), nil
	case "gdata":
		m, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			return nil, fmt.Errorf("open gdata storage: %w", err)
		}
		logger.Info("dataset sink opened", "backend", "gdata", "app", cfg.AppName)
		return NewStore(m), nil
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", cfg.Backend)
	}
}
