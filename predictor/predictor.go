// Package predictor provides the game.Predictor implementations used by the
// scenarios: JavaScript models run with goja, scripts fetched from a script
// server, and the analytic intercept solver.
package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rocketsim/game"
)

// Source names understood by Open
const (
	SourceNone      = "none"
	SourceBuiltin   = "builtin"
	SourceIntercept = "intercept"

	serverPrefix = "server:"
)

// Source resolves predictor names from the configuration into predictors
type Source struct {
	Config game.Config
	Client *Client // nil disables server: sources
	Logger *slog.Logger
}

// Globals returns the scenario geometry exposed to scripts as the global "scenario"
func Globals(cfg game.Config) map[string]any {
	sc := cfg.Scenario
	return map[string]any{
		"scenario": map[string]any{
			"launch_x":     sc.LaunchX,
			"launch_y":     sc.LaunchY,
			"speed":        sc.GuidedSpeed,
			"threshold_x":  sc.ThresholdX,
			"band_low":     sc.BandLow,
			"band_high":    sc.BandHigh,
			"max_distance": sc.RangeFactor * float64(cfg.ScreenWidth),
			"width":        float64(cfg.ScreenWidth),
			"height":       float64(cfg.ScreenHeight),
			"target_size":  sc.TargetSize,
		},
	}
}

// Open returns the predictor named by source:
//
//	""/none       no predictor (nil)
//	builtin       the embedded script called builtin
//	builtin:NAME  the embedded script NAME
//	intercept     the analytic aim solver
//	server:NAME   script NAME fetched from the script server
//	anything else a JavaScript file on disk
func (s Source) Open(ctx context.Context, source, builtin string) (game.Predictor, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	globals := Globals(s.Config)

	switch {
	case source == "" || source == SourceNone:
		return nil, nil
	case source == SourceBuiltin:
		return script(Builtin(builtin, globals, logger))
	case strings.HasPrefix(source, SourceBuiltin+":"):
		return script(Builtin(strings.TrimPrefix(source, SourceBuiltin+":"), globals, logger))
	case source == SourceIntercept:
		return NewIntercept(s.Config), nil
	case strings.HasPrefix(source, serverPrefix):
		if s.Client == nil {
			return nil, fmt.Errorf("%s: no script server configured", source)
		}
		name := strings.TrimPrefix(source, serverPrefix)
		code, err := s.Client.FetchScript(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		logger.Info("script fetched", "name", name, "bytes", len(code))
		return script(NewScript(source, code, globals, logger))
	default:
		return script(LoadScript(source, globals, logger))
	}
}

// script returns a nil Predictor for a failed load
func script(s *Script, err error) (game.Predictor, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
