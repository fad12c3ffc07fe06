// Package logging builds the structured logger shared by the front-ends and
// the simulation. Every record carries the run id of the process.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"rocketsim/game"
)

// LevelEnv overrides the configured log level when set
const LevelEnv = "ROCKETSIM_LOG_LEVEL"

// Logger wraps slog.Logger with the run id it was created with
type Logger struct {
	*slog.Logger
	RunID string
}

// New creates a logger writing to w (stderr when nil) in the configured format.
// The level comes from LevelEnv, then cfg.Level, then defaults to info.
func New(cfg game.LogConfig, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: levelFromEnv(ParseLevel(cfg.Level))}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	runID := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Logger{
		Logger: slog.New(handler).With("run_id", runID),
		RunID:  runID,
	}
}

// ParseLevel maps DEBUG, INFO, WARN(ING) and ERROR in any case to a level; anything else is info
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// levelFromEnv returns the level named by LevelEnv, or fallback when unset
func levelFromEnv(fallback slog.Level) slog.Level {
	v := os.Getenv(LevelEnv)
	if v == "" {
		return fallback
	}
	return ParseLevel(v)
}
