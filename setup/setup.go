// Package setup assembles a simulation and its sinks from the configuration.
// Both front-ends start through Build.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"rocketsim/dataset"
	"rocketsim/game"
	"rocketsim/logging"
	"rocketsim/predictor"
	"rocketsim/sfx"
)

// Options are the command-line overrides shared by the front-ends
type Options struct {
	ConfigPath string // empty runs with DefaultConfig
	Classifier string // overrides predictor.classifier when set
	Aim        string // overrides predictor.aim when set
	Record     bool   // start with dataset recording on
	Mute       bool   // disable audio regardless of the config
}

// Env is a ready simulation with everything it writes to
type Env struct {
	Config  game.Config
	Logger  *logging.Logger
	Sim     *game.Simulation
	Dataset dataset.Sink
	Audio   *sfx.Player
}

// Build loads the configuration, then opens the logger, dataset sink,
// predictors and audio, in that order. Log output goes to logOut.
func Build(ctx context.Context, opts Options, logOut io.Writer) (*Env, error) {
	cfg := game.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := game.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Classifier != "" {
		cfg.Predictor.Classifier = opts.Classifier
	}
	if opts.Aim != "" {
		cfg.Predictor.Aim = opts.Aim
	}
	if opts.Record {
		cfg.Dataset.Record = true
	}
	if opts.Mute {
		cfg.Audio.Enabled = false
	}

	if logOut == nil {
		logOut = os.Stderr
	}
	logger := logging.New(cfg.Log, logOut)
	env := &Env{Config: cfg, Logger: logger}

	sink, err := dataset.Open(cfg.Dataset, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	env.Dataset = sink

	src := predictor.Source{Config: cfg, Logger: logger.Logger}
	if cfg.Predictor.ServerURL != "" {
		src.Client = predictor.NewClient(cfg.Predictor.ServerURL, logger.Logger)
	}
	classifier, err := src.Open(ctx, cfg.Predictor.Classifier, "classifier")
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open classifier: %w", err)
	}
	aim, err := src.Open(ctx, cfg.Predictor.Aim, "aim")
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open aim predictor: %w", err)
	}

	audio, err := sfx.New(cfg.Audio, logger.Logger)
	if err != nil {
		// the simulation runs silent rather than not at all
		logger.Warn("audio disabled", "error", err)
	}
	env.Audio = audio

	simCtx := game.NewContext(cfg, logger.Logger)
	simCtx.SetDatasetSink(sink)
	simCtx.SetCueSink(audio)
	env.Sim = game.NewSimulation(simCtx, classifier, aim)

	logger.Info("simulation ready",
		"classifier", describe(cfg.Predictor.Classifier),
		"aim", describe(cfg.Predictor.Aim),
		"dataset", cfg.Dataset.Backend,
		"recording", cfg.Dataset.Record,
		"audio", audio.Enabled(),
	)
	return env, nil
}

// Close releases the audio device and the dataset sink
func (e *Env) Close() error {
	var errs []error
	if e.Audio != nil {
		errs = append(errs, e.Audio.Close())
	}
	if e.Dataset != nil {
		errs = append(errs, e.Dataset.Close())
	}
	return errors.Join(errs...)
}

// Slog returns the environment's logger as a plain *slog.Logger
func (e *Env) Slog() *slog.Logger { return e.Logger.Logger }

func describe(name string) string {
	if name == "" {
		return predictor.SourceNone
	}
	return name
}
