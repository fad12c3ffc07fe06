package main

import (
	"context"
	"flag"
	"log"
	"os"

	"rocketsim/app"
	"rocketsim/render"
	"rocketsim/setup"
)

func main() {
	var opts setup.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.Classifier, "classifier", "", "guided rocket classifier: builtin, server:NAME, none or a .js file")
	flag.StringVar(&opts.Aim, "aim", "", "moving target aim predictor: intercept, builtin:aim, server:NAME, none or a .js file")
	flag.BoolVar(&opts.Record, "record", false, "start with dataset recording on")
	flag.BoolVar(&opts.Mute, "mute", false, "disable sound")
	flag.Parse()

	env, err := setup.Build(context.Background(), opts, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Close()

	atlas, err := render.NewAtlas(env.Slog())
	if err != nil {
		log.Fatal(err)
	}

	var profiler *app.Profiler
	if env.Config.Profile.Enabled {
		if profiler, err = app.NewProfiler(env.Config.Profile, env.Slog()); err != nil {
			log.Fatal(err)
		}
	}

	g := app.New(env.Sim, render.NewScreen(atlas), profiler, env.Slog())
	if err := app.Run(g, "Rockets"); err != nil {
		log.Fatal(err)
	}
}
