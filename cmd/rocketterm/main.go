// Command rocketterm runs the rocket simulation in a terminal
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"rocketsim/game"
	"rocketsim/setup"
	"rocketsim/termview"
)

func main() {
	var opts setup.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.Classifier, "classifier", "", "guided rocket classifier: builtin, server:NAME, none or a .js file")
	flag.StringVar(&opts.Aim, "aim", "", "moving target aim predictor: intercept, builtin:aim, server:NAME, none or a .js file")
	flag.BoolVar(&opts.Record, "record", false, "start with dataset recording on")
	logFile := flag.String("log", "rocketterm.log", "log file; the terminal is taken by the view")
	flag.Parse()
	opts.Mute = true

	out, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := setup.Build(ctx, opts, out)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	err = run(ctx, screen, env)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

// run pumps terminal events on one goroutine and steps the simulation on
// another until the simulation quits or ctx is cancelled
func run(ctx context.Context, screen tcell.Screen, env *setup.Env) error {
	view := termview.New(screen, env.Config.Bounds())
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// PollEvent returns nil once the screen is finalised
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case <-quit:
				return nil
			default:
			}
			select {
			case events <- ev:
			case <-quit:
				return nil
			}
		}
	})
	g.Go(func() error {
		// wake the pump after quit is closed so it sees it
		defer func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) }()
		defer close(quit)

		frame := time.Second / time.Duration(env.Config.FPS)
		ticker := time.NewTicker(frame)
		defer ticker.Stop()

		sim := env.Sim
		last := time.Now()
		var pending []game.Event
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				pending = view.Translate(ev, pending)
			case now := <-ticker.C:
				for _, ev := range pending {
					sim.HandleEvent(ev)
				}
				pending = pending[:0]
				if sim.Done() {
					env.Logger.Info("simulation quit", "elapsed", sim.Elapsed(), "stats", sim.Stats())
					return nil
				}
				sim.Step(min(now.Sub(last).Seconds(), 0.1))
				last = now

				view.Begin()
				sim.Draw(view)
				view.Overlay(sim)
				view.Show()
			}
		}
	})
	return g.Wait()
}
