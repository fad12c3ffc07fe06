// Package app runs a simulation in an ebiten window
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"rocketsim/game"
	"rocketsim/render"
)

// Game adapts a Simulation to ebiten.Game: input is sampled, the simulation is
// stepped with the wall-clock frame time and then drawn through render.Screen
type Game struct {
	sim      *game.Simulation
	screen   *render.Screen
	profiler *Profiler
	logger   *slog.Logger

	in     input
	events []game.Event
	meter  *fpsMeter
	last   time.Time
}

// New creates the window game. profiler may be nil.
func New(sim *game.Simulation, screen *render.Screen, profiler *Profiler, logger *slog.Logger) *Game {
	cfg := sim.Context().Config
	var minFPS float64
	if profiler != nil {
		minFPS = cfg.Profile.MinFPS
	}
	return &Game{
		sim:      sim,
		screen:   screen,
		profiler: profiler,
		logger:   logger,
		meter:    newFPSMeter(minFPS, cfg.Profile.Warmup, cfg.FPS),
		last:     time.Now(),
	}
}

// Update samples input and advances the simulation by one frame
func (g *Game) Update() error {
	now := time.Now()
	dt := clampDelta(now.Sub(g.last).Seconds())
	g.last = now

	g.events = g.in.poll(g.events[:0])
	for _, ev := range g.events {
		g.sim.HandleEvent(ev)
	}
	if g.sim.Done() {
		return ebiten.Termination
	}

	g.sim.Step(dt)
	g.screen.ShowShapes = g.sim.Debug().ShowShapes

	if fps, drop := g.meter.Tick(dt); drop {
		reason := fmt.Sprintf("fps%.0f-entities%d", fps, g.sim.Scene().Len())
		g.logger.Warn("frame rate drop", "fps", fps, "entities", g.sim.Scene().Len())
		if err := g.profiler.CaptureProfile(reason); err != nil {
			g.logger.Debug("profile not captured", "error", err)
		}
	}
	return nil
}

// Draw renders the scene back to front, then the overlay
func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Begin(screen)
	g.sim.Draw(g.screen)
	g.screen.Overlay(screen, g.sim, g.meter.FPS())
}

// Layout keeps the logical screen at the configured play area
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.sim.Context().Config
	return cfg.ScreenWidth, cfg.ScreenHeight
}

// Run opens the window and blocks until the simulation quits or the window closes
func Run(g *Game, title string) error {
	cfg := g.sim.Context().Config
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
