// Package sfx plays the simulation's sound cues through the system speaker
package sfx

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"rocketsim/game"
)

// Player is a game.CueSink mixing cues into the speaker. A disabled Player
// accepts cues and drops them.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	enabled bool
	logger  *slog.Logger
}

// New initialises the speaker when cfg.Enabled is set
func New(cfg game.AudioConfig, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	p := &Player{
		rate:   rate,
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		logger: logger.With("component", "sfx"),
	}
	if !cfg.Enabled {
		return p, nil
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return p, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.enabled = true
	p.logger.Info("audio initialised", "sample_rate", int(rate))
	return p, nil
}

// Enabled reports whether cues reach the speaker
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play queues the sound of c without waiting for it
func (p *Player) Play(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Add(Sound(c, p.rate, p.volume))
	speaker.Unlock()
}

// Close stops playback
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return nil
	}
	speaker.Clear()
	p.enabled = false
	return nil
}
