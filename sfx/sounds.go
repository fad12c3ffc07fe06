package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"rocketsim/game"
)

// noise is white noise for a fixed number of samples
type noise struct {
	left int
}

func newNoise(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return &noise{left: rate.N(d)}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.left <= 0 {
		return 0, false
	}
	count := min(len(samples), n.left)
	for i := 0; i < count; i++ {
		v := rand.Float64()*2 - 1
		samples[i][0], samples[i][1] = v, v
	}
	n.left -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// fade shapes a streamer with a linear attack and an exponential decay
type fade struct {
	s      beep.Streamer
	pos    int
	attack int
	total  int
	decay  float64
}

func newFade(s beep.Streamer, rate beep.SampleRate, d, attack time.Duration, decay float64) beep.Streamer {
	return &fade{s: beep.Take(rate.N(d), s), attack: rate.N(attack), total: rate.N(d), decay: decay}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-f.decay * float64(f.pos) / float64(f.total))
		if f.pos < f.attack {
			vol *= float64(f.pos) / float64(f.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func tone(rate beep.SampleRate, freq float64) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		// only fails for frequencies above the Nyquist limit
		return beep.Silence(0)
	}
	return s
}

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Sound builds the one-shot streamer of a cue at the given master volume
func Sound(c game.Cue, rate beep.SampleRate, master float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case game.CueLaunch:
		// short hiss
		s = newFade(newNoise(rate, 250*time.Millisecond), rate, 250*time.Millisecond, 20*time.Millisecond, 4)
		s = volume(s, 0.4)
	case game.CueExplosion:
		s = beep.Mix(
			newFade(newNoise(rate, 600*time.Millisecond), rate, 600*time.Millisecond, 5*time.Millisecond, 6),
			volume(newFade(tone(rate, 60), rate, 600*time.Millisecond, 5*time.Millisecond, 5), 0.8),
		)
	case game.CueHit:
		s = beep.Seq(
			newFade(tone(rate, 660), rate, 90*time.Millisecond, 5*time.Millisecond, 3),
			newFade(tone(rate, 990), rate, 160*time.Millisecond, 5*time.Millisecond, 4),
		)
		s = volume(s, 0.5)
	default:
		s = volume(newFade(tone(rate, 880), rate, 40*time.Millisecond, 2*time.Millisecond, 2), 0.3)
	}
	return volume(s, master)
}
