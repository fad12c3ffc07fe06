package game

import (
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// windRadiusSteps and windAngleSteps are the per-frame random-walk deltas of the wind.
// Both are biased toward zero so the wind drifts slowly.
var (
	windRadiusSteps = []float64{-3, -2, -2, -1, -1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 2, 3}
	windAngleSteps  = []float64{-3, -2, -2, -2, -1, -1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 3}
)

// Context is the process-wide state shared by every entity of a simulation:
// the id counter, the random source, the ambient wind and the outbound sinks.
// It is created once per process and passed to constructors.
type Context struct {
	Config Config
	Logger *slog.Logger

	rand   *rand.Rand
	nextID uint64
	wind   Vector2

	dataset   DatasetSink
	cues      CueSink
	recording bool
}

// NewContext creates a context seeded from cfg.Seed (time based when zero)
func NewContext(cfg Config, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c := &Context{
		Config:    cfg,
		Logger:    logger,
		rand:      rand.New(rand.NewSource(seed)),
		recording: cfg.Dataset.Record,
	}
	c.wind = FromPolar(
		float64(c.RandInt(int(cfg.Wind.InitialMin), int(cfg.Wind.InitialMax))),
		float64(c.RandInt(0, 360)),
	)
	logger.Debug("simulation context created", "seed", seed, "wind", c.wind)
	return c
}

// NextID returns a new entity id. Ids start at 1 and are never reused.
func (c *Context) NextID() uint64 {
	c.nextID++
	return c.nextID
}

// SetDatasetSink sets where outcome rows are written; nil disables writing
func (c *Context) SetDatasetSink(sink DatasetSink) { c.dataset = sink }

// SetCueSink sets where sound cues are sent; nil disables cues
func (c *Context) SetCueSink(sink CueSink) { c.cues = sink }

// Recording reports whether outcome rows are written to the dataset sink
func (c *Context) Recording() bool { return c.recording && c.dataset != nil }

// SetRecording toggles dataset recording
func (c *Context) SetRecording(on bool) { c.recording = on }

// Wind returns the current ambient wind vector in px/s
func (c *Context) Wind() Vector2 { return c.wind }

// SetWind replaces the wind vector
func (c *Context) SetWind(w Vector2) { c.wind = w }

// ChangeWind advances the wind random walk by one frame.
// The radius stays within [0, Wind.Max] and the angle wraps at 360.
func (c *Context) ChangeWind() {
	r, a := c.wind.Polar()
	r += c.Choose(windRadiusSteps)
	a += c.Choose(windAngleSteps)
	r = math.Max(0, math.Min(r, c.Config.Wind.Max))
	c.wind = FromPolar(r, wrapDegrees(a))
}

// Float returns a uniform value in [0,1)
func (c *Context) Float() float64 { return c.rand.Float64() }

// Chance returns true with probability p
func (c *Context) Chance(p float64) bool { return c.rand.Float64() < p }

// RandInt returns a uniform integer in [lo, hi], both ends included
func (c *Context) RandInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + c.rand.Intn(hi-lo+1)
}

// Choose picks one element of values uniformly; 0 for an empty slice
func (c *Context) Choose(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[c.rand.Intn(len(values))]
}

// Sign returns -1 or 1 with equal probability
func (c *Context) Sign() float64 {
	if c.rand.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Triangular draws from a triangular distribution on [lo, hi] peaking at mode
func (c *Context) Triangular(lo, hi, mode float64) float64 {
	if hi == lo {
		return lo
	}
	u := c.rand.Float64()
	k := (mode - lo) / (hi - lo)
	if u > k {
		u = 1 - u
		k = 1 - k
		lo, hi = hi, lo
	}
	return lo + (hi-lo)*math.Sqrt(u*k)
}

// appendRecord writes r when recording is on. Failures are logged and ignored.
func (c *Context) appendRecord(r Record) {
	if !c.Recording() {
		return
	}
	if err := c.dataset.Append(r); err != nil {
		c.Logger.Warn("dataset append failed", "set", r.Set, "error", err)
	}
}

func (c *Context) cue(q Cue) {
	if c.cues != nil {
		c.cues.Play(q)
	}
}
