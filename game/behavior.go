package game

import (
	"math"
)

// tumbleSteps are the per-frame heading changes of a tumbling rocket, in degrees
var tumbleSteps = []float64{-3, -2, -1, 0, 0, 0, 0, 0, 0, 1, 2, 3}

// Behavior is the variant payload of an Entity. The set of variants is closed;
// see updateBehavior and onDestroy.
type Behavior interface {
	behavior()
}

// Tumble rotates a rocket by a small random step each frame and leaves smoke
type Tumble struct {
	SmokeChance float64
}

// TargetBand is the vertical window a guided rocket must cross at ThresholdX
type TargetBand struct {
	Low        float64
	High       float64
	ThresholdX float64
}

// Label returns 1 when y lies strictly inside the band, 0 otherwise
func (b TargetBand) Label(y float64) int {
	if y > b.Low && y < b.High {
		return 1
	}
	return 0
}

// Guidance steers a rocket along a sinusoid of its age.
// F1 is the frequency, F2 the amplitude in deg/s, F3 and F4 are signs.
type Guidance struct {
	F1, F2, F3, F4 float64
	Band           TargetBand
	SmokeChance    float64
	Record         bool

	// Outcome is the label once the rocket reached the threshold, -1 before
	Outcome int
	// Silent suppresses the spark burst and the caption on destruction
	Silent bool
}

// Features returns the spawn factors as handed to a classifier, one decimal each
func (g *Guidance) Features() []float64 {
	return []float64{round1(g.F1), round1(g.F2), round1(g.F3), round1(g.F4)}
}

// Intercept is a straight shot at a moving target, remembering what it was aimed at
type Intercept struct {
	TargetSpeed float64
	Speed       float64
	TargetY     float64
	Direction   int
	AimY        float64
}

// Fade grows the radius from 0 to EndRadius and blends alpha over the lifetime.
// The ambient wind times WindFactor plus Gravity either replaces the velocity
// (drifting smoke) or accelerates it (Propelled sparks).
type Fade struct {
	EndRadius  float64
	AlphaStart float64
	AlphaEnd   float64
	WindFactor float64
	Gravity    Vector2
	Propelled  bool
}

// Pointer pins an entity to an externally driven position
type Pointer struct {
	At Vector2
}

// Prediction places a crosshair at (AxisX, predicted y) from the tracked target
type Prediction struct {
	Predictor     Predictor
	Target        Handle
	ObserverSpeed float64
	TargetSpeed   float64
	AxisX         float64

	Last TargetingSample
}

// Caption is a rising, fading text
type Caption struct {
	Acceleration float64
	AlphaStart   float64
	AlphaEnd     float64
}

func (*Tumble) behavior()     {}
func (*Guidance) behavior()   {}
func (*Intercept) behavior()  {}
func (*Fade) behavior()       {}
func (*Pointer) behavior()    {}
func (*Prediction) behavior() {}
func (*Caption) behavior()    {}

// updateBehavior runs the per-frame rule of the entity variant. It runs after
// the lifetime checks and before integration, and may kill the entity.
func updateBehavior(e *Entity, dt float64) {
	ctx := e.scene.ctx
	switch b := e.Behavior.(type) {
	case *Tumble:
		e.Rotate(ctx.Choose(tumbleSteps))
		if ctx.Chance(b.SmokeChance) {
			SpawnSmoke(e.scene, e.Pos, ctx.Config.Smoke.Color.ToRGBA())
		}

	case *Guidance:
		if e.Pos.X >= b.Band.ThresholdX {
			b.Outcome = b.Band.Label(e.Pos.Y)
			e.Kill()
			return
		}
		delta := math.Sin(e.Age*b.F1*b.F3) * b.F2 * b.F4
		e.Rotate(delta * dt)
		if b.SmokeChance > 0 && ctx.Chance(b.SmokeChance) {
			SpawnSmoke(e.scene, e.Pos, e.Color)
		}

	case *Fade:
		force := ctx.Wind().Scale(b.WindFactor).Add(b.Gravity)
		if b.Propelled {
			e.Vel = e.Vel.Add(force.Scale(dt))
		} else {
			e.Vel = force
		}
		progress := lifeProgress(e)
		if b.EndRadius > 0 {
			e.Radius = b.EndRadius * progress
		}
		e.Alpha = lerp(b.AlphaStart, b.AlphaEnd, progress)

	case *Pointer:
		e.Pos = b.At
		e.Vel = Vector2{}

	case *Prediction:
		target, ok := e.scene.Resolve(b.Target)
		if !ok || b.Predictor == nil {
			return
		}
		b.Last = TargetingSample{
			TargetPos:       target.Pos,
			TargetDirection: directionOf(target.Vel),
			ObserverSpeed:   b.ObserverSpeed,
			TargetSpeed:     b.TargetSpeed,
		}
		// not validated: a NaN prediction moves the crosshair to NaN
		y := b.Predictor.Predict(b.Last.Features())
		e.Pos = Vec(b.AxisX, math.Round(y))
		e.Vel = Vector2{}

	case *Caption:
		e.Vel = e.Vel.Scale(b.Acceleration)
		e.Alpha = lerp(b.AlphaStart, b.AlphaEnd, lifeProgress(e))
	}
}

// onDestroy runs the destruction side effects of the entity variant
func onDestroy(e *Entity) {
	ctx := e.scene.ctx
	switch b := e.Behavior.(type) {
	case *Guidance:
		label := max(b.Outcome, 0)
		if b.Record {
			ctx.appendRecord(GuidedRecord(b, label))
		}
		if b.Outcome < 0 || b.Silent {
			return
		}
		burst := ctx.Config.Burst
		burst.Color = Color(e.Color)
		burst.MaxDuration = 0.5
		burst.SparksMax = 5
		burst.SparksMin = min(burst.SparksMin, burst.SparksMax)
		ExplosionBurst(e.scene, e.Pos, burst)
		text := "MISS"
		if label == 1 {
			text = "HIT"
		}
		SpawnCaption(e.scene, e.Pos, text, e.Color)
		ctx.cue(CueExplosion)
	}
}

// lifeProgress is Age/MaxAge clamped to [0,1]; 0 for unlimited lifetimes
func lifeProgress(e *Entity) float64 {
	if e.MaxAge <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, e.Age/e.MaxAge))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// directionOf is 1 when moving down the screen, 0 otherwise
func directionOf(v Vector2) int {
	if v.Y > 0 {
		return 1
	}
	return 0
}
