package game

import (
	"image/color"
	"math"
)

// Draw layers, back to front
const (
	LayerSmoke      = 1
	LayerProjectile = 2
	LayerTarget     = 3
	LayerText       = 7
	LayerSpark      = 9
	LayerCrosshair  = 10
)

// SpawnSmoke adds a fading smoke puff drifting with the wind
func SpawnSmoke(s *Scene, pos Vector2, c color.RGBA) *Entity {
	cfg := s.ctx.Config.Smoke
	e := NewEntity(s.ctx, EntityConfig{
		Kind:     KindSmoke,
		Pos:      pos,
		MaxAge:   cfg.MaxAge,
		Boundary: BoundaryKill,
		Color:    c,
		Alpha:    cfg.AlphaStart,
		Behavior: &Fade{
			EndRadius:  cfg.EndRadius,
			AlphaStart: cfg.AlphaStart,
			AlphaEnd:   cfg.AlphaEnd,
			WindFactor: cfg.WindFactor,
		},
	})
	return s.Add(e, LayerSmoke, GroupSmoke)
}

// ExplosionBurst spawns between SparksMin and SparksMax sparks radiating from pos.
// Angles follow a triangular distribution peaking in the middle of the arc;
// speeds and lifetimes are uniform. It returns the sparks.
func ExplosionBurst(s *Scene, pos Vector2, cfg BurstConfig) []*Entity {
	ctx := s.ctx
	n := ctx.RandInt(cfg.SparksMin, cfg.SparksMax)
	sparks := make([]*Entity, 0, n)
	for i := 0; i < n; i++ {
		angle := ctx.Triangular(cfg.AngleFrom, cfg.AngleTo, (cfg.AngleFrom+cfg.AngleTo)/2)
		speed := float64(ctx.RandInt(int(cfg.MinSpeed), int(cfg.MaxSpeed)))
		// a zero lifetime would mean "unlimited"
		duration := math.Max(ctx.Float()*cfg.MaxDuration, 0.01)

		e := NewEntity(ctx, EntityConfig{
			Kind:     KindSpark,
			Pos:      pos,
			Vel:      FromPolar(speed, angle),
			Angle:    angle,
			MaxAge:   duration,
			Boundary: BoundaryKill,
			Radius:   2,
			Color:    jitterColor(ctx, cfg.Color.ToRGBA(), 50),
			Behavior: &Fade{
				AlphaStart: 255,
				AlphaEnd:   255,
				Gravity:    Vec(0, cfg.Gravity),
				Propelled:  true,
			},
		})
		sparks = append(sparks, s.Add(e, LayerSpark, GroupSparks))
	}
	return sparks
}

// jitterColor shifts each channel by up to ±by, staying within 0..255
func jitterColor(ctx *Context, c color.RGBA, by int) color.RGBA {
	shift := func(v uint8) uint8 {
		return uint8(max(0, min(255, int(v)+ctx.RandInt(-by, by))))
	}
	return color.RGBA{R: shift(c.R), G: shift(c.G), B: shift(c.B), A: c.A}
}
