package game

import "image/color"

// LaunchType defines the different kinds of projectiles
type LaunchType int

const (
	LaunchTypeBeam LaunchType = iota
	LaunchTypeTumbling
	LaunchTypeGuided
	LaunchTypeIntercept
)

func (t LaunchType) String() string {
	switch t {
	case LaunchTypeBeam:
		return "beam"
	case LaunchTypeTumbling:
		return "tumbling"
	case LaunchTypeGuided:
		return "guided"
	case LaunchTypeIntercept:
		return "intercept"
	default:
		return "unknown"
	}
}

// LaunchConfig holds the body of each projectile type
type LaunchConfig struct {
	Type   LaunchType
	Kind   Kind
	Width  float64
	Height float64
	Color  color.RGBA
}

// GetLaunchConfig returns configuration for a projectile type
func GetLaunchConfig(t LaunchType) LaunchConfig {
	switch t {
	case LaunchTypeBeam:
		return LaunchConfig{
			Type:   LaunchTypeBeam,
			Kind:   KindBeam,
			Width:  25,
			Height: 5,
			Color:  color.RGBA{R: 255, G: 200, A: 255},
		}
	case LaunchTypeTumbling:
		return LaunchConfig{
			Type:   LaunchTypeTumbling,
			Kind:   KindRocket,
			Width:  10,
			Height: 5,
			Color:  color.RGBA{R: 100, G: 45, B: 56, A: 255},
		}
	case LaunchTypeGuided:
		return LaunchConfig{
			Type:   LaunchTypeGuided,
			Kind:   KindRocket,
			Width:  10,
			Height: 5,
			Color:  color.RGBA{A: 255},
		}
	case LaunchTypeIntercept:
		return LaunchConfig{
			Type:   LaunchTypeIntercept,
			Kind:   KindBeam,
			Width:  25,
			Height: 5,
			Color:  color.RGBA{A: 255},
		}
	default:
		return GetLaunchConfig(LaunchTypeBeam)
	}
}

// entityConfig returns the shared part of every projectile: kill on the edge,
// facing along the velocity
func (lc LaunchConfig) entityConfig(pos, vel Vector2) EntityConfig {
	return EntityConfig{
		Kind:     lc.Kind,
		Pos:      pos,
		Vel:      vel,
		Angle:    vel.Angle(),
		Boundary: BoundaryKill,
		Width:    lc.Width,
		Height:   lc.Height,
		Color:    lc.Color,
	}
}

// LaunchBeam fires a plain straight projectile
func LaunchBeam(s *Scene, pos, vel Vector2) *Entity {
	e := NewEntity(s.ctx, GetLaunchConfig(LaunchTypeBeam).entityConfig(pos, vel))
	s.ctx.cue(CueLaunch)
	return s.Add(e, LayerProjectile, GroupBeams)
}

// LaunchTumbling fires a rocket that tumbles and smokes
func LaunchTumbling(s *Scene, pos, vel Vector2) *Entity {
	cfg := GetLaunchConfig(LaunchTypeTumbling).entityConfig(pos, vel)
	cfg.Behavior = &Tumble{SmokeChance: s.ctx.Config.Smoke.Chance}
	e := NewEntity(s.ctx, cfg)
	s.ctx.cue(CueLaunch)
	return s.Add(e, LayerProjectile, GroupBeams)
}

// NewGuidedRocket creates a guided rocket with freshly drawn steering factors.
// It is not added to a scene so a caller can classify it first.
func NewGuidedRocket(ctx *Context, pos, vel Vector2, band TargetBand, maxDistance float64) *Entity {
	g := &Guidance{
		F1:      0.1 + ctx.Float()*5.5,
		F2:      5.0 + ctx.Float()*60,
		F3:      ctx.Sign(),
		F4:      ctx.Sign(),
		Band:    band,
		Outcome: -1,
		Record:  ctx.Recording(),
	}
	if ctx.Config.Scenario.GuidedSmoke {
		g.SmokeChance = ctx.Config.Smoke.Chance
	}
	cfg := GetLaunchConfig(LaunchTypeGuided).entityConfig(pos, vel)
	cfg.MaxDist = maxDistance
	cfg.Behavior = g
	return NewEntity(ctx, cfg)
}

// LaunchIntercept fires a straight shot from pos towards aim at speed.
// target is the moving target the shot is meant for; it may be nil.
func LaunchIntercept(s *Scene, pos, aim Vector2, speed float64, target *Entity) *Entity {
	dir := aim.Sub(pos).Normalize()
	if dir == (Vector2{}) {
		dir = Vec(1, 0)
	}
	ic := &Intercept{
		Speed: speed,
		AimY:  aim.Y,
	}
	if target != nil {
		ic.TargetSpeed = target.Vel.Length()
		ic.TargetY = target.Pos.Y
		ic.Direction = directionOf(target.Vel)
	}
	cfg := GetLaunchConfig(LaunchTypeIntercept).entityConfig(pos, dir.Scale(speed))
	cfg.Behavior = ic
	e := NewEntity(s.ctx, cfg)
	s.ctx.cue(CueLaunch)
	return s.Add(e, LayerProjectile, GroupBeams)
}
