package game

import (
	"image/color"
	"math"
)

// DefaultHitPoints is given to entities configured with no hit points
const DefaultHitPoints = 100

// Handle is a generation-checked reference to a scene slot.
// The zero Handle refers to nothing.
type Handle struct {
	slot int
	gen  uint32
}

// Valid reports whether the handle was ever issued by a scene
func (h Handle) Valid() bool { return h.gen != 0 }

// EntityConfig holds the construction parameters of an Entity.
// Zero values mean "not set": no lifetime limit, no distance limit, no boundary policy.
type EntityConfig struct {
	Kind     Kind
	Pos      Vector2
	Vel      Vector2 // pixels per second
	Angle    float64 // degrees
	Age      float64 // negative delays the entity
	MaxAge   float64
	MaxDist  float64
	HP       int
	Boundary BoundaryPolicy
	Area     *Rect // overrides the scene bounds

	// Collision shape: a box when Width and Height are set, a circle otherwise
	Radius float64
	Width  float64
	Height float64

	Color color.RGBA
	Alpha float64 // 0 means fully opaque
	Text  string

	Behavior Behavior
}

// normalize clamps values a running simulation cannot use
func (c EntityConfig) normalize() EntityConfig {
	if c.HP <= 0 {
		c.HP = DefaultHitPoints
	}
	if c.MaxAge < 0 || math.IsNaN(c.MaxAge) {
		c.MaxAge = 0
	}
	if c.MaxDist < 0 || math.IsNaN(c.MaxDist) {
		c.MaxDist = 0
	}
	if c.Radius < 0 {
		c.Radius = 0
	}
	if c.Width < 0 || c.Height < 0 {
		c.Width, c.Height = 0, 0
	}
	if c.Alpha <= 0 || c.Alpha > 255 {
		c.Alpha = 255
	}
	if c.Area != nil && (c.Area.Width <= 0 || c.Area.Height <= 0) {
		c.Area = nil
	}
	return c
}

// Entity is a simulated moving object. Every visible object is an Entity;
// variant behaviour lives in the Behavior payload.
type Entity struct {
	ID   uint64
	Kind Kind

	Pos   Vector2
	Vel   Vector2
	Angle float64 // degrees in [0,360)

	Age              float64
	MaxAge           float64 // 0 = unlimited
	DistanceTraveled float64
	MaxDistance      float64 // 0 = unlimited
	HitPoints        int

	Boundary BoundaryPolicy
	Area     *Rect

	Radius float64
	Width  float64
	Height float64
	Color  color.RGBA
	Alpha  float64
	Text   string

	Behavior Behavior

	// Ownership
	boss    Handle
	cascade bool
	follow  bool

	// Scene bookkeeping
	scene  *Scene
	handle Handle
	layer  int
	seq    uint64
	alive  bool
	groups []string

	drawX, drawY int
}

// NewEntity creates an entity with an id from ctx. It becomes live once added to a scene.
func NewEntity(ctx *Context, cfg EntityConfig) *Entity {
	cfg = cfg.normalize()
	e := &Entity{
		ID:          ctx.NextID(),
		Kind:        cfg.Kind,
		Pos:         cfg.Pos,
		Vel:         cfg.Vel,
		Angle:       wrapDegrees(cfg.Angle),
		Age:         cfg.Age,
		MaxAge:      cfg.MaxAge,
		MaxDistance: cfg.MaxDist,
		HitPoints:   cfg.HP,
		Boundary:    cfg.Boundary,
		Area:        cfg.Area,
		Radius:      cfg.Radius,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Color:       cfg.Color,
		Alpha:       cfg.Alpha,
		Text:        cfg.Text,
		Behavior:    cfg.Behavior,
	}
	e.drawX, e.drawY = e.Pos.Round()
	return e
}

// Alive reports whether the entity is in a scene and not destroyed
func (e *Entity) Alive() bool { return e.alive }

// Layer returns the draw layer given at Add
func (e *Entity) Layer() int { return e.layer }

// Handle returns the scene handle of the entity
func (e *Entity) Handle() Handle { return e.handle }

// InGroup reports whether the entity was added to the named group
func (e *Entity) InGroup(name string) bool {
	for _, g := range e.groups {
		if g == name {
			return true
		}
	}
	return false
}

// SetBoss makes e a follower of boss. With cascadeDestroy e dies with its boss;
// with followKinematics e copies the boss position and velocity every frame.
// The boss must already be in the same scene.
func (e *Entity) SetBoss(boss *Entity, cascadeDestroy, followKinematics bool) {
	if boss == nil || boss == e || !boss.alive {
		e.boss = Handle{}
		e.cascade, e.follow = false, false
		return
	}
	e.boss = boss.handle
	e.cascade = cascadeDestroy
	e.follow = followKinematics
}

// Boss resolves the boss handle. A destroyed boss resolves to nothing.
func (e *Entity) Boss() (*Entity, bool) {
	if !e.boss.Valid() || e.scene == nil {
		return nil, false
	}
	return e.scene.Resolve(e.boss)
}

// Kill destroys the entity through its scene, cascading to followers
func (e *Entity) Kill() {
	if e.scene != nil {
		e.scene.Kill(e)
		return
	}
	e.alive = false
}

// area returns the active play rectangle
func (e *Entity) area() Rect {
	if e.Area != nil {
		return *e.Area
	}
	if e.scene != nil {
		return e.scene.bounds
	}
	return Rect{}
}

// expired names the first lifetime limit that has been reached, or "" if none
func (e *Entity) expired() string {
	switch {
	case e.HitPoints <= 0:
		return "hit points"
	case e.MaxAge > 0 && e.Age > e.MaxAge:
		return "max age"
	case e.MaxDistance > 0 && e.DistanceTraveled > e.MaxDistance:
		return "max distance"
	}
	return ""
}

// Update advances the entity by dt seconds
func (e *Entity) Update(dt float64) {
	if !e.alive {
		return
	}
	e.Age += dt
	if e.Age < 0 {
		return
	}

	if reason := e.expired(); reason != "" {
		if e.scene != nil {
			e.scene.ctx.Logger.Debug("entity expired", "kind", e.Kind, "reason", reason)
		}
		e.Kill()
		return
	}

	updateBehavior(e, dt)
	if !e.alive {
		return
	}

	if boss, ok := e.Boss(); ok && e.follow {
		// the boss already resolved its own boundary this frame
		e.Pos = boss.Pos
		e.Vel = boss.Vel
	} else {
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
		e.DistanceTraveled += e.Vel.Length() * dt

		pos, vel, killed := ApplyBoundary(e.Boundary, e.Pos, e.Vel, e.area())
		e.Pos, e.Vel = pos, vel
		if killed {
			e.Kill()
			return
		}
	}

	e.drawX, e.drawY = e.Pos.Round()
}

// Rotate turns both velocity and facing by degrees
func (e *Entity) Rotate(degrees float64) {
	e.Vel = e.Vel.Rotate(degrees)
	e.Angle = wrapDegrees(e.Angle + degrees)
}

// Bounds returns the axis-aligned box of the collision shape
func (e *Entity) Bounds() Rect {
	if e.Width > 0 && e.Height > 0 {
		return Rect{X: e.Pos.X - e.Width/2, Y: e.Pos.Y - e.Height/2, Width: e.Width, Height: e.Height}
	}
	return Rect{X: e.Pos.X - e.Radius, Y: e.Pos.Y - e.Radius, Width: 2 * e.Radius, Height: 2 * e.Radius}
}

// IsColliding checks if the collision shapes of two entities overlap
func (e *Entity) IsColliding(other *Entity) bool {
	eBox := e.Width > 0 && e.Height > 0
	oBox := other.Width > 0 && other.Height > 0
	switch {
	case eBox && oBox:
		a, b := e.Bounds(), other.Bounds()
		return a.Left() <= b.Right() && b.Left() <= a.Right() && a.Top() <= b.Bottom() && b.Top() <= a.Bottom()
	case eBox:
		return circleHitsBox(other.Pos, other.Radius, e.Bounds())
	case oBox:
		return circleHitsBox(e.Pos, e.Radius, other.Bounds())
	default:
		r := e.Radius + other.Radius
		return e.Pos.Sub(other.Pos).LengthSquared() <= r*r
	}
}

func circleHitsBox(c Vector2, radius float64, box Rect) bool {
	nearest := Vector2{
		X: math.Max(box.Left(), math.Min(c.X, box.Right())),
		Y: math.Max(box.Top(), math.Min(c.Y, box.Bottom())),
	}
	return c.Sub(nearest).LengthSquared() <= radius*radius
}
