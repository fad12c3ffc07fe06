package game

import "math"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the middle of the rectangle
func (r Rect) Center() Vector2 {
	return Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// BoundaryPolicy is a set of edge rules applied when an entity leaves its play area.
// Flags may be combined; they are resolved per edge in the order Stop, Kill, Bounce, Warp.
type BoundaryPolicy uint8

const (
	BoundaryNone BoundaryPolicy = 0
	BoundaryStop BoundaryPolicy = 1 << iota
	BoundaryKill
	BoundaryBounce
	BoundaryWarp
)

// Has reports whether every flag in f is set
func (p BoundaryPolicy) Has(f BoundaryPolicy) bool {
	return f != 0 && p&f == f
}

func (p BoundaryPolicy) String() string {
	if p == BoundaryNone {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		flag BoundaryPolicy
		name string
	}{
		{BoundaryStop, "stop"},
		{BoundaryKill, "kill"},
		{BoundaryBounce, "bounce"},
		{BoundaryWarp, "warp"},
	} {
		if p.Has(f.flag) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// edge identifies one side of a Rect
type edge int

const (
	edgeLeft edge = iota
	edgeTop
	edgeRight
	edgeBottom
)

// ApplyBoundary resolves pos and vel against area for every crossed edge.
// Edges are checked left, top, right, bottom, each independently, so an entity
// leaving through a corner is corrected on both axes in the same call.
// killed is true when a Kill rule fired; no further edges are evaluated then.
func ApplyBoundary(policy BoundaryPolicy, pos, vel Vector2, area Rect) (Vector2, Vector2, bool) {
	if policy == BoundaryNone || area.Contains(pos) {
		return pos, vel, false
	}
	for _, e := range [...]edge{edgeLeft, edgeTop, edgeRight, edgeBottom} {
		if !crossed(e, pos, area) {
			continue
		}
		if policy.Has(BoundaryStop) {
			pos = clampToEdge(e, pos, area)
		}
		if policy.Has(BoundaryKill) {
			return pos, vel, true
		}
		if policy.Has(BoundaryBounce) {
			pos = clampToEdge(e, pos, area)
			vel = reflect(e, vel)
		}
		if policy.Has(BoundaryWarp) {
			pos = warpAcross(e, pos, area)
		}
	}
	return pos, vel, false
}

func crossed(e edge, p Vector2, r Rect) bool {
	switch e {
	case edgeLeft:
		return p.X < r.Left()
	case edgeTop:
		return p.Y < r.Top()
	case edgeRight:
		return p.X > r.Right()
	default:
		return p.Y > r.Bottom()
	}
}

func clampToEdge(e edge, p Vector2, r Rect) Vector2 {
	switch e {
	case edgeLeft:
		p.X = r.Left()
	case edgeTop:
		p.Y = r.Top()
	case edgeRight:
		p.X = r.Right()
	default:
		p.Y = r.Bottom()
	}
	return p
}

// reflect points the velocity component perpendicular to the edge back into the area
func reflect(e edge, v Vector2) Vector2 {
	switch e {
	case edgeLeft:
		v.X = math.Abs(v.X)
	case edgeTop:
		v.Y = math.Abs(v.Y)
	case edgeRight:
		v.X = -math.Abs(v.X)
	default:
		v.Y = -math.Abs(v.Y)
	}
	return v
}

func warpAcross(e edge, p Vector2, r Rect) Vector2 {
	switch e {
	case edgeLeft:
		p.X = r.Right()
	case edgeTop:
		p.Y = r.Bottom()
	case edgeRight:
		p.X = r.Left()
	default:
		p.Y = r.Top()
	}
	return p
}
