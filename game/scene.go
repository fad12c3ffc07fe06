package game

import (
	"image"
	"slices"
	"sort"
)

// slot is one registry entry. gen changes every time the slot is freed,
// which invalidates every Handle issued for the previous occupant.
type slot struct {
	entity *Entity
	gen    uint32
}

// Scene owns all live entities of a simulation mode: insertion order for
// updates, (layer, insertion) order for drawing and named groups for queries
type Scene struct {
	ctx    *Context
	bounds Rect

	slots []slot
	free  []int

	// live entities in insertion order
	order []*Entity
	seq   uint64

	groups map[string][]*Entity

	drawOrder []*Entity
	drawDirty bool

	// pairs already reported by DetectCollisions since the last Update
	hits map[[2]uint64]struct{}
	grid *Grid
}

// NewScene creates an empty scene bounded by the given play area
func NewScene(ctx *Context, bounds Rect) *Scene {
	return &Scene{
		ctx:    ctx,
		bounds: bounds,
		slots:  make([]slot, 0, 256),
		order:  make([]*Entity, 0, 256),
		groups: make(map[string][]*Entity),
		hits:   make(map[[2]uint64]struct{}),
		grid:   NewGrid(bounds, ctx.Config.CellSize),
	}
}

// Context returns the simulation context of the scene
func (s *Scene) Context() *Context { return s.ctx }

// Bounds returns the global play area
func (s *Scene) Bounds() Rect { return s.bounds }

// GridCellSize returns the cell size of the collision grid
func (s *Scene) GridCellSize() float64 { return s.grid.cellSize }

// Len returns the number of live entities
func (s *Scene) Len() int { return len(s.order) }

// Add inserts e on layer and into each named group. Adding an entity that is
// already live is a no-op.
func (s *Scene) Add(e *Entity, layer int, groups ...string) *Entity {
	if e == nil || e.alive {
		return e
	}

	var idx int
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{gen: 1})
		idx = len(s.slots) - 1
	}
	s.slots[idx].entity = e

	s.seq++
	e.scene = s
	e.handle = Handle{slot: idx, gen: s.slots[idx].gen}
	e.layer = layer
	e.seq = s.seq
	e.alive = true
	e.groups = e.groups[:0]
	e.drawX, e.drawY = e.Pos.Round()

	s.order = append(s.order, e)
	for _, name := range groups {
		if e.InGroup(name) {
			continue
		}
		e.groups = append(e.groups, name)
		s.groups[name] = append(s.groups[name], e)
	}
	s.drawDirty = true
	return e
}

// Resolve returns the live entity behind h
func (s *Scene) Resolve(h Handle) (*Entity, bool) {
	if !h.Valid() || h.slot < 0 || h.slot >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[h.slot]
	if sl.gen != h.gen || sl.entity == nil || !sl.entity.alive {
		return nil, false
	}
	return sl.entity, true
}

// Kill destroys e. Followers with cascade set are destroyed first, recursively;
// other followers survive with a boss handle that no longer resolves.
func (s *Scene) Kill(e *Entity) {
	if e == nil || !e.alive || e.scene != s {
		return
	}
	e.alive = false

	for _, f := range slices.Clone(s.order) {
		if f.alive && f.cascade && f.boss == e.handle {
			s.Kill(f)
		}
	}

	onDestroy(e)
	s.remove(e)
}

// remove unlinks e from the registry and frees its slot
func (s *Scene) remove(e *Entity) {
	s.order = slices.DeleteFunc(s.order, func(x *Entity) bool { return x == e })
	for _, name := range e.groups {
		members := slices.DeleteFunc(s.groups[name], func(x *Entity) bool { return x == e })
		if len(members) == 0 {
			delete(s.groups, name)
		} else {
			s.groups[name] = members
		}
	}
	sl := &s.slots[e.handle.slot]
	sl.entity = nil
	sl.gen++
	s.free = append(s.free, e.handle.slot)
	s.drawDirty = true
}

// Update advances every entity live at the start of the call, in insertion order.
// Entities spawned during the pass are first updated on the next frame.
func (s *Scene) Update(dt float64) {
	clear(s.hits)
	for _, e := range slices.Clone(s.order) {
		if e.alive {
			e.Update(dt)
		}
	}
}

// DrawOrder returns the live entities sorted by (layer, insertion sequence)
func (s *Scene) DrawOrder() []*Entity {
	if s.drawDirty {
		s.drawOrder = append(s.drawOrder[:0], s.order...)
		sort.SliceStable(s.drawOrder, func(i, j int) bool {
			return s.drawOrder[i].layer < s.drawOrder[j].layer
		})
		s.drawDirty = false
	}
	return slices.Clone(s.drawOrder)
}

// Draw hands every visible entity to sink, back to front
func (s *Scene) Draw(sink DrawSink) {
	for _, e := range s.DrawOrder() {
		if !e.alive || e.Age < 0 {
			continue
		}
		sink.DrawSprite(e.Sprite(), image.Pt(e.drawX, e.drawY))
	}
}

// Group returns a snapshot of the live members of a named group
func (s *Scene) Group(name string) []*Entity {
	return slices.Clone(s.groups[name])
}

// Entities returns a snapshot of all live entities in insertion order
func (s *Scene) Entities() []*Entity {
	return slices.Clone(s.order)
}

// Clear drops every entity at once. No cascade runs and no destroy hooks fire.
func (s *Scene) Clear() {
	for _, e := range s.order {
		e.alive = false
		sl := &s.slots[e.handle.slot]
		sl.entity = nil
		sl.gen++
		s.free = append(s.free, e.handle.slot)
	}
	s.order = s.order[:0]
	s.drawOrder = s.drawOrder[:0]
	s.drawDirty = false
	clear(s.groups)
	clear(s.hits)
}
