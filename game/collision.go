package game

// Group names used by the scenarios
const (
	GroupBeams   = "beams"
	GroupTargets = "targets"
	GroupSmoke   = "smoke"
	GroupSparks  = "sparks"
)

// DetectCollisions tests every live member of groupA against every live member
// of groupB and calls onHit once per overlapping pair. A pair reported since the
// last Update is not reported again. onHit may destroy either entity, so it must
// check Alive before acting; scanning continues with the remaining pairs.
func (s *Scene) DetectCollisions(groupA, groupB string, onHit func(a, b *Entity)) {
	as := s.groups[groupA]
	bs := s.groups[groupB]
	if len(as) == 0 || len(bs) == 0 {
		return
	}
	as = append([]*Entity(nil), as...)
	bs = append([]*Entity(nil), bs...)

	useGrid := s.ctx.Config.GridThreshold > 0 && len(bs) >= s.ctx.Config.GridThreshold
	if useGrid {
		s.grid.Reset()
		for _, b := range bs {
			s.grid.Insert(b)
		}
	}

	var candidates []*Entity
	for _, a := range as {
		if !a.alive {
			continue
		}
		if useGrid {
			candidates = s.grid.Near(a, candidates[:0])
		} else {
			candidates = bs
		}
		for _, b := range candidates {
			if !a.alive {
				break
			}
			if !b.alive || a == b {
				continue
			}
			key := [2]uint64{a.ID, b.ID}
			if _, seen := s.hits[key]; seen {
				continue
			}
			if a.IsColliding(b) {
				s.hits[key] = struct{}{}
				onHit(a, b)
			}
		}
	}
}
