package world

import "sort"

// Space is the positional index over entities, used for proximity queries.
// It stores the last known position per entity; control application and
// periodic reindex events keep it current. Collision response itself is
// game-rule logic and lives with the callers.
type Space struct {
	positions map[EntityID]Vec2
}

// NewSpace returns an empty positional index.
func NewSpace() *Space {
	return &Space{positions: make(map[EntityID]Vec2)}
}

// Place records pos as the entity's current position, inserting the entity
// into the index if it is not yet present.
func (s *Space) Place(id EntityID, pos Vec2) {
	s.positions[id] = pos
}

// Remove drops the entity from the index.
func (s *Space) Remove(id EntityID) {
	delete(s.positions, id)
}

// Position returns the entity's indexed position.
func (s *Space) Position(id EntityID) (Vec2, bool) {
	pos, ok := s.positions[id]
	return pos, ok
}

// Nearby returns the IDs of all entities within radius of p, in ascending
// ID order. The scan is linear; world sizes here are far below the point
// where a spatial partition would pay off.
func (s *Space) Nearby(p Vec2, radius float64) []EntityID {
	var out []EntityID
	for id, pos := range s.positions {
		if pos.DistanceTo(p) <= radius {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of indexed entities.
func (s *Space) Len() int {
	return len(s.positions)
}
