// Package world holds the authoritative simulation state: the entity heap,
// the positional index used for proximity queries, and the World aggregate
// the server runtime owns after handoff.
//
// Nothing in this package is safe for concurrent use. The world belongs to
// exactly one goroutine at a time: the builder closure during bootstrap,
// the server runtime afterwards. Cross-goroutine effects arrive only as
// interruptions applied by the runtime itself.
package world

import "github.com/lodestoneworks/gameserver/gametime"

// EntityID identifies an entity in the heap. IDs are heap-assigned and
// never reused within a run; zero is never a valid ID.
type EntityID uint64

// Entity is a movable body in the world. Position is dead-reckoned: Pos is
// the position at in-game time UpdatedAt, and Velocity (world units per
// in-game second) extrapolates it forward from there.
type Entity struct {
	ID        EntityID
	Name      string
	Pos       Vec2
	Velocity  Vec2
	UpdatedAt gametime.Time
}

// PositionAt extrapolates the entity's position to in-game time t. Times
// before UpdatedAt return the stored position unchanged.
func (e *Entity) PositionAt(t gametime.Time) Vec2 {
	dt := t.Sub(e.UpdatedAt)
	if dt <= 0 {
		return e.Pos
	}
	return e.Pos.Add(e.Velocity.Scale(dt.Seconds()))
}
