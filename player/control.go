// Package player holds the control semantics that the player-update
// interruption applies to the world. Producers (network handlers, local
// input, bots) build Control values; only the server runtime applies them.
package player

import (
	"github.com/lodestoneworks/gameserver/schedule"
	"github.com/lodestoneworks/gameserver/world"
)

// DefaultSpeed is the movement speed used when a control update does not
// specify one, in world units per in-game second.
const DefaultSpeed = 4.0

// Control is a directional-pad movement state. Producers should suppress
// updates that do not change the pad state; key repeat generates a lot of
// redundant presses.
type Control struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	// Speed is the movement speed in world units per in-game second.
	// Zero means DefaultSpeed.
	Speed float64
}

// Direction returns the unit movement vector for the pad state. Opposing
// directions cancel; diagonals are normalized so they are not faster than
// cardinal movement.
func (c Control) Direction() world.Vec2 {
	var v world.Vec2
	if c.Up {
		v.Y -= 1
	}
	if c.Down {
		v.Y += 1
	}
	if c.Left {
		v.X -= 1
	}
	if c.Right {
		v.X += 1
	}
	return v.Normalized()
}

// Velocity returns the movement vector scaled to the control's speed.
func (c Control) Velocity() world.Vec2 {
	speed := c.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	return c.Direction().Scale(speed)
}

// Apply folds a control update into the world at the queue's current
// in-game time: the entity's position is first integrated up to now under
// its previous velocity, then the new velocity takes over, and the spatial
// index is refreshed. A vanished entity makes the update a no-op; the
// update may legitimately race a despawn.
func Apply(sp *world.Space, q *schedule.Queue, matter *world.Heap, id world.EntityID, c Control) {
	ent := matter.Get(id)
	if ent == nil {
		return
	}
	now := q.Now()
	ent.Pos = ent.PositionAt(now)
	ent.UpdatedAt = now
	ent.Velocity = c.Velocity()
	sp.Place(ent.ID, ent.Pos)
}
