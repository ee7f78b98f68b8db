// Package server runs the authoritative simulation on a single dedicated
// goroutine. External producers post Interruptions through a Sender; the
// runtime interleaves them with the world's own scheduled events so that
// all mutation happens on one goroutine, in one well-defined order.
package server

import (
	"fmt"

	"github.com/lodestoneworks/gameserver/player"
	"github.com/lodestoneworks/gameserver/schedule"
	"github.com/lodestoneworks/gameserver/world"
)

// Interruption is an externally produced mutation applied to the running
// simulation between cycles. The variant set is closed: dispatch switches
// on the concrete type, and an unknown variant is a programming error.
type Interruption interface {
	isInterruption()
}

// PlayerUpdate applies a control change to a named entity.
type PlayerUpdate struct {
	ID      world.EntityID
	Control player.Control
}

func (PlayerUpdate) isInterruption() {}

// Shutdown stops the runtime. It performs no world mutation.
type Shutdown struct{}

func (Shutdown) isInterruption() {}

// applyInterruption runs one interruption with exclusive access to the
// event queue and world, and reports whether the runtime should stop.
func applyInterruption(in Interruption, q *schedule.Queue, w *world.World) bool {
	switch v := in.(type) {
	case PlayerUpdate:
		player.Apply(w.Space, q, w.Matter, v.ID, v.Control)
		return false
	case Shutdown:
		return true
	default:
		panic(fmt.Sprintf("server: unknown interruption variant %T", in))
	}
}

// interruptionKind labels a variant for metrics and logs.
func interruptionKind(in Interruption) string {
	switch in.(type) {
	case PlayerUpdate:
		return "player_update"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
