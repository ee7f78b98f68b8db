package gametime

import "time"

// Clock is the capability the server runtime schedules against. Components
// depend on this interface rather than on a concrete clock so that tests can
// drive the runtime with a virtual clock that advances in-game time without
// sleeping (see the server package tests).
type Clock interface {
	// InGame returns the in-game time corresponding to the wall instant now.
	InGame(now time.Time) Time

	// MinimumWait returns the least real time that must pass before the
	// in-game instant until can be reached. It is zero when until <= now.
	MinimumWait(now, until Time) time.Duration

	// FinishedCycle is invoked by the runtime after each scheduling cycle.
	// WallClock ignores it; alternate clocks may use it for bookkeeping.
	FinishedCycle(now time.Time, inGame Time)

	// EndCycles is invoked once when the runtime stops.
	EndCycles()

	// Snapshot returns a read-only view of the clock for use outside the
	// runtime goroutine.
	Snapshot() Snapshot
}

// Snapshot is a read-only clock handle. It answers time queries with the
// same wall-to-in-game mapping as the clock it was taken from, but shares
// no mutable state with the runtime.
type Snapshot interface {
	InGame(now time.Time) Time
}

// WallClock ties the in-game timeline to the system clock at a one-to-one
// rate, with pause/resume. While stopped, in-game time is frozen at base;
// while running, it is base plus the in-game equivalent of the wall time
// elapsed since the last Start.
//
// WallClock is not safe for concurrent mutation. The server runtime owns
// the authoritative instance; everyone else reads through a Snapshot.
type WallClock struct {
	runningSince time.Time
	running      bool
	base         Time
}

// NewWallClock returns a clock frozen at the given initial in-game time.
// Call Start to let time flow.
func NewWallClock(start Time) *WallClock {
	return &WallClock{base: start}
}

func (c *WallClock) elapsed(now time.Time) time.Duration {
	// Time only passes while the clock is running.
	if !c.running {
		return 0
	}
	return now.Sub(c.runningSince)
}

// InGame returns the in-game time at the wall instant now.
func (c *WallClock) InGame(now time.Time) Time {
	return c.base.Add(ToInGame(c.elapsed(now)))
}

// Stop freezes the clock at its in-game time as of now. Subsequent InGame
// calls return the frozen value until Start is called again.
func (c *WallClock) Stop(now time.Time) {
	c.base = c.InGame(now)
	c.running = false
}

// Start resumes the clock from the wall instant now. Starting an already
// running clock rebases it at now without losing elapsed in-game time.
func (c *WallClock) Start(now time.Time) {
	c.Stop(now)
	c.runningSince = now
	c.running = true
}

// MinimumWait converts the in-game delta until-now into the real time the
// runtime must sleep before until can be reached.
func (c *WallClock) MinimumWait(now, until Time) time.Duration {
	return ToWall(until.Sub(now))
}

// FinishedCycle is a no-op for WallClock.
func (c *WallClock) FinishedCycle(time.Time, Time) {}

// EndCycles is a no-op for WallClock.
func (c *WallClock) EndCycles() {}

// Snapshot returns a value copy of the clock. The copy maps wall instants
// to in-game time exactly as the original does at the moment of the call,
// and evolves independently thereafter.
func (c *WallClock) Snapshot() Snapshot {
	cp := *c
	return &cp
}
