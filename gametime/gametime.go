// Package gametime maps wall-clock time onto the simulation's own timeline.
//
// In-game time is a fixed-point count of subunits since the simulation
// epoch, with one billion subunits per in-game second. Matching wall-clock
// nanosecond resolution keeps the wall/in-game conversions exact in both
// directions, so a long-running server does not accumulate drift.
package gametime

import (
	"fmt"
	"time"
)

// SubunitsPerSecond is the fixed-point resolution of in-game time.
const SubunitsPerSecond = 1_000_000_000

// Duration is an elapsed span of in-game time, in subunits.
type Duration int64

// Time is an absolute instant on the in-game timeline, counted in subunits
// from the simulation epoch.
type Time int64

// Seconds constructs an in-game duration from a whole number of in-game seconds.
func Seconds(s int64) Duration {
	return Duration(s) * SubunitsPerSecond
}

// Add returns the instant d after t.
func (t Time) Add(d Duration) Time { return t + Time(d) }

// Sub returns the elapsed in-game time from o to t.
func (t Time) Sub(o Time) Duration { return Duration(t - o) }

// Before reports whether t precedes o on the in-game timeline.
func (t Time) Before(o Time) bool { return t < o }

// After reports whether t follows o on the in-game timeline.
func (t Time) After(o Time) bool { return t > o }

// Seconds returns t as floating-point in-game seconds since the epoch.
func (t Time) Seconds() float64 { return float64(t) / SubunitsPerSecond }

func (t Time) String() string {
	return fmt.Sprintf("T+%.3fs", t.Seconds())
}

// Seconds returns d as floating-point in-game seconds.
func (d Duration) Seconds() float64 { return float64(d) / SubunitsPerSecond }

// ToInGame converts a wall-clock duration into in-game time. The whole-second
// and sub-second components convert independently and sum, preserving the
// nanosecond fraction exactly. Negative durations clamp to zero; time does
// not flow backwards into the simulation.
func ToInGame(d time.Duration) Duration {
	if d <= 0 {
		return 0
	}
	secs := int64(d / time.Second)
	nanos := int64(d % time.Second)
	return Duration(secs)*SubunitsPerSecond + Duration(nanos)
}

// ToWall converts an in-game duration back into wall-clock time. It is the
// inverse of ToInGame for non-negative inputs. Negative durations clamp to
// zero: the runtime only ever converts forward waits.
func ToWall(d Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	secs := int64(d) / SubunitsPerSecond
	frac := int64(d) % SubunitsPerSecond
	return time.Duration(secs)*time.Second + time.Duration(frac)
}
