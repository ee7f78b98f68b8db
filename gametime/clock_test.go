package gametime

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestWallClockFrozenWhilePaused(t *testing.T) {
	c := NewWallClock(Time(Seconds(5)))

	if got := c.InGame(epoch); got != Time(Seconds(5)) {
		t.Fatalf("InGame = %v, want %v", got, Time(Seconds(5)))
	}
	if got := c.InGame(epoch.Add(time.Hour)); got != Time(Seconds(5)) {
		t.Fatalf("InGame after an hour paused = %v, want %v", got, Time(Seconds(5)))
	}
}

func TestWallClockResumeMonotonic(t *testing.T) {
	c := NewWallClock(0)
	c.Start(epoch)

	t0 := c.InGame(epoch)
	t1 := c.InGame(epoch.Add(1500 * time.Millisecond))

	if got := t1.Sub(t0); got != ToInGame(1500*time.Millisecond) {
		t.Fatalf("elapsed = %d, want %d", got, ToInGame(1500*time.Millisecond))
	}
}

func TestWallClockStopFreezes(t *testing.T) {
	c := NewWallClock(0)
	c.Start(epoch)
	c.Stop(epoch.Add(2 * time.Second))

	frozen := c.InGame(epoch.Add(2 * time.Second))
	if frozen != Time(Seconds(2)) {
		t.Fatalf("frozen time = %v, want %v", frozen, Time(Seconds(2)))
	}
	if got := c.InGame(epoch.Add(10 * time.Second)); got != frozen {
		t.Fatalf("InGame while stopped = %v, want %v", got, frozen)
	}
}

func TestWallClockRestartKeepsElapsed(t *testing.T) {
	c := NewWallClock(0)
	c.Start(epoch)
	c.Stop(epoch.Add(time.Second))

	// A five second wall gap while stopped must not leak into game time.
	c.Start(epoch.Add(6 * time.Second))

	if got := c.InGame(epoch.Add(7 * time.Second)); got != Time(Seconds(2)) {
		t.Fatalf("InGame after restart = %v, want %v", got, Time(Seconds(2)))
	}
}

func TestWallClockRestartWhileRunningRebases(t *testing.T) {
	c := NewWallClock(0)
	c.Start(epoch)
	c.Start(epoch.Add(time.Second))

	if got := c.InGame(epoch.Add(3 * time.Second)); got != Time(Seconds(3)) {
		t.Fatalf("InGame = %v, want %v", got, Time(Seconds(3)))
	}
}

func TestMinimumWaitZeroWhenDue(t *testing.T) {
	c := NewWallClock(0)

	if got := c.MinimumWait(Time(Seconds(2)), Time(Seconds(2))); got != 0 {
		t.Fatalf("MinimumWait(now, now) = %v, want 0", got)
	}
	if got := c.MinimumWait(Time(Seconds(2)), Time(Seconds(1))); got != 0 {
		t.Fatalf("MinimumWait past = %v, want 0", got)
	}
}

func TestMinimumWaitCoversDelta(t *testing.T) {
	c := NewWallClock(0)
	now := Time(Seconds(1))
	until := now.Add(ToInGame(750 * time.Millisecond))

	wait := c.MinimumWait(now, until)
	if back := ToInGame(wait); back < until.Sub(now) {
		t.Fatalf("ToInGame(MinimumWait) = %d, want >= %d", back, until.Sub(now))
	}
}

func TestSnapshotSharesMappingNotState(t *testing.T) {
	c := NewWallClock(0)
	c.Start(epoch)

	snap := c.Snapshot()
	at := epoch.Add(3 * time.Second)
	if got, want := snap.InGame(at), c.InGame(at); got != want {
		t.Fatalf("snapshot InGame = %v, want %v", got, want)
	}

	// Stopping the original must not freeze the snapshot.
	c.Stop(epoch.Add(4 * time.Second))
	if got := snap.InGame(epoch.Add(10 * time.Second)); got != Time(Seconds(10)) {
		t.Fatalf("snapshot after original stopped = %v, want %v", got, Time(Seconds(10)))
	}
}
