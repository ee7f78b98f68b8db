package schedule

import (
	"testing"

	"github.com/lodestoneworks/gameserver/gametime"
)

func at(s int64) gametime.Time { return gametime.Time(gametime.Seconds(s)) }

func TestQueueRunsEventsInTimeOrder(t *testing.T) {
	q := New(0)

	var order []int
	q.Schedule(at(3), func() { order = append(order, 3) })
	q.Schedule(at(1), func() { order = append(order, 1) })
	q.Schedule(at(2), func() { order = append(order, 2) })

	ran := q.Advance(at(5))

	if ran != 3 {
		t.Fatalf("Advance ran %d events, want 3", ran)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("run order = %v, want [1 2 3]", order)
	}
	if got := q.Now(); got != at(5) {
		t.Fatalf("Now() = %v, want %v", got, at(5))
	}
}

func TestQueueNextDue(t *testing.T) {
	q := New(0)

	if _, ok := q.NextDue(); ok {
		t.Fatal("NextDue on empty queue reported an event")
	}

	q.Schedule(at(7), func() {})
	q.Schedule(at(4), func() {})

	due, ok := q.NextDue()
	if !ok || due != at(4) {
		t.Fatalf("NextDue = %v, %v; want %v, true", due, ok, at(4))
	}
}

func TestQueueAdvanceStopsAtUntil(t *testing.T) {
	q := New(0)

	ranLate := false
	q.Schedule(at(10), func() { ranLate = true })

	if ran := q.Advance(at(9)); ran != 0 {
		t.Fatalf("Advance ran %d events, want 0", ran)
	}
	if ranLate {
		t.Fatal("event beyond until was run")
	}
	if got := q.Now(); got != at(9) {
		t.Fatalf("Now() = %v, want %v", got, at(9))
	}
}

func TestQueueCancel(t *testing.T) {
	q := New(0)

	ran := false
	id := q.Schedule(at(1), func() { ran = true })
	q.Schedule(at(2), func() {})
	q.Cancel(id)

	due, ok := q.NextDue()
	if !ok || due != at(2) {
		t.Fatalf("NextDue after cancel = %v, %v; want %v, true", due, ok, at(2))
	}
	if got := q.Advance(at(3)); got != 1 {
		t.Fatalf("Advance ran %d events, want 1", got)
	}
	if ran {
		t.Fatal("cancelled event ran")
	}

	// Cancelling an unknown or already-run ID is a no-op.
	q.Cancel(id)
	q.Cancel("ev-999")
}

func TestQueueCallbackObservesOwnTime(t *testing.T) {
	q := New(0)

	var seen []gametime.Time
	q.Schedule(at(2), func() { seen = append(seen, q.Now()) })
	q.Schedule(at(4), func() { seen = append(seen, q.Now()) })

	q.Advance(at(5))

	if len(seen) != 2 || seen[0] != at(2) || seen[1] != at(4) {
		t.Fatalf("callback times = %v, want [%v %v]", seen, at(2), at(4))
	}
}

func TestQueueReentrantScheduling(t *testing.T) {
	q := New(0)

	var order []string
	q.Schedule(at(1), func() {
		order = append(order, "first")
		q.Schedule(at(2), func() { order = append(order, "chained") })
		q.Schedule(at(20), func() { order = append(order, "late") })
	})

	ran := q.Advance(at(5))

	if ran != 2 {
		t.Fatalf("Advance ran %d events, want 2", ran)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "chained" {
		t.Fatalf("run order = %v, want [first chained]", order)
	}
	if due, ok := q.NextDue(); !ok || due != at(20) {
		t.Fatalf("NextDue = %v, %v; want %v, true", due, ok, at(20))
	}
}

func TestQueuePastEventRunsWithoutRegressingTime(t *testing.T) {
	q := New(at(5))

	ran := false
	q.Schedule(at(1), func() {
		ran = true
		if got := q.Now(); got != at(5) {
			t.Errorf("Now() inside past event = %v, want %v", got, at(5))
		}
	})

	q.Advance(at(5))

	if !ran {
		t.Fatal("past-due event did not run")
	}
}

func TestQueueAdvanceNeverMovesBackwards(t *testing.T) {
	q := New(at(5))
	q.Advance(at(2))
	if got := q.Now(); got != at(5) {
		t.Fatalf("Now() = %v, want %v", got, at(5))
	}
}

func TestQueueLen(t *testing.T) {
	q := New(0)
	id := q.Schedule(at(1), func() {})
	q.Schedule(at(2), func() {})

	if got := q.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	q.Cancel(id)
	if got := q.Len(); got != 1 {
		t.Fatalf("Len after cancel = %d, want 1", got)
	}
	q.Advance(at(3))
	if got := q.Len(); got != 0 {
		t.Fatalf("Len after advance = %d, want 0", got)
	}
}
