// Package schedule implements the simulation's internal timed-event queue.
//
// A Queue holds callbacks ordered by the in-game time they fall due, along
// with the queue's own notion of "now". The server runtime asks the queue
// when its next event is due, sleeps at most that long in wall time, and
// then advances the queue, which runs every callback due on the way.
package schedule

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lodestoneworks/gameserver/gametime"
)

// EventID identifies a scheduled event so it can be cancelled.
type EventID string

type event struct {
	id        EventID
	when      gametime.Time
	fn        func()
	cancelled bool
}

// Queue is a time-ordered callback queue over in-game time.
//
// The queue is owned by the server runtime goroutine once the simulation is
// running; before handoff the builder closure populates it from the calling
// goroutine. The internal mutex exists so callbacks that reschedule
// themselves during Advance remain safe, not to support concurrent callers.
type Queue struct {
	mu      sync.Mutex
	now     gametime.Time
	counter uint64
	events  []*event // ordered by when, earliest first
	index   map[EventID]*event
}

// New returns an empty queue whose clock starts at the given in-game time.
func New(start gametime.Time) *Queue {
	return &Queue{
		now:   start,
		index: make(map[EventID]*event),
	}
}

// Now returns the queue's current in-game time.
func (q *Queue) Now() gametime.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now
}

// Schedule registers fn to run at in-game time at. Scheduling at or before
// the current time is allowed; the event runs on the next Advance.
func (q *Queue) Schedule(at gametime.Time, fn func()) EventID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.counter++
	id := EventID(fmt.Sprintf("ev-%d", q.counter))

	ev := &event{id: id, when: at, fn: fn}
	q.insertLocked(ev)
	q.index[id] = ev
	return id
}

// insertLocked places ev into the events slice keeping time order.
// Caller must hold q.mu.
func (q *Queue) insertLocked(ev *event) {
	idx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].when.After(ev.when)
	})
	q.events = append(q.events, nil)
	copy(q.events[idx+1:], q.events[idx:])
	q.events[idx] = ev
}

// Cancel drops a previously scheduled event. It is a no-op if the ID is
// unknown or the event already ran.
func (q *Queue) Cancel(id EventID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ev, ok := q.index[id]
	if !ok {
		return
	}
	ev.cancelled = true
	delete(q.index, id)
	// Removal from q.events is lazy; Advance and NextDue skip cancelled events.
}

// NextDue reports the in-game time of the earliest pending event. The
// second return value is false when the queue is empty.
func (q *Queue) NextDue() (gametime.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, ev := range q.events {
		if ev.cancelled {
			continue
		}
		return ev.when, true
	}
	return 0, false
}

// popDueLocked removes and returns the earliest non-cancelled event due at
// or before until. Caller must hold q.mu.
func (q *Queue) popDueLocked(until gametime.Time) *event {
	for len(q.events) > 0 {
		ev := q.events[0]
		if ev.cancelled {
			q.events = q.events[1:]
			continue
		}
		if ev.when.After(until) {
			break
		}
		q.events = q.events[1:]
		delete(q.index, ev.id)
		return ev
	}
	return nil
}

// Advance moves the queue's clock to until, running every event due on the
// way in time order. Each callback observes Now() equal to its own
// scheduled time (or the previous value, for events scheduled in the past).
// Callbacks run outside the lock and may schedule further events, including
// more that fall due at or before until; those run in the same call.
//
// Advance returns the number of events that ran. If until precedes the
// current time the clock does not move backwards.
func (q *Queue) Advance(until gametime.Time) int {
	ran := 0
	for {
		q.mu.Lock()
		ev := q.popDueLocked(until)
		if ev == nil {
			if until.After(q.now) {
				q.now = until
			}
			q.mu.Unlock()
			return ran
		}
		if ev.when.After(q.now) {
			q.now = ev.when
		}
		q.mu.Unlock()

		if ev.fn != nil {
			ev.fn()
		}
		ran++
	}
}

// Len returns the number of pending (non-cancelled) events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.index)
}
