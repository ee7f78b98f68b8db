package server

import (
	"errors"
	"time"

	"github.com/lodestoneworks/gameserver/gametime"
	"github.com/lodestoneworks/gameserver/internal/logging"
	"github.com/lodestoneworks/gameserver/schedule"
	"github.com/lodestoneworks/gameserver/world"
)

// ErrHandoffFailed reports that the runtime goroutine exited before
// confirming the handoff. No usable server handle exists in that case.
var ErrHandoffFailed = errors.New("server: runtime exited before completing handoff")

// Builder populates the initial world. It runs on the calling goroutine
// with exclusive access to the collision space, the not-yet-running event
// queue, and the entity heap, and may return an arbitrary result (entity
// IDs, handles) that StartServer passes back to the caller. A panic in the
// builder propagates to the caller; no server is started.
type Builder[R any] func(sp *world.Space, q *schedule.Queue, matter *world.Heap) R

type options struct {
	clock   gametime.Clock
	log     logging.Logger
	metrics MetricsRecorder
	start   gametime.Time
}

// Option customises StartServer.
type Option func(*options)

// WithClock substitutes the clock driving the runtime. The default is a
// WallClock started at the current instant; tests use this to install a
// virtual clock.
func WithClock(c gametime.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger attaches a structured logger for runtime lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetricsRecorder attaches an optional recorder for runtime metrics.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithStartTime sets the initial in-game time. The default is the epoch.
func WithStartTime(t gametime.Time) Option {
	return func(o *options) { o.start = t }
}

// StartServer assembles a world via the builder, hands it to a fresh
// runtime goroutine, and returns once that goroutine has confirmed over a
// one-shot rendezvous channel that it is live. The returned sender posts
// interruptions for the runtime's lifetime, and the clock snapshot answers
// in-game time queries without touching the runtime's own clock.
//
// The handshake is the only point where the caller blocks on the runtime
// goroutine. If the goroutine faults before confirming, StartServer
// returns ErrHandoffFailed rather than a partial handle.
func StartServer[R any](build Builder[R], opts ...Option) (*Sender, gametime.Snapshot, R, error) {
	var zero R

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	clock := o.clock
	if clock == nil {
		wc := gametime.NewWallClock(o.start)
		wc.Start(time.Now())
		clock = wc
	}

	sp := world.NewSpace()
	q := schedule.New(o.start)
	matter := world.NewHeap()

	result := build(sp, q, matter)

	w := &world.World{Space: sp, Matter: matter}
	ib := newInbox()
	ib.addSender()
	sender := &Sender{ib: ib}

	rt := newRuntime(q, w, ib, clock, o.log, o.metrics)

	ready := make(chan gametime.Snapshot, 1)
	go func() {
		guard := &watcher{log: rt.log, metrics: rt.metrics}
		defer guard.report()
		// Closing ready makes a pre-handoff fault observable as a failed
		// receive instead of a hang. After the successful send the close
		// is a no-op for the caller.
		defer close(ready)

		ready <- rt.clock.Snapshot()
		rt.run()
		guard.natural = true
	}()

	snap, ok := <-ready
	if !ok {
		sender.Close()
		return nil, nil, zero, ErrHandoffFailed
	}
	return sender, snap, result, nil
}
