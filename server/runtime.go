package server

import (
	"context"
	"time"

	"github.com/lodestoneworks/gameserver/gametime"
	"github.com/lodestoneworks/gameserver/internal/logging"
	"github.com/lodestoneworks/gameserver/schedule"
	"github.com/lodestoneworks/gameserver/world"
)

// MetricsRecorder receives runtime activity measurements. Implementations
// must tolerate calls from the runtime goroutine only; they are never
// invoked concurrently.
type MetricsRecorder interface {
	RecordCycle(d time.Duration)
	RecordInterruption(kind string)
	RecordEventsRun(n int)
	SetInGameTime(t gametime.Time)
	RecordExit(natural bool)
}

type noopMetrics struct{}

func (noopMetrics) RecordCycle(time.Duration)   {}
func (noopMetrics) RecordInterruption(string)   {}
func (noopMetrics) RecordEventsRun(int)         {}
func (noopMetrics) SetInGameTime(gametime.Time) {}
func (noopMetrics) RecordExit(bool)             {}

// Runtime owns the world and its event queue and runs the discrete-event
// loop. After handoff no goroutine other than the runtime's touches the
// queue or the world; external effects arrive only through the inbox.
type Runtime struct {
	queue   *schedule.Queue
	world   *world.World
	inbox   *inbox
	clock   gametime.Clock
	log     logging.Logger
	metrics MetricsRecorder
}

func newRuntime(
	q *schedule.Queue,
	w *world.World,
	ib *inbox,
	clock gametime.Clock,
	log logging.Logger,
	metrics MetricsRecorder,
) *Runtime {
	if log == nil {
		log = logging.Noop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Runtime{
		queue:   q,
		world:   w,
		inbox:   ib,
		clock:   clock,
		log:     log,
		metrics: metrics,
	}
}

// run drives the loop until an interruption requests a stop or every sender
// is gone. One cycle: wait at most until the next scheduled event is due
// (or indefinitely when the queue is empty), drain the inbox exhaustively,
// advance in-game time, run due events, then the FinishedCycle hook.
//
// The exhaustive per-cycle drain is a fairness policy: interruptions
// pending at a wake-up are all applied, in post order, before any scheduled
// event for that cycle runs. A stop request takes effect after the whole
// drained batch so that updates racing the shutdown are not dropped.
func (r *Runtime) run() {
	defer r.inbox.markStopped()
	ctx := context.Background()

	for {
		cycleStart := time.Now()

		if next, ok := r.queue.NextDue(); ok {
			now := r.clock.InGame(time.Now())
			r.inbox.await(r.clock.MinimumWait(now, next), true)
		} else {
			r.inbox.await(0, false)
		}

		stop := false
		for _, in := range r.inbox.drain() {
			r.metrics.RecordInterruption(interruptionKind(in))
			if applyInterruption(in, r.queue, r.world) {
				stop = true
			}
		}
		if stop {
			r.log.Info(ctx, "shutdown interruption received; stopping runtime")
			break
		}
		if r.inbox.abandoned() {
			r.log.Info(ctx, "all senders closed; stopping runtime")
			break
		}

		wallNow := time.Now()
		inGame := r.clock.InGame(wallNow)
		ran := r.queue.Advance(inGame)

		r.metrics.RecordEventsRun(ran)
		r.metrics.SetInGameTime(inGame)
		r.metrics.RecordCycle(time.Since(cycleStart))
		r.clock.FinishedCycle(wallNow, inGame)
	}

	r.clock.EndCycles()
}
