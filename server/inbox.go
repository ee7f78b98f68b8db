package server

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrServerStopped reports a post on a sender whose runtime has already
	// exited. The caller should treat the whole server as shut down.
	ErrServerStopped = errors.New("server: runtime stopped")

	// ErrSenderClosed reports a post on a sender that was closed locally.
	ErrSenderClosed = errors.New("server: sender closed")
)

// inbox is the multi-producer/single-consumer hand-off point between
// producer goroutines and the runtime. Posting never blocks: pending
// interruptions accumulate in a slice, and the wake channel carries at most
// one pending signal for the runtime's bounded wait.
type inbox struct {
	mu      sync.Mutex
	pending []Interruption
	senders int
	stopped bool // runtime exited; posts fail from here on

	wake chan struct{}
	done chan struct{}
}

func newInbox() *inbox {
	return &inbox{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (ib *inbox) post(in Interruption) error {
	ib.mu.Lock()
	if ib.stopped {
		ib.mu.Unlock()
		return ErrServerStopped
	}
	ib.pending = append(ib.pending, in)
	ib.mu.Unlock()
	ib.signal()
	return nil
}

func (ib *inbox) signal() {
	select {
	case ib.wake <- struct{}{}:
	default:
	}
}

// drain removes and returns everything pending right now, in post order.
func (ib *inbox) drain() []Interruption {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	batch := ib.pending
	ib.pending = nil
	return batch
}

// abandoned reports whether nothing is pending and no senders remain, i.e.
// the runtime will never receive another interruption.
func (ib *inbox) abandoned() bool {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return len(ib.pending) == 0 && ib.senders == 0
}

// await blocks until an interruption is posted, the last sender closes,
// or — when bounded — the timeout elapses. It returns immediately when work
// is already pending or no sender is left.
func (ib *inbox) await(timeout time.Duration, bounded bool) {
	ib.mu.Lock()
	ready := len(ib.pending) > 0 || ib.senders == 0
	ib.mu.Unlock()
	if ready {
		return
	}

	if !bounded {
		<-ib.wake
		return
	}
	if timeout <= 0 {
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ib.wake:
	case <-timer.C:
	}
}

func (ib *inbox) addSender() {
	ib.mu.Lock()
	ib.senders++
	ib.mu.Unlock()
}

func (ib *inbox) dropSender() {
	ib.mu.Lock()
	ib.senders--
	last := ib.senders == 0
	ib.mu.Unlock()
	if last {
		ib.signal()
	}
}

// markStopped flips the inbox into its terminal state. Later posts fail
// with ErrServerStopped and Done observers are released. It runs on every
// runtime exit path, including unwinding from a fault.
func (ib *inbox) markStopped() {
	ib.mu.Lock()
	ib.stopped = true
	ib.mu.Unlock()
	close(ib.done)
}

// Sender posts interruptions into the runtime. A Sender is safe for
// concurrent use; independent producers should each hold their own handle
// via Clone. Close every handle when its producer is finished: the runtime
// treats the moment all senders are closed as an implicit shutdown request.
type Sender struct {
	ib *inbox

	mu     sync.Mutex
	closed bool
}

// Post delivers an interruption to the runtime. It never blocks. Posts on
// a closed sender fail with ErrSenderClosed; posts after the runtime has
// exited fail with ErrServerStopped.
func (s *Sender) Post(in Interruption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSenderClosed
	}
	return s.ib.post(in)
}

// Clone returns an independent sender for another producer goroutine.
func (s *Sender) Clone() *Sender {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// A closed handle cannot mint live ones; the clone starts closed too.
		return &Sender{ib: s.ib, closed: true}
	}
	s.ib.addSender()
	return &Sender{ib: s.ib}
}

// Close releases the sender. Closing is idempotent.
func (s *Sender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.ib.dropSender()
}

// Done returns a channel that is closed when the runtime goroutine has
// exited, whether by shutdown, implicit shutdown, or fault.
func (s *Sender) Done() <-chan struct{} {
	return s.ib.done
}
