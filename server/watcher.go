package server

import (
	"context"

	"github.com/lodestoneworks/gameserver/internal/logging"
)

// watcher reports how the runtime goroutine ended. It is armed "abnormal"
// when the goroutine starts and marked natural immediately before a normal
// return, so the deferred report distinguishes a clean stop from a panic
// unwinding the stack. The runtime never recovers faults; this guard only
// makes them observable.
type watcher struct {
	log     logging.Logger
	metrics MetricsRecorder
	natural bool
}

func (w *watcher) report() {
	w.metrics.RecordExit(w.natural)
	if w.natural {
		w.log.Info(context.Background(), "server runtime stopped cleanly")
	} else {
		w.log.Error(context.Background(), "server runtime exited abnormally")
	}
}
