package results

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/observability"
)

// DefaultSaveTimeout bounds each save when the Recorder is built with a zero timeout.
const DefaultSaveTimeout = 5 * time.Second

// Recorder saves completed runs in the background. A failed save is logged
// and reported to the error hook; gameplay never waits on it.
type Recorder struct {
	store   Store
	logger  *zap.Logger
	timeout time.Duration
	onError func(*PersistenceError)
	wg      sync.WaitGroup
}

// NewRecorder creates a Recorder writing to store.
//
// Precondition: store and logger must be non-nil.
func NewRecorder(store Store, logger *zap.Logger, timeout time.Duration) *Recorder {
	if store == nil {
		panic("results.NewRecorder: store must not be nil")
	}
	if logger == nil {
		panic("results.NewRecorder: logger must not be nil")
	}
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &Recorder{store: store, logger: logger, timeout: timeout}
}

// OnError installs fn as the hook called for every failed save.
// It must be called before the first Record.
func (r *Recorder) OnError(fn func(*PersistenceError)) {
	r.onError = fn
}

// Store returns the underlying store.
func (r *Recorder) Store() Store { return r.store }

// Record saves run asynchronously and returns immediately.
func (r *Recorder) Record(run RunSummary) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		start := time.Now()
		if err := r.store.Save(ctx, run); err != nil {
			perr := &PersistenceError{RunID: run.ID, PlayerName: run.PlayerName, Err: err}
			r.logger.Error("saving completed run",
				observability.Run(run.ID),
				observability.Player(run.PlayerName),
				zap.Error(err),
			)
			if r.onError != nil {
				r.onError(perr)
			}
			return
		}
		r.logger.Info("completed run saved",
			observability.Run(run.ID),
			observability.Player(run.PlayerName),
			zap.Int64("duration_ms", run.DurationMs),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()
}

// Wait blocks until every pending save has finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Close waits for pending saves and closes the store.
func (r *Recorder) Close() error {
	r.Wait()
	return r.store.Close()
}
