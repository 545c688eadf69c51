package devicepulse

import (
	"context"
	"sync"
	"time"
)

// Watcher re-runs a device check at a fixed interval and emits every
// completed [CheckResult] on a channel.
//
// A Watcher runs the device set immediately on [Watcher.Start], then once
// per interval, using whichever admission policy it was built with. Results
// from each run are pushed to the channel returned by [Watcher.Results];
// consumers should read until the channel closes.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Watcher struct {
	checker  *Checker
	ids      []string
	policy   Policy
	interval time.Duration
	results  chan CheckResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once
}

// NewWatcher creates a [Watcher] that checks ids under policy every
// interval.
//
// The watcher must be started with [Watcher.Start] and stopped with
// [Watcher.Stop]. The ids slice is copied; later mutation by the caller
// does not affect the watcher.
func NewWatcher(checker *Checker, ids []string, policy Policy, interval time.Duration) *Watcher {
	idsCopy := make([]string, len(ids))
	copy(idsCopy, ids)

	return &Watcher{
		checker:  checker,
		ids:      idsCopy,
		policy:   policy,
		interval: interval,
		results:  make(chan CheckResult, len(ids)),
	}
}

// Results returns a receive-only channel that emits [CheckResult] values.
//
// The channel is closed when the watcher stops. Consumers should read from
// this channel until it is closed to receive all results.
func (w *Watcher) Results() <-chan CheckResult {
	return w.results
}

// Start begins the watch loop in a background goroutine.
//
// Start is non-blocking and returns immediately. The watcher checks all
// ids at once, then once per interval, until [Watcher.Stop] is called or
// the context is cancelled.
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	w.ctx, w.cancel = context.WithCancel(ctx)
	runCtx := w.ctx // capture under lock to avoid race
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		defer w.closeOnce.Do(func() { close(w.results) })

		w.runOnce(runCtx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				w.runOnce(runCtx)
			}
		}
	}()
}

// Stop halts the watcher and waits for the in-flight run to complete.
//
// Stop cancels the watcher's context and blocks until the watch loop exits
// and the results channel is closed. Stop is idempotent and safe to call
// multiple times. Calling Stop before Start is a safe no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		if w.cancel != nil {
			w.cancel()
		}
	}
	w.mu.Unlock()

	w.wg.Wait()

	// ensure channel is closed even if Start() was never called
	w.closeOnce.Do(func() { close(w.results) })
}

// runOnce performs one full check and emits its results.
func (w *Watcher) runOnce(ctx context.Context) {
	report, err := w.checker.Check(ctx, w.policy, w.ids)
	if err != nil {
		// cancellation mid-run; the loop exits on the next select
		return
	}

	for _, res := range report.Results() {
		select {
		case w.results <- res:
		case <-ctx.Done():
			return
		}
	}
}
