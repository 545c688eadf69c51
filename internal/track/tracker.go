// Package track keeps the latest known status per device and fans updates
// out to subscribers.
//
// This package is internal to devicepulse. It backs the CLI's watch mode:
// a [Tracker] receives every [devicepulse.CheckResult] a watcher emits,
// remembers the most recent one per device, and notifies subscribers so
// transitions can be rendered as they happen.
package track

import (
	"sort"
	"sync"

	"github.com/jpalmerr/devicepulse"
)

// subscriberBuffer is the channel buffer per subscriber. Updates to a
// subscriber whose buffer is full are dropped rather than blocking the
// update path.
const subscriberBuffer = 100

// Tracker is a thread-safe latest-status store with pub/sub.
//
// Results are keyed by device id; a new result replaces the previous one.
// Subscribers receive every update on a buffered channel.
type Tracker struct {
	mu       sync.RWMutex
	statuses map[string]devicepulse.CheckResult

	subMu       sync.RWMutex
	subscribers map[chan devicepulse.CheckResult]struct{}
}

// NewTracker creates an empty [Tracker], immediately ready for use.
func NewTracker() *Tracker {
	return &Tracker{
		statuses:    make(map[string]devicepulse.CheckResult),
		subscribers: make(map[chan devicepulse.CheckResult]struct{}),
	}
}

// Update stores a result and notifies all subscribers.
//
// The result is keyed by its DeviceID; subsequent updates for the same
// device replace the previous value.
func (t *Tracker) Update(result devicepulse.CheckResult) {
	t.mu.Lock()
	t.statuses[result.DeviceID] = result
	t.mu.Unlock()

	t.notifySubscribers(result)
}

// Latest returns the most recent result for a device id. The second return
// value is false if the device has never been seen.
func (t *Tracker) Latest(id string) (devicepulse.CheckResult, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	res, ok := t.statuses[id]
	return res, ok
}

// All returns a snapshot of the latest result per device, sorted by device
// id for stable rendering.
//
// The returned slice is a copy; modifications do not affect the tracker.
func (t *Tracker) All() []devicepulse.CheckResult {
	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]devicepulse.CheckResult, 0, len(t.statuses))
	for _, res := range t.statuses {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DeviceID < results[j].DeviceID
	})
	return results
}

// Subscribe creates a new subscription and returns a channel for receiving
// updates.
//
// The returned channel is buffered; if the buffer fills (slow consumer),
// new updates are dropped for this subscriber. Caller must call
// [Tracker.Unsubscribe] when done to prevent resource leaks.
func (t *Tracker) Subscribe() <-chan devicepulse.CheckResult {
	ch := make(chan devicepulse.CheckResult, subscriberBuffer)

	t.subMu.Lock()
	t.subscribers[ch] = struct{}{}
	t.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (t *Tracker) Unsubscribe(ch <-chan devicepulse.CheckResult) {
	t.subMu.Lock()
	defer t.subMu.Unlock()

	for subCh := range t.subscribers {
		if subCh == ch {
			delete(t.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the result to all active subscribers without
// blocking the update path.
func (t *Tracker) notifySubscribers(result devicepulse.CheckResult) {
	t.subMu.RLock()
	defer t.subMu.RUnlock()

	for ch := range t.subscribers {
		select {
		case ch <- result:
		default:
			// subscriber is slow, drop the message
		}
	}
}
