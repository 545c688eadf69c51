package devicepulse

import (
	"context"
	"testing"
	"time"

	"github.com/jpalmerr/devicepulse/internal/mockapi"
)

// TestWatcher_StopBeforeStart verifies that calling Stop() on a watcher
// that was never started does not panic and is a safe no-op.
func TestWatcher_StopBeforeStart(t *testing.T) {
	server := startMockBackend(t, mockapi.Table{"10": true})
	chk := newTestChecker(t, server.URL+"/limited")

	watcher := NewWatcher(chk, []string{"10"}, PolicyWindowed, time.Minute)

	// this must not panic
	watcher.Stop()
}

// TestWatcher_StopTwice verifies that Stop() is idempotent and can be
// called multiple times without panic or deadlock.
func TestWatcher_StopTwice(t *testing.T) {
	server := startMockBackend(t, mockapi.Table{"10": true})
	chk := newTestChecker(t, server.URL+"/limited")

	watcher := NewWatcher(chk, []string{"10"}, PolicyWindowed, time.Minute)
	watcher.Start(context.Background())

	// drain results so the watch loop cannot block on the channel
	go func() {
		for range watcher.Results() {
		}
	}()

	watcher.Stop()
	watcher.Stop()
}

// TestWatcher_StartTwice verifies that Start() is idempotent.
func TestWatcher_StartTwice(t *testing.T) {
	server := startMockBackend(t, mockapi.Table{"10": true})
	chk := newTestChecker(t, server.URL+"/limited")

	watcher := NewWatcher(chk, []string{"10"}, PolicyWindowed, time.Minute)
	watcher.Start(context.Background())
	watcher.Start(context.Background()) // second call should be no-op

	res, ok := <-watcher.Results()
	if !ok {
		t.Fatal("expected at least one result from the immediate run")
	}
	if res.DeviceID != "10" || !res.Online {
		t.Errorf("unexpected result %+v", res)
	}

	// a second immediate run would indicate a duplicated watch loop
	select {
	case res := <-watcher.Results():
		t.Errorf("unexpected extra result %+v before the first interval", res)
	case <-time.After(50 * time.Millisecond):
	}

	watcher.Stop()
}

// TestWatcher_EmitsEveryDevice verifies the immediate run emits one result
// per device and that the channel closes on Stop.
func TestWatcher_EmitsEveryDevice(t *testing.T) {
	table := mockapi.Table{"10": true, "11": false, "12": true}
	server := startMockBackend(t, table)
	chk := newTestChecker(t, server.URL+"/limited")

	watcher := NewWatcher(chk, []string{"10", "11", "12"}, PolicyWindowed, time.Minute)
	watcher.Start(context.Background())

	seen := map[string]bool{}
	for len(seen) < len(table) {
		select {
		case res, ok := <-watcher.Results():
			if !ok {
				t.Fatal("results channel closed before all devices were seen")
			}
			seen[res.DeviceID] = res.Online
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out; saw %v", seen)
		}
	}

	for id, want := range table {
		if seen[id] != want {
			t.Errorf("device %s: expected online=%t, got %t", id, want, seen[id])
		}
	}

	watcher.Stop()

	select {
	case _, ok := <-watcher.Results():
		if ok {
			t.Error("expected results channel to be closed after Stop()")
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for results channel to close")
	}
}

// TestWatcher_RechecksAtInterval verifies the ticker re-runs the check.
func TestWatcher_RechecksAtInterval(t *testing.T) {
	server := startMockBackend(t, mockapi.Table{"10": true})
	chk := newTestChecker(t, server.URL+"/limited")

	watcher := NewWatcher(chk, []string{"10"}, PolicyWindowed, 20*time.Millisecond)
	watcher.Start(context.Background())
	defer watcher.Stop()

	// immediate run plus at least one interval run
	for i := 0; i < 2; i++ {
		select {
		case _, ok := <-watcher.Results():
			if !ok {
				t.Fatal("results channel closed early")
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for run %d", i+1)
		}
	}
}

// TestWatcher_ContextCancellation verifies that cancelling the parent
// context shuts the watcher down and closes the channel.
func TestWatcher_ContextCancellation(t *testing.T) {
	server := startMockBackend(t, mockapi.Table{"10": true})
	chk := newTestChecker(t, server.URL+"/limited")

	ctx, cancel := context.WithCancel(context.Background())
	watcher := NewWatcher(chk, []string{"10"}, PolicyWindowed, time.Minute)
	watcher.Start(ctx)

	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-watcher.Results():
			if !ok {
				return // closed cleanly
			}
		case <-deadline:
			t.Fatal("timeout waiting for results channel to close after cancellation")
		}
	}
}
