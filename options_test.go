package devicepulse

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestNew_RequiresBaseURL verifies that a checker cannot be built without a
// backend route.
func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("expected error when no base URL is configured")
	}
}

// TestWithBaseURL_Validation verifies scheme checking.
func TestWithBaseURL_Validation(t *testing.T) {
	for _, bad := range []string{"not a url at all\x7f", "ftp://example.com", "example.com/status"} {
		if _, err := New(WithBaseURL(bad)); err == nil {
			t.Errorf("expected error for base URL %q", bad)
		}
	}

	if _, err := New(WithBaseURL("https://example.com/status")); err != nil {
		t.Errorf("unexpected error for a valid base URL: %v", err)
	}
}

// TestWithTimeout_Validation verifies rejection of non-positive timeouts.
func TestWithTimeout_Validation(t *testing.T) {
	for _, bad := range []time.Duration{0, -time.Second} {
		_, err := New(WithBaseURL("https://example.com"), WithTimeout(bad))
		if err == nil {
			t.Errorf("expected error for timeout %s", bad)
		}
	}
}

// TestWidthOptions_Validation verifies rejection of non-positive widths.
func TestWidthOptions_Validation(t *testing.T) {
	if _, err := New(WithBaseURL("https://example.com"), WithBatchWidth(0)); err == nil {
		t.Error("expected error for batch width 0")
	}
	if _, err := New(WithBaseURL("https://example.com"), WithWindowWidth(-1)); err == nil {
		t.Error("expected error for window width -1")
	}
}

// TestWithLogger_Validation verifies nil logger rejection.
func TestWithLogger_Validation(t *testing.T) {
	if _, err := New(WithBaseURL("https://example.com"), WithLogger(nil)); err == nil {
		t.Error("expected error for nil logger")
	}
}

// TestWithStatusCallback_NilIgnored verifies nil callbacks are a safe no-op.
func TestWithStatusCallback_NilIgnored(t *testing.T) {
	chk, err := New(
		WithBaseURL("https://example.com"),
		WithStatusCallback(nil),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chk.callbacks) != 0 {
		t.Errorf("expected no callbacks registered, got %d", len(chk.callbacks))
	}
}

// TestNew_Defaults verifies the documented defaults.
func TestNew_Defaults(t *testing.T) {
	chk, err := New(WithBaseURL("https://example.com"), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if chk.timeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", chk.timeout)
	}
	if chk.batchWidth != 5 {
		t.Errorf("expected default batch width 5, got %d", chk.batchWidth)
	}
	if chk.windowWidth != 5 {
		t.Errorf("expected default window width 5, got %d", chk.windowWidth)
	}
}
