package probe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestProber_OnlineDevice verifies the happy path: a 2xx response with a
// JSON true body yields Online=true.
func TestProber_OnlineDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("true"))
	}))
	defer server.Close()

	prober := NewProber(server.URL, "", time.Second, testLogger())
	defer prober.Close()

	res := prober.Probe(context.Background(), "10")
	if !res.Online {
		t.Error("expected Online=true")
	}
	if res.Outcome != OutcomeOnline {
		t.Errorf("expected outcome %q, got %q", OutcomeOnline, res.Outcome)
	}
	if res.Err != nil {
		t.Errorf("unexpected diagnostic error: %v", res.Err)
	}
	if res.DeviceID != "10" {
		t.Errorf("expected device id 10, got %q", res.DeviceID)
	}
}

// TestProber_OfflineDevice verifies that a JSON false body yields a
// confirmed offline outcome, not an indeterminate one.
func TestProber_OfflineDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("false"))
	}))
	defer server.Close()

	prober := NewProber(server.URL, "", time.Second, testLogger())
	defer prober.Close()

	res := prober.Probe(context.Background(), "11")
	if res.Online {
		t.Error("expected Online=false")
	}
	if res.Outcome != OutcomeOffline {
		t.Errorf("expected outcome %q, got %q", OutcomeOffline, res.Outcome)
	}
	if res.Err != nil {
		t.Errorf("confirmed offline must not carry an error, got %v", res.Err)
	}
}

// TestProber_MalformedBody verifies that an unparseable body normalizes to
// offline-or-unknown with a diagnostic.
func TestProber_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"online": maybe}`))
	}))
	defer server.Close()

	prober := NewProber(server.URL, "", time.Second, testLogger())
	defer prober.Close()

	res := prober.Probe(context.Background(), "12")
	if res.Online {
		t.Error("expected Online=false")
	}
	if res.Outcome != OutcomeIndeterminate {
		t.Errorf("expected outcome %q, got %q", OutcomeIndeterminate, res.Outcome)
	}
	if res.Err == nil {
		t.Error("expected a diagnostic error for a malformed body")
	}
}

// TestProber_NonSuccessStatus verifies that non-2xx responses, including
// rate-limit rejections, normalize to offline-or-unknown.
func TestProber_NonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		prober := NewProber(server.URL, "", time.Second, testLogger())
		res := prober.Probe(context.Background(), "10")

		if res.Online {
			t.Errorf("status %d: expected Online=false", code)
		}
		if res.Outcome != OutcomeIndeterminate {
			t.Errorf("status %d: expected indeterminate outcome, got %q", code, res.Outcome)
		}
		if res.Err == nil {
			t.Errorf("status %d: expected a diagnostic error", code)
		}
		if res.StatusCode != code {
			t.Errorf("expected status code %d recorded, got %d", code, res.StatusCode)
		}

		prober.Close()
		server.Close()
	}
}

// TestProber_TransportFailure verifies that a connection failure normalizes
// to offline-or-unknown rather than surfacing an error.
func TestProber_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	prober := NewProber(server.URL, "", time.Second, testLogger())
	defer prober.Close()

	res := prober.Probe(context.Background(), "10")
	if res.Online {
		t.Error("expected Online=false")
	}
	if res.Outcome != OutcomeIndeterminate {
		t.Errorf("expected indeterminate outcome, got %q", res.Outcome)
	}
	if res.Err == nil {
		t.Error("expected a diagnostic error")
	}
	if res.StatusCode != 0 {
		t.Errorf("expected zero status code, got %d", res.StatusCode)
	}
}

// TestProber_Timeout verifies that a hung backend is cut off by the
// per-request timeout and normalized like any other failure.
func TestProber_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	prober := NewProber(server.URL, "", 50*time.Millisecond, testLogger())
	defer prober.Close()

	start := time.Now()
	res := prober.Probe(context.Background(), "10")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout not enforced, probe took %s", elapsed)
	}
	if res.Online || res.Outcome != OutcomeIndeterminate || res.Err == nil {
		t.Errorf("expected normalized timeout failure, got %+v", res)
	}
}

// TestProber_RequestShape verifies the GET path and bearer token header.
func TestProber_RequestShape(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		_, _ = w.Write([]byte("true"))
	}))
	defer server.Close()

	prober := NewProber(server.URL+"/limited/", "s3cret", time.Second, testLogger())
	defer prober.Close()

	prober.Probe(context.Background(), "42")

	if gotMethod != http.MethodGet {
		t.Errorf("expected GET, got %s", gotMethod)
	}
	if gotPath != "/limited/42" {
		t.Errorf("expected path /limited/42, got %q", gotPath)
	}
	if gotAuth != "Bearer s3cret" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
}

// TestProber_EscapesDeviceID verifies that a hostile id cannot break out of
// the final path segment.
func TestProber_EscapesDeviceID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("true"))
	}))
	defer server.Close()

	prober := NewProber(server.URL, "", time.Second, testLogger())
	defer prober.Close()

	prober.Probe(context.Background(), "a/b")

	if gotPath != "/a%2Fb" {
		t.Errorf("expected escaped path /a%%2Fb, got %q", gotPath)
	}
}
