package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Outcome classification for a single probe.
//
// This is the probe-internal version as plain strings; the root package
// re-exports a typed view, avoiding a dependency from internal code on the
// public API.
const (
	OutcomeOnline        = "online"
	OutcomeOffline       = "offline"
	OutcomeIndeterminate = "indeterminate"
)

// Result holds the outcome of probing a single device.
//
// Result never carries a caller-visible failure: every error mode is
// normalized into Online=false with an indeterminate Outcome and the
// underlying error preserved in Err for diagnostics.
type Result struct {
	// DeviceID is the identifier the probe was issued for.
	DeviceID string

	// Online is true only when the backend confirmed the device online.
	Online bool

	// Outcome is "online", "offline", or "indeterminate".
	Outcome string

	// StatusCode is the HTTP status code, zero if none was received.
	StatusCode int

	// Latency is the time taken by the status request.
	Latency time.Duration

	// CheckedAt is when the probe completed.
	CheckedAt time.Time

	// Err is the error behind an indeterminate outcome, nil otherwise.
	Err error
}

// Prober issues one status query per device against a fixed backend route.
//
// Prober is the single fetch primitive shared by every coordinator. Its
// contract is total: [Prober.Probe] always returns a Result and never an
// error. Transport failures, non-success responses (including rate-limit
// rejections), and malformed bodies all collapse to Online=false; each such
// case is logged at Warn level for operator visibility.
type Prober struct {
	client  *Client
	baseURL string
	headers map[string]string
	timeout time.Duration
	logger  *slog.Logger
}

// NewProber creates a [Prober] that queries baseURL/{id}.
//
// If token is non-empty, it is attached to every request as a bearer
// Authorization header. The timeout applies per request.
func NewProber(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Prober {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Prober{
		client:  NewClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
		timeout: timeout,
		logger:  logger,
	}
}

// Probe issues one status query for id and interprets the response.
//
// The happy path is a 2xx response whose body is a single JSON boolean.
// Everything else - transport error, timeout, non-2xx status, unparseable
// body - yields Online=false with an indeterminate Outcome. Probe never
// returns an error; Result.Err records the diagnostic.
func (p *Prober) Probe(ctx context.Context, id string) Result {
	resp := p.client.Get(ctx, p.baseURL+"/"+url.PathEscape(id), p.headers, p.timeout)

	result := Result{
		DeviceID:   id,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		CheckedAt:  time.Now(),
	}

	switch {
	case resp.Error != nil:
		result.Outcome = OutcomeIndeterminate
		result.Err = resp.Error
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		result.Outcome = OutcomeIndeterminate
		result.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	default:
		var online bool
		if err := json.Unmarshal(resp.Body, &online); err != nil {
			result.Outcome = OutcomeIndeterminate
			result.Err = fmt.Errorf("malformed status body: %w", err)
		} else if online {
			result.Online = true
			result.Outcome = OutcomeOnline
		} else {
			result.Outcome = OutcomeOffline
		}
	}

	if result.Err != nil {
		attrs := []any{
			"device", id,
			"error", result.Err.Error(),
			"latency_ms", result.Latency.Milliseconds(),
		}
		if result.StatusCode != 0 {
			attrs = append(attrs, "status_code", result.StatusCode)
		}
		if result.StatusCode == http.StatusTooManyRequests {
			// a 429 means the admission policy disagrees with the backend's cap
			p.logger.Warn("status query rejected by backend rate limit", attrs...)
		} else {
			p.logger.Warn("status query failed", attrs...)
		}
	} else {
		p.logger.Debug("status query completed",
			"device", id,
			"outcome", result.Outcome,
			"latency_ms", result.Latency.Milliseconds(),
		)
	}

	return result
}

// Close releases the prober's idle connections.
func (p *Prober) Close() {
	p.client.Close()
}
