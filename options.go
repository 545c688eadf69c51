package devicepulse

import (
	"errors"
	"log/slog"
	"net/url"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	baseURL     string
	token       string
	timeout     time.Duration
	batchWidth  int
	windowWidth int
	logger      *slog.Logger
	callbacks   []func(CheckResult)
}

// Option is a function that configures a [Checker] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithBaseURL], [WithToken], [WithTimeout],
// [WithBatchWidth], [WithWindowWidth], [WithLogger], [WithStatusCallback].
type Option func(*checkerConfig) error

// WithBaseURL sets the status backend route, e.g.
// "https://status.example.com/limited". Device ids are appended as the
// final path segment of each query.
//
// A base URL is required; [New] fails without one. The URL must have an
// http or https scheme.
func WithBaseURL(rawURL string) Option {
	return func(cfg *checkerConfig) error {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return errors.New("invalid base URL: " + err.Error())
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.New("base URL must have an http:// or https:// scheme")
		}
		cfg.baseURL = rawURL
		return nil
	}
}

// WithToken sets the bearer token attached to every status query as an
// Authorization header.
//
// The token is fixed for the checker's lifetime. An empty token means no
// Authorization header is sent.
func WithToken(token string) Option {
	return func(cfg *checkerConfig) error {
		cfg.token = token
		return nil
	}
}

// WithTimeout sets the per-request timeout for status queries.
//
// No coordinator imposes its own timeout beyond this: a hung request blocks
// only its own slot until the transport gives up. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithBatchWidth sets the cohort size for [Checker.CheckBatched].
//
// Defaults to 5, matching the capped backend contract. Returns an error if
// the value is zero or negative.
func WithBatchWidth(n int) Option {
	return func(cfg *checkerConfig) error {
		if n <= 0 {
			return errors.New("batch width must be positive")
		}
		cfg.batchWidth = n
		return nil
	}
}

// WithWindowWidth sets the pool size for [Checker.CheckWindowed].
//
// Defaults to 5, matching the capped backend contract. Returns an error if
// the value is zero or negative.
func WithWindowWidth(n int) Option {
	return func(cfg *checkerConfig) error {
		if n <= 0 {
			return errors.New("window width must be positive")
		}
		cfg.windowWidth = n
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the checker.
//
// Probe diagnostics (failed or rejected queries) are logged at Warn,
// happy-path completions at Debug, and run summaries at Info. If not
// specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStatusCallback registers a function called with every completed
// [CheckResult], including normalized failures.
//
// Multiple callbacks may be registered; they run in registration order per
// result. Under the concurrent policies callbacks are invoked from probe
// goroutines, so they must be safe for concurrent use and must not block.
// Panics within callbacks are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithStatusCallback(cb func(CheckResult)) Option {
	return func(cfg *checkerConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}
