package devicepulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/devicepulse/internal/dispatch"
	"github.com/jpalmerr/devicepulse/internal/probe"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultBatchWidth  = 5
	defaultWindowWidth = 5
)

// Checker resolves the online status of device sets against a remote
// status backend.
//
// A Checker is created with [New] and functional options, and exposes one
// entry point per admission policy. The policy is baked into the choice of
// entry point, matching a known backend contract:
//
//	chk, err := devicepulse.New(
//	    devicepulse.WithBaseURL("https://status.example.com/limited"),
//	    devicepulse.WithToken(token),
//	)
//	if err != nil {
//	    slog.Error("failed to create checker", "error", err)
//	    os.Exit(1)
//	}
//	defer chk.Close()
//
//	report, err := chk.CheckWindowed(ctx, ids)
//
// Every entry point returns a total [Report]: one entry per input id, with
// any failure collapsed to offline-or-unknown rather than surfaced as an
// error. The only error an entry point returns is context cancellation.
//
// A Checker is safe for concurrent use; each call owns its own result state.
type Checker struct {
	baseURL     string
	token       string
	timeout     time.Duration
	batchWidth  int
	windowWidth int
	logger      *slog.Logger
	callbacks   []func(CheckResult)
	prober      *probe.Prober
}

// New creates a [Checker] with the given options.
//
// [WithBaseURL] is required. Other options have sensible defaults:
//   - Request timeout: 10 seconds
//   - Batch width: 5
//   - Window width: 5
//
// Returns an error if no base URL is configured or if any option is invalid.
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		timeout:     defaultTimeout,
		batchWidth:  defaultBatchWidth,
		windowWidth: defaultWindowWidth,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.baseURL == "" {
		return nil, errors.New("a base URL is required")
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		baseURL:     cfg.baseURL,
		token:       cfg.token,
		timeout:     cfg.timeout,
		batchWidth:  cfg.batchWidth,
		windowWidth: cfg.windowWidth,
		logger:      logger,
		callbacks:   cfg.callbacks,
		prober:      probe.NewProber(cfg.baseURL, cfg.token, cfg.timeout, logger),
	}, nil
}

// CheckSequential checks every id strictly one at a time, in input order.
//
// Use this against backends that serve a single request at a time and
// reject any concurrent one. Request i+1 is not issued until request i has
// settled.
func (c *Checker) CheckSequential(ctx context.Context, ids []string) (*Report, error) {
	return c.run(ctx, PolicySequential, ids, func(ctx context.Context, fn dispatch.ProbeFunc) ([]probe.Result, error) {
		return dispatch.Sequential(ctx, ids, fn)
	})
}

// CheckParallel checks every id with no concurrency limit.
//
// Use this only against backends that guarantee uniform latency regardless
// of load; all requests are launched at once and the call waits for all of
// them to settle.
func (c *Checker) CheckParallel(ctx context.Context, ids []string) (*Report, error) {
	return c.run(ctx, PolicyParallel, ids, func(ctx context.Context, fn dispatch.ProbeFunc) ([]probe.Result, error) {
		return dispatch.Parallel(ctx, ids, fn)
	})
}

// CheckBatched checks ids in fixed-size cohorts (width 5 by default, see
// [WithBatchWidth]), waiting for an entire cohort to finish before starting
// the next.
//
// The cohort barrier means a slow request idles the rest of its cohort's
// slots; [Checker.CheckWindowed] avoids that under the same cap.
func (c *Checker) CheckBatched(ctx context.Context, ids []string) (*Report, error) {
	return c.run(ctx, PolicyBatched, ids, func(ctx context.Context, fn dispatch.ProbeFunc) ([]probe.Result, error) {
		return dispatch.Batched(ctx, ids, c.batchWidth, fn)
	})
}

// CheckWindowed checks ids with a sliding pool of at most 5 requests in
// flight (see [WithWindowWidth]): as soon as any request completes, the next
// queued id is admitted immediately.
//
// This is the preferred policy for capped backends; wall-clock time for N
// uniformly-delayed requests approaches ceil(N/width) request-times rather
// than being gated on each cohort's slowest member.
func (c *Checker) CheckWindowed(ctx context.Context, ids []string) (*Report, error) {
	return c.run(ctx, PolicyWindowed, ids, func(ctx context.Context, fn dispatch.ProbeFunc) ([]probe.Result, error) {
		return dispatch.Windowed(ctx, ids, c.windowWidth, fn)
	})
}

// Check runs the entry point selected by policy.
//
// This is a convenience for callers driven by configuration (the CLI, a
// [Watcher]); library callers typically use the policy-specific entry
// points directly.
func (c *Checker) Check(ctx context.Context, policy Policy, ids []string) (*Report, error) {
	switch policy {
	case PolicySequential:
		return c.CheckSequential(ctx, ids)
	case PolicyParallel:
		return c.CheckParallel(ctx, ids)
	case PolicyBatched:
		return c.CheckBatched(ctx, ids)
	case PolicyWindowed:
		return c.CheckWindowed(ctx, ids)
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}

// Close releases the checker's idle backend connections.
//
// Safe to call multiple times. The checker remains usable after Close; new
// connections are established as needed.
func (c *Checker) Close() {
	c.prober.Close()
}

// run drives one coordinator invocation and assembles its report.
func (c *Checker) run(ctx context.Context, policy Policy, ids []string,
	coordinate func(context.Context, dispatch.ProbeFunc) ([]probe.Result, error)) (*Report, error) {

	runID := uuid.NewString()
	logger := c.logger.With("run_id", runID, "policy", policy.String())
	logger.Debug("check run starting", "device_count", len(ids))

	start := time.Now()
	results, err := coordinate(ctx, c.probeFunc(logger))
	if err != nil {
		logger.Warn("check run cancelled", "error", err.Error())
		return nil, err
	}

	report := assemble(runID, results)

	online := 0
	for _, e := range report.entries {
		if e.Online {
			online++
		}
	}
	logger.Info("check run completed",
		"device_count", len(ids),
		"online", online,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}

// probeFunc wraps the prober so every completion also feeds the registered
// status callbacks. Coordinators may invoke the returned function from many
// goroutines at once, so callbacks receive results concurrently.
func (c *Checker) probeFunc(logger *slog.Logger) dispatch.ProbeFunc {
	return func(ctx context.Context, id string) probe.Result {
		res := c.prober.Probe(ctx, id)
		if len(c.callbacks) > 0 {
			public := CheckResult{
				DeviceID:   res.DeviceID,
				Online:     res.Online,
				Outcome:    Outcome(res.Outcome),
				StatusCode: res.StatusCode,
				Latency:    res.Latency,
				CheckedAt:  res.CheckedAt,
				Err:        res.Err,
			}
			for _, cb := range c.callbacks {
				invokeCallbackSafe(cb, public, logger)
			}
		}
		return res
	}
}

// invokeCallbackSafe calls a status callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(CheckResult), result CheckResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("status callback panicked",
				"panic", r,
				"device", result.DeviceID,
			)
		}
	}()
	cb(result)
}
