// Package mockapi provides a reference status backend for local testing.
//
// This package is internal to devicepulse. It simulates the three backend
// contracts the admission coordinators are written against:
//
//   - GET /serial/{id}: serves one request at a time; a request arriving
//     while another is in flight is rejected with 429
//   - GET /parallel/{id}: serves any number of requests, each with the same
//     fixed delay
//   - GET /limited/{id}: serves up to Limit concurrent requests with a
//     jittered delay; requests above the cap are rejected with 429
//
// All endpoints require a shared-secret bearer token (403 otherwise) and
// answer from a static id -> online lookup table with a JSON boolean body.
// The `devicepulse mock` CLI command serves this handler; tests mount it on
// an httptest server with the delays tuned down.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"
)

// Defaults matching the contracts the coordinators are specified against.
const (
	DefaultLimit      = 5
	DefaultFixedDelay = 10 * time.Second
	DefaultMinDelay   = 1 * time.Second
	DefaultMaxDelay   = 3 * time.Second
)

// Table maps device ids to their online status.
type Table map[string]bool

// DefaultTable returns the lookup table the `mock` CLI command serves.
func DefaultTable() Table {
	return Table{
		"10": true,
		"11": false,
		"12": true,
		"13": true,
		"14": false,
		"15": true,
		"16": true,
		"17": false,
		"18": true,
		"19": true,
	}
}

// Config configures the mock backend.
type Config struct {
	// Token is the shared-secret bearer token. Empty disables auth.
	Token string

	// Table is the id -> online lookup table. Ids not in the table get 404.
	Table Table

	// Limit is the /limited concurrency cap. Defaults to 5.
	Limit int

	// FixedDelay is the /parallel per-request delay. Defaults to 10s.
	FixedDelay time.Duration

	// MinDelay and MaxDelay bound the jittered delay for /serial and
	// /limited. Default to 1s and 3s.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Logger receives request diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Backend is the mock status backend.
//
// Busy-state is tracked with bare atomics: the serial endpoint holds a
// single busy flag, the limited endpoint an in-flight counter checked
// against the cap. Both release in a defer so a panicking handler cannot
// leak a slot.
type Backend struct {
	cfg Config

	serialBusy atomic.Bool
	inFlight   atomic.Int64
}

// NewBackend creates a mock backend, applying defaults for zero fields.
func NewBackend(cfg Config) *Backend {
	if cfg.Limit == 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.FixedDelay == 0 {
		cfg.FixedDelay = DefaultFixedDelay
	}
	if cfg.MinDelay == 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Backend{cfg: cfg}
}

// Handler returns the backend's HTTP handler with the three contract routes.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /serial/{id}", b.handleSerial)
	mux.HandleFunc("GET /parallel/{id}", b.handleParallel)
	mux.HandleFunc("GET /limited/{id}", b.handleLimited)
	return mux
}

func (b *Backend) handleSerial(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if !b.serialBusy.CompareAndSwap(false, true) {
		b.cfg.Logger.Warn("serial endpoint rejected concurrent request", "device", r.PathValue("id"))
		http.Error(w, "busy", http.StatusTooManyRequests)
		return
	}
	defer b.serialBusy.Store(false)

	time.Sleep(b.jitter())
	b.respond(w, r)
}

func (b *Backend) handleParallel(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	time.Sleep(b.cfg.FixedDelay)
	b.respond(w, r)
}

func (b *Backend) handleLimited(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if b.inFlight.Add(1) > int64(b.cfg.Limit) {
		b.inFlight.Add(-1)
		b.cfg.Logger.Warn("limited endpoint rejected request above cap",
			"device", r.PathValue("id"),
			"limit", b.cfg.Limit,
		)
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}
	defer b.inFlight.Add(-1)

	time.Sleep(b.jitter())
	b.respond(w, r)
}

// respond answers from the lookup table with a JSON boolean body.
func (b *Backend) respond(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	online, ok := b.cfg.Table[id]
	if !ok {
		http.Error(w, "unknown device", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(online); err != nil {
		b.cfg.Logger.Error("failed to write response", "error", err)
	}
}

func (b *Backend) authorized(r *http.Request) bool {
	if b.cfg.Token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+b.cfg.Token
}

// jitter returns a random delay in [MinDelay, MaxDelay].
func (b *Backend) jitter() time.Duration {
	span := b.cfg.MaxDelay - b.cfg.MinDelay
	if span <= 0 {
		return b.cfg.MinDelay
	}
	return b.cfg.MinDelay + time.Duration(rand.Int63n(int64(span)+1))
}
