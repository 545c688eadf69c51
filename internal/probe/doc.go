// Package probe issues single-device status queries for devicepulse.
//
// This package is internal to devicepulse and contains the one fetch
// primitive every admission coordinator shares:
//
//   - [Client]: HTTP client wrapper with per-request timeouts and size limits
//   - [Prober]: issues one GET per device id and interprets the JSON boolean body
//   - [Result]: the normalized outcome of a single probe
//
// The probe boundary is where all errors stop. A [Result] is always produced,
// with failures collapsed to offline-or-unknown and recorded as diagnostics.
//
// Users of the devicepulse library should not need to interact with this
// package directly.
package probe
