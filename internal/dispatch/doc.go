// Package dispatch implements the admission coordinators for devicepulse.
//
// A coordinator runs one probe per device id under a concurrency contract:
//
//   - [Sequential]: exactly one probe outstanding at a time, input order
//   - [Parallel]: every probe launched at once, no admission gate
//   - [Batched]: fixed-size cohorts; a cohort fully drains before the next starts
//   - [Windowed]: a sliding pool; a freed slot is refilled immediately
//
// All four return one result per input id, in input position order. Each
// launched goroutine writes only its own slice element, so result collection
// needs no lock. Ordering for callers is applied by the result assembler in
// the root package, not here.
//
// Users of the devicepulse library should not need to interact with this
// package directly.
package dispatch
