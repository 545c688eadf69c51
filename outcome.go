package devicepulse

import "time"

// Outcome classifies the result of probing a single device.
//
// Outcome is a string type that can hold one of three predefined values:
// [OutcomeOnline], [OutcomeOffline], or [OutcomeIndeterminate]. Using a
// string type allows for easy JSON serialization and human-readable logging
// while maintaining type safety through the defined constants.
//
// The boolean view of a check (see [CheckResult.Online] and [Report])
// collapses [OutcomeIndeterminate] into offline. The Outcome field exists so
// that callers who need to distinguish "confirmed offline" from "could not
// determine" are not forced through that lossy collapse.
type Outcome string

const (
	// OutcomeOnline indicates the backend confirmed the device is online.
	OutcomeOnline Outcome = "online"

	// OutcomeOffline indicates the backend confirmed the device is offline.
	OutcomeOffline Outcome = "offline"

	// OutcomeIndeterminate indicates the status could not be determined:
	// a transport failure, a non-success response (including rate-limit
	// rejections), or an unparseable response body.
	OutcomeIndeterminate Outcome = "indeterminate"
)

// String returns the string representation of the outcome.
// This implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// CheckResult holds the full outcome of checking a single device.
//
// CheckResult is immutable after creation. The Online field is the boolean
// contract every coordinator exposes; the remaining fields carry the detail
// that the boolean view deliberately discards.
type CheckResult struct {
	// DeviceID is the identifier the check was issued for.
	DeviceID string

	// Online is the boolean status: true means confirmed online, false
	// means offline or unknown.
	Online bool

	// Outcome is the three-valued classification of this check.
	Outcome Outcome

	// StatusCode is the HTTP status code returned by the backend.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the time taken to complete the status request.
	Latency time.Duration

	// CheckedAt is the timestamp when the check was performed.
	CheckedAt time.Time

	// Err contains the error behind an indeterminate outcome, if any.
	// It is diagnostic only; errors never propagate out of a check.
	Err error
}
