package dispatch

import (
	"context"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// ProbeFunc is the fetch primitive a coordinator drives.
//
// A ProbeFunc must be total: it always returns a [probe.Result] and never
// panics or blocks beyond its own request timeout. [probe.Prober.Probe]
// satisfies this; tests substitute instrumented fakes.
type ProbeFunc func(ctx context.Context, id string) probe.Result

// indeterminate builds the result recorded for an id whose probe was never
// admitted because the run's context was cancelled first.
func indeterminate(id string, err error) probe.Result {
	return probe.Result{
		DeviceID: id,
		Outcome:  probe.OutcomeIndeterminate,
		Err:      err,
	}
}
