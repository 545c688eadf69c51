package devicepulse

import "fmt"

// Policy identifies the admission policy a check run uses to limit how many
// status requests may be outstanding at once.
//
// Each policy matches a distinct backend contract; the policy is chosen to
// fit a known contract, not discovered at runtime. The SDK exposes one entry
// point per policy ([Checker.CheckSequential], [Checker.CheckParallel],
// [Checker.CheckBatched], [Checker.CheckWindowed]); Policy exists so callers
// driven by configuration (the CLI, [Watcher]) can select one dynamically
// via [Checker.Check].
type Policy string

const (
	// PolicySequential issues exactly one request at a time, for backends
	// that reject any concurrent request.
	PolicySequential Policy = "sequential"

	// PolicyParallel issues all requests at once, for backends that
	// guarantee fixed latency regardless of load.
	PolicyParallel Policy = "parallel"

	// PolicyBatched issues requests in fixed-size cohorts, waiting for an
	// entire cohort to finish before starting the next.
	PolicyBatched Policy = "batched"

	// PolicyWindowed keeps a constant pool of requests in flight,
	// refilling a slot as soon as any request completes. It supersedes
	// PolicyBatched for the same capped-concurrency contract.
	PolicyWindowed Policy = "windowed"
)

// String returns the string representation of the policy.
// This implements the fmt.Stringer interface.
func (p Policy) String() string {
	return string(p)
}

// ParsePolicy converts a string into a [Policy].
//
// Returns an error if the string does not name a known policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySequential, PolicyParallel, PolicyBatched, PolicyWindowed:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown policy %q (expected sequential, parallel, batched, or windowed)", s)
	}
}
