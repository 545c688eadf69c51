package dispatch

import (
	"context"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// Sequential runs fn once per id with exactly one probe outstanding at any
// time: probe i+1 is not issued until probe i has finished.
//
// This is the policy for backends that can only serve one request at a time,
// where a second concurrent request is itself a contract violation rather
// than a performance tweak.
//
// If ctx is cancelled, no further probes are admitted; the remaining ids are
// recorded as indeterminate and ctx.Err() is returned alongside the partial
// results. Results are in input order.
func Sequential(ctx context.Context, ids []string, fn ProbeFunc) ([]probe.Result, error) {
	results := make([]probe.Result, len(ids))

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(ids); j++ {
				results[j] = indeterminate(ids[j], err)
			}
			return results, err
		}
		results[i] = fn(ctx, id)
	}

	return results, nil
}
