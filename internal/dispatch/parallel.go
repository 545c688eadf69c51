package dispatch

import (
	"context"
	"sync"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// Parallel runs fn for every id with no concurrency limit and waits for all
// probes to settle.
//
// This is valid only for backends that guarantee uniform bounded latency
// regardless of concurrent load; with no queueing cost to amortize, maximal
// fan-out is strictly dominant and needs no coordination beyond fan-in.
//
// A cancelled ctx does not tear down probes that were already launched (they
// observe cancellation through their request context and settle as
// indeterminate); Parallel always waits for every goroutine before
// returning. Results are in input order.
func Parallel(ctx context.Context, ids []string, fn ProbeFunc) ([]probe.Result, error) {
	results := make([]probe.Result, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = fn(ctx, id)
		}(i, id)
	}
	wg.Wait()

	return results, ctx.Err()
}
