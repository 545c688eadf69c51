package dispatch

import (
	"context"
	"sync"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// Batched runs fn in consecutive cohorts of width ids (the last cohort may
// be smaller). All probes within a cohort run concurrently; the next cohort
// does not start until the entire previous cohort has finished.
//
// The cohort barrier means a slow probe idles the rest of its cohort's
// freed slots until it completes. [Windowed] removes that head-of-line
// blocking under the same concurrency cap; Batched is retained as the
// simpler of the two valid designs for the capped contract.
//
// If ctx is cancelled, no further cohorts are admitted; remaining ids are
// recorded as indeterminate and ctx.Err() is returned alongside the partial
// results. Results are in input order.
func Batched(ctx context.Context, ids []string, width int, fn ProbeFunc) ([]probe.Result, error) {
	results := make([]probe.Result, len(ids))

	for start := 0; start < len(ids); start += width {
		if err := ctx.Err(); err != nil {
			for j := start; j < len(ids); j++ {
				results[j] = indeterminate(ids[j], err)
			}
			return results, err
		}

		end := start + width
		if end > len(ids) {
			end = len(ids)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = fn(ctx, ids[i])
			}(i)
		}
		wg.Wait()
	}

	return results, nil
}
