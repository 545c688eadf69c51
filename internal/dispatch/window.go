package dispatch

import (
	"context"

	"github.com/remeh/sizedwaitgroup"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// Windowed runs fn with a sliding pool of at most width probes in flight.
// Unlike [Batched], a completed probe frees its slot immediately: the next
// queued id is admitted as soon as any probe finishes, so throughput is
// bounded only by the pool width, never by the slowest member of an
// arbitrary cohort.
//
// Admission is serialized by the sized wait group's internal semaphore: the
// "is there a free slot / claim the next id" step is a single blocking
// acquire, so the pool can neither exceed width nor claim an id twice, even
// with every completion racing to refill.
//
// If ctx is cancelled while waiting for a slot, no further probes are
// admitted; remaining ids are recorded as indeterminate, already-launched
// probes are drained, and ctx.Err() is returned alongside the partial
// results. Results are in input order.
func Windowed(ctx context.Context, ids []string, width int, fn ProbeFunc) ([]probe.Result, error) {
	results := make([]probe.Result, len(ids))

	swg := sizedwaitgroup.New(width)
	var ctxErr error
	for i, id := range ids {
		if err := swg.AddWithContext(ctx); err != nil {
			ctxErr = err
			for j := i; j < len(ids); j++ {
				results[j] = indeterminate(ids[j], err)
			}
			break
		}
		go func(i int, id string) {
			defer swg.Done()
			results[i] = fn(ctx, id)
		}(i, id)
	}
	swg.Wait()

	return results, ctxErr
}
