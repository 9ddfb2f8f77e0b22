package batch

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"companyfetch/pkg/client"
	"companyfetch/pkg/model"
)

// DefaultBatchSize is the group size used when the caller passes zero.
const DefaultBatchSize = 100

var (
	batchGroupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "companyfetch_batch_groups_total",
		Help: "Total batch groups processed",
	})

	batchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companyfetch_batch_items_total",
		Help: "Total items processed by result tag",
	}, []string{"result"})

	batchGroupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "companyfetch_batch_group_duration_seconds",
		Help:    "Wall time per batch group",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)

// PerItem fetches one identifier. It must return a value for every call;
// failures are carried inside the outcome, never as a panic or error.
type PerItem func(ctx context.Context, id model.ID) client.Outcome

// GroupHook post-processes one completed group before accumulation.
// Returning nil drops the group's results entirely; any other return value
// is spliced into the accumulator in place of the group. A per-group
// summary is a one-element slice. The hook receives results in input order.
type GroupHook func(group []client.Outcome) []client.Outcome

// Partition splits ids into contiguous groups of size; the last group may
// be shorter. A size of zero or less falls back to DefaultBatchSize.
func Partition(ids []model.ID, size int) [][]model.ID {
	if size <= 0 {
		size = DefaultBatchSize
	}

	groups := make([][]model.ID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		groups = append(groups, ids[start:end])
	}
	return groups
}

// RunBatches fetches every identifier and returns one outcome per input,
// in input order. Items within a group complete in any order; results are
// written back by position, so output[i] always corresponds to input[i]
// (before hook splicing). A single item's failure never aborts the group
// or the run.
//
// Cancellation is observed per item and at group boundaries: on a
// cancelled context RunBatches stops scheduling work and returns the
// outcomes accumulated so far together with ctx.Err(). Completed groups
// are not persisted anywhere by this package; a caller that needs
// interruption safety must persist incrementally from the hook.
func RunBatches(ctx context.Context, ids []model.ID, perItem PerItem, batchSize int, hook GroupHook) ([]client.Outcome, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	groups := Partition(ids, batchSize)

	log.Info().
		Int("identifiers", len(ids)).
		Int("batch_size", batchSize).
		Int("groups", len(groups)).
		Msg("Starting batch fetch")

	start := time.Now()
	acc := make([]client.Outcome, 0, len(ids))
	failures := 0

	for gi, group := range groups {
		if err := ctx.Err(); err != nil {
			log.Warn().
				Int("completed_groups", gi).
				Int("accumulated", len(acc)).
				Msg("Batch fetch cancelled between groups")
			return acc, err
		}

		groupStart := time.Now()
		results := runGroup(ctx, group, perItem)
		batchGroupDuration.Observe(time.Since(groupStart).Seconds())
		batchGroupsTotal.Inc()

		for _, out := range results {
			if out.Success() {
				batchItemsTotal.WithLabelValues("success").Inc()
			} else {
				batchItemsTotal.WithLabelValues("failure").Inc()
				failures++
			}
		}

		if hook != nil {
			results = hook(results)
			if results == nil {
				log.Debug().
					Int("group", gi+1).
					Msg("Group hook dropped results")
				continue
			}
		}
		acc = append(acc, results...)

		log.Info().
			Int("group", gi+1).
			Int("groups", len(groups)).
			Int("accumulated", len(acc)).
			Dur("group_duration", time.Since(groupStart)).
			Msg("Batch group complete")

		if err := ctx.Err(); err != nil {
			log.Warn().
				Int("completed_groups", gi+1).
				Int("accumulated", len(acc)).
				Msg("Batch fetch cancelled mid-run")
			return acc, err
		}
	}

	log.Info().
		Int("identifiers", len(ids)).
		Int("results", len(acc)).
		Int("failures", failures).
		Dur("duration", time.Since(start)).
		Msg("Batch fetch complete")

	return acc, nil
}

// runGroup invokes perItem concurrently for every member of one group and
// waits for all of them. Results land at their input position regardless of
// completion order.
func runGroup(ctx context.Context, group []model.ID, perItem PerItem) []client.Outcome {
	results := make([]client.Outcome, len(group))

	var wg sync.WaitGroup
	for i, id := range group {
		wg.Add(1)
		go func(i int, id model.ID) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[i] = client.Failure(id, client.KindUnexpected, "run cancelled: "+ctx.Err().Error(), ctx.Err())
				return
			default:
			}

			results[i] = perItem(ctx, id)
		}(i, id)
	}
	wg.Wait()

	return results
}
