package scenario

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sigbench/internal/core"
)

// cycleBatch is how many contiguous cycle indices one queue item
// covers. Batching keeps channel traffic out of the hot path while the
// shared queue still rebalances load: a worker that finishes early
// simply pulls the next pending batch.
const cycleBatch = 256

// MultiCore runs full cycles on a pool of workers fed from one shared
// task queue. Every worker is seeded with one batch of its own, then
// competes for queued batches, so idle workers always take pending
// work and each active worker completes at least one cycle. The only
// shared mutable state is the atomic counters; per-worker tallies are
// single-owner.
type MultiCore struct {
	// Workers is the pool size; <= 0 selects one per available core.
	Workers int
}

func (m *MultiCore) Name() string { return "multi-core" }

func (m *MultiCore) Run(ctx context.Context, signer core.Signer, counters *core.OpCounters, stop *core.StopFlag) (*Result, error) {
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tasks := make(chan uint64, workers*2)
	perWorker := make([]core.Counts, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("feeder panic: %v", r)
			}
		}()
		defer close(tasks)
		// Batches 0..workers-1 are the workers' seed batches.
		for b := uint64(workers); !stop.Stopped(); b++ {
			select {
			case tasks <- b:
			case <-gctx.Done():
				// All workers gone or the run was cancelled; either
				// way there is nobody left to feed.
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d panic: %v", w, r)
				}
			}()
			runner := core.NewCycleRunner(signer, counters)
			runner.Local = &perWorker[w]

			if err := runBatch(runner, uint64(w), stop); err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			for b := range tasks {
				// After stop, keep draining so the feeder's pending
				// send completes, but execute nothing.
				if stop.Stopped() {
					continue
				}
				if err := runBatch(runner, b, stop); err != nil {
					return fmt.Errorf("worker %d: %w", w, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Workers: workers, PerWorker: perWorker}, nil
}

// runBatch executes the cycles of batch b, honoring stop between
// cycles. The first cycle always runs.
func runBatch(runner *core.CycleRunner, b uint64, stop *core.StopFlag) error {
	first := b * cycleBatch
	for i := first; i < first+cycleBatch; i++ {
		if err := runner.RunCycle(i); err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		if stop.Stopped() {
			return nil
		}
	}
	return nil
}
