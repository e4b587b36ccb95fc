package scenario

import (
	"context"
	"fmt"

	"sigbench/internal/core"
	"sigbench/internal/ratelimit"
)

// SingleCore runs full cycles sequentially on one goroutine. No
// cross-worker coordination exists; the stop flag is checked after
// each completed cycle, so at least one cycle always runs.
type SingleCore struct {
	// Limiter, when set, caps the cycle start rate.
	Limiter *ratelimit.Limiter
}

func (s *SingleCore) Name() string { return "single-core" }

func (s *SingleCore) Run(ctx context.Context, signer core.Signer, counters *core.OpCounters, stop *core.StopFlag) (*Result, error) {
	runner := core.NewCycleRunner(signer, counters)
	for i := uint64(0); ; i++ {
		if err := s.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		if err := runner.RunCycle(i); err != nil {
			return nil, fmt.Errorf("cycle %d: %w", i, err)
		}
		if stop.Stopped() {
			break
		}
	}
	return &Result{Workers: 1}, nil
}
