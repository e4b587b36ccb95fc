// Package scenario implements the three concurrency topologies the
// benchmark measures: a sequential single-core loop, a split-role
// producer/consumer pair, and a multi-core worker pool.
package scenario

import (
	"context"

	"sigbench/internal/core"
)

// Result describes how a completed scenario ran. PerWorker is only
// populated by the multi-core scenario.
type Result struct {
	Workers   int
	PerWorker []core.Counts
}

// Scenario runs benchmark cycles until the stop flag is set. Run
// blocks until every worker has observed stop and finished its
// in-flight cycle, so counters are quiescent when it returns. An error
// means the run failed and no counts should be reported.
type Scenario interface {
	Name() string
	Run(ctx context.Context, signer core.Signer, counters *core.OpCounters, stop *core.StopFlag) (*Result, error)
}
