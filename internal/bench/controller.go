// Package bench runs one scenario for a timed measurement window and
// turns its terminal counter values into a report.
package bench

import (
	"context"
	"fmt"
	"time"

	"sigbench/internal/core"
	"sigbench/internal/progress"
	"sigbench/internal/report"
	"sigbench/internal/scenario"
)

// Options configures one measurement run.
type Options struct {
	// MinDuration is the soft floor for the measurement window. The
	// run lasts at least this long; workers may overrun by one
	// in-flight cycle.
	MinDuration time.Duration

	// Clock defaults to the real clock.
	Clock core.Clock

	// Progress, when set, is bound to the run's counters for live
	// status output.
	Progress *progress.Progress
}

type outcome struct {
	res *scenario.Result
	err error
}

// Run measures one scenario: it creates fresh counters, starts the
// scenario's workers, signals stop once the minimum duration has
// elapsed, waits for every worker to finish its in-flight cycle, and
// only then snapshots. A failed worker aborts the run; no partial
// counts are ever reported.
func Run(ctx context.Context, sc scenario.Scenario, signer core.Signer, opts Options) (*report.Report, error) {
	clock := opts.Clock
	if clock == nil {
		clock = core.RealClock{}
	}

	counters := core.NewOpCounters()
	stop := &core.StopFlag{}

	if opts.Progress != nil {
		opts.Progress.Start(counters)
		defer opts.Progress.Stop()
	}

	start := clock.Now()
	done := make(chan outcome, 1)
	go func() {
		res, err := sc.Run(ctx, signer, counters, stop)
		done <- outcome{res, err}
	}()

	var o outcome
	received := false
	timer := time.NewTimer(opts.MinDuration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		stop.Set()
		<-done
		return nil, fmt.Errorf("scenario %s: run interrupted: %w", sc.Name(), ctx.Err())
	case o = <-done:
		// The scenario returned before the window closed, which only
		// happens on failure.
		received = true
	}

	stop.Set()
	if !received {
		o = <-done
	}
	elapsed := clock.Since(start)

	if o.err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name(), o.err)
	}
	if o.res == nil {
		return nil, fmt.Errorf("scenario %s: stopped without a result", sc.Name())
	}

	// All workers have acknowledged stop; the counters are quiescent.
	keygen, single, double := counters.Snapshot()
	return report.Build(report.RunStats{
		Scenario:     sc.Name(),
		Elapsed:      elapsed,
		Keygen:       keygen,
		SingleVerify: single,
		DoubleVerify: double,
		Anomalies:    counters.Anomalies(),
		Workers:      o.res.Workers,
		PerWorker:    o.res.PerWorker,
	}), nil
}
