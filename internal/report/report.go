// Package report turns terminal counter values into rates and formats
// them for output.
package report

import (
	"time"

	"github.com/google/uuid"

	"sigbench/internal/core"
)

// RunStats is the raw outcome of a completed measurement run.
type RunStats struct {
	Scenario     string
	Elapsed      time.Duration
	Keygen       uint64
	SingleVerify uint64
	DoubleVerify uint64
	Anomalies    uint64
	Workers      int
	PerWorker    []core.Counts
}

// Report is the final aggregate for one run: counts, derived rates,
// and the per-worker breakdown when the scenario tracked one.
type Report struct {
	RunID    string
	Scenario string
	Elapsed  time.Duration
	Workers  int

	Keygen       uint64
	SingleVerify uint64
	DoubleVerify uint64
	Anomalies    uint64

	KeygenRate       float64
	SingleVerifyRate float64
	DoubleVerifyRate float64

	PerWorker []core.Counts
}

// Build computes operations-per-second from terminal counts. Rates are
// the only computation; everything else is carried through.
func Build(s RunStats) *Report {
	r := &Report{
		RunID:        uuid.NewString(),
		Scenario:     s.Scenario,
		Elapsed:      s.Elapsed,
		Workers:      s.Workers,
		Keygen:       s.Keygen,
		SingleVerify: s.SingleVerify,
		DoubleVerify: s.DoubleVerify,
		Anomalies:    s.Anomalies,
		PerWorker:    s.PerWorker,
	}
	if secs := s.Elapsed.Seconds(); secs > 0 {
		r.KeygenRate = float64(s.Keygen) / secs
		r.SingleVerifyRate = float64(s.SingleVerify) / secs
		r.DoubleVerifyRate = float64(s.DoubleVerify) / secs
	}
	return r
}
