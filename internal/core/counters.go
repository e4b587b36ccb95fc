// Package core defines the fundamental types shared by all benchmark scenarios.
package core

import "sync/atomic"

// OpCounters tracks completed operations for one benchmark run.
// All increments are atomic; any number of workers may call them
// concurrently. A fresh OpCounters is created per run and discarded
// after its terminal values are read.
//
// DoubleVerify counts triggering cycles, not individual verification
// calls: a cycle whose extra verification pair ran adds exactly one.
type OpCounters struct {
	keygen       atomic.Uint64
	singleVerify atomic.Uint64
	doubleVerify atomic.Uint64
	anomalies    atomic.Uint64
}

func NewOpCounters() *OpCounters {
	return &OpCounters{}
}

func (c *OpCounters) IncKeygen()       { c.keygen.Add(1) }
func (c *OpCounters) IncSingleVerify() { c.singleVerify.Add(1) }
func (c *OpCounters) IncDoubleVerify() { c.doubleVerify.Add(1) }

// IncAnomaly records a verification that returned false where true was
// structurally expected. The verification itself still counts.
func (c *OpCounters) IncAnomaly() { c.anomalies.Add(1) }

// Snapshot returns the terminal counter values. Callers must ensure no
// increments are in flight; the measurement controller guarantees this
// by waiting for all workers before snapshotting.
func (c *OpCounters) Snapshot() (keygen, singleVerify, doubleVerify uint64) {
	return c.keygen.Load(), c.singleVerify.Load(), c.doubleVerify.Load()
}

func (c *OpCounters) Anomalies() uint64 {
	return c.anomalies.Load()
}

// Counts is a plain, single-owner tally kept by one worker for the
// per-worker report section. Not safe for concurrent use.
type Counts struct {
	Keygen       uint64
	SingleVerify uint64
	DoubleVerify uint64
}

// Add folds another tally into this one.
func (c *Counts) Add(other Counts) {
	c.Keygen += other.Keygen
	c.SingleVerify += other.SingleVerify
	c.DoubleVerify += other.DoubleVerify
}
