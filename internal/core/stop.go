package core

import "sync/atomic"

// StopFlag is the cooperative stop signal shared by the measurement
// controller and a scenario's workers. Workers read it between cycles
// and never mid-cycle, so every counted operation belongs to a fully
// completed cycle.
type StopFlag struct {
	v atomic.Bool
}

// Set requests that workers stop after their in-flight cycle.
func (f *StopFlag) Set() { f.v.Store(true) }

// Stopped reports whether stop has been requested.
func (f *StopFlag) Stopped() bool { return f.v.Load() }
