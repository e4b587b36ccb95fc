package core

import (
	"bytes"
	"errors"
	"testing"
)

func TestCycleMessage_Unique(t *testing.T) {
	a := CycleMessage(0)
	b := CycleMessage(1)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("expected 32-byte messages, got %d and %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Error("expected distinct messages for distinct cycle indices")
	}
	if !bytes.Equal(CycleMessage(42), CycleMessage(42)) {
		t.Error("expected message derivation to be deterministic")
	}
}

func TestCycleRunner_CountsPerCycle(t *testing.T) {
	counters := NewOpCounters()
	r := NewCycleRunner(&StubSigner{}, counters)

	totalCycles := uint64(10)
	for i := uint64(0); i < totalCycles; i++ {
		if err := r.RunCycle(i); err != nil {
			t.Fatalf("cycle %d failed: %v", i, err)
		}
	}

	keygen, single, double := counters.Snapshot()
	if keygen != totalCycles {
		t.Errorf("expected keygen=%d, got %d", totalCycles, keygen)
	}
	if single != totalCycles {
		t.Errorf("expected singleVerify=%d, got %d", totalCycles, single)
	}
	// Cycles 2, 5 and 8 trigger the extra pair: floor(10/3) = 3.
	if double != totalCycles/3 {
		t.Errorf("expected doubleVerify=%d, got %d", totalCycles/3, double)
	}
	if counters.Anomalies() != 0 {
		t.Errorf("expected no anomalies, got %d", counters.Anomalies())
	}
}

func TestCycleRunner_LocalTally(t *testing.T) {
	counters := NewOpCounters()
	r := NewCycleRunner(&StubSigner{}, counters)
	local := &Counts{}
	r.Local = local

	for i := uint64(0); i < 6; i++ {
		if err := r.RunCycle(i); err != nil {
			t.Fatalf("cycle %d failed: %v", i, err)
		}
	}

	keygen, single, double := counters.Snapshot()
	if local.Keygen != keygen || local.SingleVerify != single || local.DoubleVerify != double {
		t.Errorf("local tally %+v diverged from shared counters (%d, %d, %d)",
			*local, keygen, single, double)
	}
}

func TestCycleRunner_AnomalyStillCounts(t *testing.T) {
	counters := NewOpCounters()
	r := NewCycleRunner(&StubSigner{FailVerify: true}, counters)

	// Cycle 2 triggers the extra pair: 3 verification calls total.
	for i := uint64(0); i < 3; i++ {
		if err := r.RunCycle(i); err != nil {
			t.Fatalf("cycle %d failed: %v", i, err)
		}
	}

	_, single, double := counters.Snapshot()
	if single != 3 {
		t.Errorf("expected singleVerify=3, got %d", single)
	}
	if double != 1 {
		t.Errorf("expected doubleVerify=1, got %d", double)
	}
	// 3 single calls + 2 extra calls, all returning false.
	if counters.Anomalies() != 5 {
		t.Errorf("expected 5 anomalies, got %d", counters.Anomalies())
	}
}

func TestCycleRunner_KeygenFailureIsFatal(t *testing.T) {
	counters := NewOpCounters()
	r := NewCycleRunner(&StubSigner{FailKeygenAfter: 2}, counters)

	if err := r.RunCycle(0); err != nil {
		t.Fatalf("cycle 0 failed: %v", err)
	}
	if err := r.RunCycle(1); err != nil {
		t.Fatalf("cycle 1 failed: %v", err)
	}
	err := r.RunCycle(2)
	if !errors.Is(err, ErrEntropy) {
		t.Fatalf("expected ErrEntropy, got %v", err)
	}

	// The failed cycle must not have been counted.
	keygen, _, _ := counters.Snapshot()
	if keygen != 2 {
		t.Errorf("expected keygen=2, got %d", keygen)
	}
}
