package scenario

import (
	"context"
	"errors"
	"testing"
	"time"

	"sigbench/internal/core"
)

func TestSplitRole_ConsumerVerifiesExactlyWhatWasSent(t *testing.T) {
	signer := &core.StubSigner{}
	counters, res := runScenario(t, &SplitRole{ChanCap: 64}, signer, 30*time.Millisecond)

	if res.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", res.Workers)
	}

	keygen, single, double := counters.Snapshot()
	if keygen == 0 {
		t.Fatal("expected at least one keypair produced")
	}
	// keygen counts exactly the producer's sends, and the stub
	// records every generation it performed.
	if keygen != signer.Generated() {
		t.Errorf("keygen count %d != keypairs generated %d", keygen, signer.Generated())
	}
	// The channel was closed and drained, so every sent keypair was
	// verified exactly once: no phantom or missed verifications.
	if single != keygen {
		t.Errorf("expected singleVerify == keygen after drain, got %d != %d", single, keygen)
	}
	if double != single/3 {
		t.Errorf("expected doubleVerify == received/3, got %d != %d", double, single/3)
	}
}

func TestSplitRole_UnbufferedHandoff(t *testing.T) {
	counters, _ := runScenario(t, &SplitRole{ChanCap: 0}, &core.StubSigner{}, 20*time.Millisecond)

	keygen, single, _ := counters.Snapshot()
	if keygen == 0 {
		t.Fatal("expected at least one keypair produced")
	}
	if single != keygen {
		t.Errorf("expected singleVerify == keygen, got %d != %d", single, keygen)
	}
}

func TestSplitRole_ZeroDurationStillHandsOffOneKeypair(t *testing.T) {
	counters, _ := runScenario(t, &SplitRole{ChanCap: 4}, &core.StubSigner{}, 0)

	keygen, single, _ := counters.Snapshot()
	if keygen != 1 {
		t.Errorf("expected exactly one keypair with stop pre-set, got %d", keygen)
	}
	if single != 1 {
		t.Errorf("expected the one keypair to be verified, got %d", single)
	}
}

func TestSplitRole_AnomaliesCounted(t *testing.T) {
	counters, _ := runScenario(t, &SplitRole{ChanCap: 16, Limiter: nil}, &core.StubSigner{FailVerify: true}, 20*time.Millisecond)

	_, single, double := counters.Snapshot()
	// Every verification call returned false: one per received item
	// plus two per triggering cycle.
	want := single + 2*double
	if counters.Anomalies() != want {
		t.Errorf("expected %d anomalies, got %d", want, counters.Anomalies())
	}
}

func TestSplitRole_ProducerFailureClosesStream(t *testing.T) {
	counters := core.NewOpCounters()
	stop := &core.StopFlag{}
	sc := &SplitRole{ChanCap: 8}

	// The producer fails mid-run; the consumer must still terminate
	// (channel closed on the error path) and the run must report the
	// failure.
	_, err := sc.Run(context.Background(), &core.StubSigner{FailKeygenAfter: 3}, counters, stop)
	if !errors.Is(err, core.ErrEntropy) {
		t.Fatalf("expected ErrEntropy, got %v", err)
	}
}
