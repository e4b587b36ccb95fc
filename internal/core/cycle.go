package core

import (
	"encoding/binary"
	"fmt"
)

// SecretKey, PublicKey and Signature are opaque handles produced and
// consumed by a Signer implementation. The harness never inspects them.
type (
	SecretKey = any
	PublicKey = any
	Signature = any
)

// Signer is the crypto collaborator. Implementations must be safe for
// concurrent use by multiple workers.
type Signer interface {
	// GenerateKeypair fails only on catastrophic entropy failure,
	// which is fatal to the run.
	GenerateKeypair() (SecretKey, PublicKey, error)
	Sign(msg []byte, key SecretKey) (Signature, error)
	Verify(msg []byte, sig Signature, key PublicKey) bool
}

// KeypairMessage is the unit handed from producer to consumer in the
// split-role scenario: a public key with a signature to verify.
type KeypairMessage struct {
	Pub PublicKey
	Sig Signature
	Msg []byte
}

// CycleMessage derives a unique 32-byte message for cycle i: the index
// in the first eight bytes little-endian, the rest mixed from it.
func CycleMessage(i uint64) []byte {
	msg := make([]byte, 32)
	binary.LittleEndian.PutUint64(msg, i)
	for j := 8; j < 32; j++ {
		msg[j] = byte(i >> (j % 8))
	}
	return msg
}

// CycleRunner executes one unit of benchmark work: a keypair
// generation, one signature verification, and every third cycle two
// additional verifications. A CycleRunner is not safe for concurrent
// use; each worker goroutine must have its own.
type CycleRunner struct {
	signer   Signer
	counters *OpCounters

	// Local, when set, receives the same increments as the shared
	// counters. Used by the multi-core scenario for its per-worker
	// breakdown.
	Local *Counts
}

func NewCycleRunner(signer Signer, counters *OpCounters) *CycleRunner {
	return &CycleRunner{signer: signer, counters: counters}
}

// RunCycle performs cycle i. It increments exactly one keygen count,
// one single-verify count, and one double-verify count when (i+1) is a
// multiple of three. Collaborator errors are fatal and returned as-is
// for the caller to abort the run.
func (r *CycleRunner) RunCycle(i uint64) error {
	msg := CycleMessage(i)

	sec, pub, err := r.signer.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("generating keypair: %w", err)
	}
	sig, err := r.signer.Sign(msg, sec)
	if err != nil {
		return fmt.Errorf("signing message: %w", err)
	}
	r.counters.IncKeygen()
	if r.Local != nil {
		r.Local.Keygen++
	}

	if !r.signer.Verify(msg, sig, pub) {
		r.counters.IncAnomaly()
	}
	r.counters.IncSingleVerify()
	if r.Local != nil {
		r.Local.SingleVerify++
	}

	if (i+1)%3 == 0 {
		for k := 0; k < 2; k++ {
			if !r.signer.Verify(msg, sig, pub) {
				r.counters.IncAnomaly()
			}
		}
		r.counters.IncDoubleVerify()
		if r.Local != nil {
			r.Local.DoubleVerify++
		}
	}
	return nil
}
