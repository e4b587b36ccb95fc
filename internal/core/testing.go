package core

import (
	"errors"
	"sync"
	"time"
)

// MockWriter is a thread-safe io.Writer for testing.
type MockWriter struct {
	mu   sync.Mutex
	data []byte
}

func (w *MockWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *MockWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.data)
}

// ErrEntropy simulates a catastrophic entropy source failure.
var ErrEntropy = errors.New("entropy source exhausted")

// StubSigner is a Signer whose primitives complete instantly, with
// optional injected per-cycle cost and failure modes. Safe for
// concurrent use.
type StubSigner struct {
	// GenerateDelay is slept once per GenerateKeypair call, giving
	// tests a fixed, known cycle cost.
	GenerateDelay time.Duration

	// FailVerify makes every Verify return false, exercising the
	// anomaly accounting path.
	FailVerify bool

	// FailKeygenAfter, when > 0, makes GenerateKeypair return
	// ErrEntropy once that many keypairs have been produced.
	FailKeygenAfter uint64

	mu        sync.Mutex
	generated uint64
}

type stubSecret struct{ id uint64 }
type stubPublic struct{ id uint64 }
type stubSignature struct{ id uint64 }

func (s *StubSigner) GenerateKeypair() (SecretKey, PublicKey, error) {
	s.mu.Lock()
	s.generated++
	n := s.generated
	limit := s.FailKeygenAfter
	s.mu.Unlock()

	if limit > 0 && n > limit {
		return nil, nil, ErrEntropy
	}
	if s.GenerateDelay > 0 {
		time.Sleep(s.GenerateDelay)
	}
	return stubSecret{n}, stubPublic{n}, nil
}

func (s *StubSigner) Sign(msg []byte, key SecretKey) (Signature, error) {
	sec, ok := key.(stubSecret)
	if !ok {
		return nil, errors.New("stub signer: foreign secret key")
	}
	return stubSignature{sec.id}, nil
}

func (s *StubSigner) Verify(msg []byte, sig Signature, key PublicKey) bool {
	if s.FailVerify {
		return false
	}
	sg, ok := sig.(stubSignature)
	if !ok {
		return false
	}
	pub, ok := key.(stubPublic)
	return ok && sg.id == pub.id
}

// Generated returns how many keypairs the stub has produced.
func (s *StubSigner) Generated() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}
