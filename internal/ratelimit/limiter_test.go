package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_ZeroMeansUnlimited(t *testing.T) {
	if l := NewLimiter(0); l != nil {
		t.Error("expected nil limiter for rate 0")
	}
	if l := NewLimiter(-5); l != nil {
		t.Error("expected nil limiter for negative rate")
	}
}

func TestLimiter_NilNeverBlocks(t *testing.T) {
	var l *Limiter
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("nil limiter returned error: %v", err)
		}
	}
}

func TestLimiter_CapsRate(t *testing.T) {
	// 100 ops/sec with a full burst bucket: 150 waits need at least
	// 50 refills beyond the burst, so roughly 500ms.
	l := NewLimiter(100)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 150; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 400*time.Millisecond {
		t.Errorf("expected rate limiting to slow 150 ops to ~500ms, took %v", elapsed)
	}
}

func TestLimiter_RespectsContextCancellation(t *testing.T) {
	l := NewLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the burst token, then cancel while waiting.
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := l.Wait(ctx); err == nil {
		t.Error("expected error after context cancellation")
	}
}
