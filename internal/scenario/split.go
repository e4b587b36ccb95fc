package scenario

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sigbench/internal/core"
	"sigbench/internal/ratelimit"
)

// DefaultChanCap bounds the producer's backlog. A full channel stalls
// the producer, which is backpressure, not an error.
const DefaultChanCap = 1024

// SplitRole pins generation and verification to two dedicated
// goroutines joined by a single FIFO channel. The producer owns the
// keygen counter; the consumer owns both verification counters,
// tracking its per-three cadence over received items.
type SplitRole struct {
	// ChanCap is the channel capacity; 0 selects an unbuffered
	// handoff and < 0 the default.
	ChanCap int

	// Limiter, when set, caps the producer's generation rate.
	Limiter *ratelimit.Limiter
}

func (s *SplitRole) Name() string { return "split-role" }

func (s *SplitRole) Run(ctx context.Context, signer core.Signer, counters *core.OpCounters, stop *core.StopFlag) (*Result, error) {
	capacity := s.ChanCap
	if capacity < 0 {
		capacity = DefaultChanCap
	}
	ch := make(chan core.KeypairMessage, capacity)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("producer panic: %v", r)
			}
		}()
		// Closing the channel is the end-of-stream signal; it must
		// happen on every exit path or the consumer blocks forever.
		defer close(ch)
		return s.produce(gctx, signer, counters, stop, ch)
	})
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("consumer panic: %v", r)
			}
		}()
		consume(signer, counters, ch)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Workers: 2}, nil
}

func (s *SplitRole) produce(ctx context.Context, signer core.Signer, counters *core.OpCounters, stop *core.StopFlag, ch chan<- core.KeypairMessage) error {
	for i := uint64(0); ; i++ {
		if err := s.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("producer rate limiter: %w", err)
		}
		msg := core.CycleMessage(i)
		sec, pub, err := signer.GenerateKeypair()
		if err != nil {
			return fmt.Errorf("producer keygen %d: %w", i, err)
		}
		sig, err := signer.Sign(msg, sec)
		if err != nil {
			return fmt.Errorf("producer sign %d: %w", i, err)
		}
		select {
		case ch <- core.KeypairMessage{Pub: pub, Sig: sig, Msg: msg}:
		case <-ctx.Done():
			// Consumer gone or run cancelled; stop producing. The
			// consumer's error, if any, is what the run reports.
			return ctx.Err()
		}
		counters.IncKeygen()
		if stop.Stopped() {
			return nil
		}
	}
}

// consume verifies every received keypair, running the extra
// verification pair on every third received item. It terminates when
// the channel is closed and drained.
func consume(signer core.Signer, counters *core.OpCounters, ch <-chan core.KeypairMessage) {
	received := uint64(0)
	for m := range ch {
		if !signer.Verify(m.Msg, m.Sig, m.Pub) {
			counters.IncAnomaly()
		}
		counters.IncSingleVerify()
		if (received+1)%3 == 0 {
			for k := 0; k < 2; k++ {
				if !signer.Verify(m.Msg, m.Sig, m.Pub) {
					counters.IncAnomaly()
				}
			}
			counters.IncDoubleVerify()
		}
		received++
	}
}
