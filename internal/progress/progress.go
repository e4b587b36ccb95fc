// Package progress prints live run status to stderr once per second.
// Counter reads here are display-only; the authoritative snapshot
// happens after all workers have stopped.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"sigbench/internal/core"
)

// Progress is reusable across runs: Start binds it to one run's
// counters, Stop detaches it.
type Progress struct {
	quiet  bool
	output io.Writer
	mu     sync.Mutex

	counters  *core.OpCounters
	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
	running   atomic.Bool

	lastKeygen uint64
	lastTick   time.Time
}

func NewProgress(quiet bool) *Progress {
	return &Progress{
		quiet:  quiet,
		output: os.Stderr,
	}
}

func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Start begins ticking against one run's counters.
func (p *Progress) Start(counters *core.OpCounters) {
	if p.quiet || p.running.Swap(true) {
		return
	}
	p.counters = counters
	p.startTime = time.Now()
	p.lastKeygen = 0
	p.lastTick = p.startTime
	p.stopCh = make(chan struct{})
	p.ticker = time.NewTicker(1 * time.Second)
	go p.run()
}

func (p *Progress) run() {
	for {
		select {
		case <-p.stopCh:
			return
		case <-p.ticker.C:
			p.printProgress()
		}
	}
}

func (p *Progress) printProgress() {
	keygen, single, double := p.counters.Snapshot()
	now := time.Now()
	elapsed := now.Sub(p.startTime).Round(time.Second)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60

	p.mu.Lock()
	instRate := 0.0
	if dt := now.Sub(p.lastTick).Seconds(); dt > 0 {
		instRate = float64(keygen-p.lastKeygen) / dt
	}
	p.lastKeygen = keygen
	p.lastTick = now
	fmt.Fprintf(p.output, "\033[K[%02d:%02d] keygen: %d | verify: %d | double: %d | keygen/s: %.1f",
		mins, secs, keygen, single, double, instRate)
	p.mu.Unlock()
}

// Stop halts the ticker and clears the status line. Safe to call when
// never started.
func (p *Progress) Stop() {
	if p.quiet || !p.running.Swap(false) {
		return
	}
	p.ticker.Stop()
	close(p.stopCh)
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K")
	p.mu.Unlock()
}

func (p *Progress) Printf(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K"+format+"\n", args...)
	p.mu.Unlock()
}
