// Package clock emits a tick at every minute boundary so the current-time
// indicator stays fresh without polling from the UI loop.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

type Ticker struct {
	mu      sync.Mutex
	out     chan time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64

	interval time.Duration
}

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Ticker{
		out:      make(chan time.Time, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: interval,
	}
}

func (t *Ticker) C() <-chan time.Time {
	return t.out
}

func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.started = true
	go t.loop()
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	close(t.stopCh)
	t.mu.Unlock()
	<-t.doneCh
}

// Dropped counts ticks discarded because the consumer was behind. A slow
// frame loses a tick, never blocks the loop.
func (t *Ticker) Dropped() uint64 {
	return atomic.LoadUint64(&t.dropped)
}

func (t *Ticker) loop() {
	defer close(t.doneCh)
	defer close(t.out)

	timer := time.NewTimer(t.untilNextBoundary(time.Now()))
	defer timer.Stop()

	for {
		select {
		case now := <-timer.C:
			select {
			case t.out <- now:
			default:
				atomic.AddUint64(&t.dropped, 1)
			}
			timer.Reset(t.untilNextBoundary(time.Now()))
		case <-t.stopCh:
			return
		}
	}
}

func (t *Ticker) untilNextBoundary(now time.Time) time.Duration {
	wait := t.interval - time.Duration(now.UnixNano())%t.interval
	if wait <= 0 {
		wait = t.interval
	}
	return wait
}
