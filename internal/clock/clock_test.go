package clock

import (
	"testing"
	"time"
)

func TestTickerDelivers(t *testing.T) {
	ticker := NewTicker(20 * time.Millisecond)
	ticker.Start()
	defer ticker.Stop()

	select {
	case now := <-ticker.C():
		if now.IsZero() {
			t.Fatalf("expected a wall-clock tick")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no tick delivered")
	}
}

func TestStopClosesChannel(t *testing.T) {
	ticker := NewTicker(10 * time.Millisecond)
	ticker.Start()
	ticker.Stop()

	select {
	case _, open := <-drain(ticker.C()):
		if open {
			t.Fatalf("expected channel closed after stop")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed")
	}
}

func drain(c <-chan time.Time) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for range c {
		}
	}()
	return out
}

func TestStopIsIdempotent(t *testing.T) {
	ticker := NewTicker(10 * time.Millisecond)
	ticker.Start()
	ticker.Stop()
	ticker.Stop()
}

func TestDroppedCountsBackpressure(t *testing.T) {
	ticker := NewTicker(5 * time.Millisecond)
	ticker.Start()
	defer ticker.Stop()

	time.Sleep(100 * time.Millisecond)
	if ticker.Dropped() == 0 {
		t.Fatalf("expected dropped ticks with no consumer")
	}
}
