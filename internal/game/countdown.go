package game

import (
	"sync"
	"sync/atomic"
	"time"
)

// Countdown is the level timer. With a positive period it ticks on its own
// goroutine; with a zero period it only moves when Tick is called, which is
// how headless runs keep it in step with simulated time.
type Countdown struct {
	remaining atomic.Int32
	period    time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewCountdown creates a stopped countdown.
func NewCountdown(period time.Duration) *Countdown {
	return &Countdown{period: period}
}

// Reset stops the countdown and sets it to seconds.
func (c *Countdown) Reset(seconds int) {
	c.Stop()
	c.remaining.Store(int32(seconds))
}

// Start begins ticking. Calling Start on a running or manual countdown is a no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.period <= 0 || c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
}

func (c *Countdown) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Stop halts the ticking goroutine and waits for it to exit. It is idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Tick removes one second, never going below zero, and returns what is left.
func (c *Countdown) Tick() int {
	for {
		cur := c.remaining.Load()
		if cur <= 0 {
			return 0
		}
		if c.remaining.CompareAndSwap(cur, cur-1) {
			return int(cur - 1)
		}
	}
}

// Remaining returns the whole seconds left.
func (c *Countdown) Remaining() int { return int(c.remaining.Load()) }

// Running reports whether the ticking goroutine is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}
