// Package ticker provides a repeating counter driven by the owner's frame
// loop. There is no background goroutine: ticks fire only from Advance, so
// once Stop returns no further tick can occur.
package ticker

import (
	"errors"
	"time"
)

var (
	// ErrInterval is returned by Start for a non-positive interval.
	ErrInterval = errors.New("ticker interval must be positive")
	// ErrRunning is returned by Start on a ticker that is already running.
	ErrRunning = errors.New("ticker already running")
	// ErrStopped is returned by Start on a stopped ticker. Stopped tickers
	// cannot be resumed.
	ErrStopped = errors.New("ticker stopped")
)

// Ticker counts fixed intervals of elapsed loop time. Not safe for
// concurrent use.
type Ticker struct {
	interval time.Duration
	repeats  bool
	elapsed  time.Duration
	value    int
	running  bool
	stopped  bool

	subs   map[int]func(int)
	nextID int
}

// New returns an idle ticker with a zero counter.
func New() *Ticker {
	return &Ticker{subs: make(map[int]func(int))}
}

// Start begins counting. If repeats is false the ticker fires once and
// then stops.
func (t *Ticker) Start(interval time.Duration, repeats bool) error {
	switch {
	case interval <= 0:
		return ErrInterval
	case t.stopped:
		return ErrStopped
	case t.running:
		return ErrRunning
	}
	t.interval = interval
	t.repeats = repeats
	t.elapsed = 0
	t.running = true
	return nil
}

// Advance feeds delta of elapsed time and fires one tick per full interval.
func (t *Ticker) Advance(delta time.Duration) {
	if !t.running || delta <= 0 {
		return
	}
	t.elapsed += delta
	for t.running && t.elapsed >= t.interval {
		t.elapsed -= t.interval
		t.value++
		if !t.repeats {
			t.Stop()
		}
		t.notify()
	}
}

// Stop cancels future ticks. The counter keeps its value. Calling Stop more
// than once, or before Start, is a no-op.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.stopped = true
}

// Value returns the number of ticks fired so far.
func (t *Ticker) Value() int { return t.value }

// Running reports whether the ticker is counting.
func (t *Ticker) Running() bool { return t.running }

// Subscribe registers fn to be called with the new value after every tick.
func (t *Ticker) Subscribe(fn func(int)) (unsubscribe func()) {
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		delete(t.subs, id)
	}
}

func (t *Ticker) notify() {
	for _, fn := range t.subs {
		fn(t.value)
	}
}
