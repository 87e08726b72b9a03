package ticker

import (
	"errors"
	"testing"
	"time"
)

const interval = 10 * time.Millisecond

func TestTicker_CountsFirings(t *testing.T) {
	tk := New()
	if err := tk.Start(interval, true); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		tk.Advance(interval)
	}
	if tk.Value() != 5 {
		t.Fatalf("Value() = %d, want 5", tk.Value())
	}

	tk.Stop()
	tk.Advance(10 * interval)
	if tk.Value() != 5 {
		t.Errorf("Value() after Stop = %d, want 5", tk.Value())
	}
	if tk.Running() {
		t.Error("ticker should not be running after Stop")
	}
}

func TestTicker_AccumulatesPartialIntervals(t *testing.T) {
	tk := New()
	_ = tk.Start(interval, true)

	tk.Advance(4 * time.Millisecond)
	tk.Advance(4 * time.Millisecond)
	if tk.Value() != 0 {
		t.Fatalf("fired early: Value() = %d", tk.Value())
	}
	tk.Advance(4 * time.Millisecond)
	if tk.Value() != 1 {
		t.Fatalf("Value() = %d, want 1", tk.Value())
	}

	// A long frame catches up on every missed interval.
	tk.Advance(38 * time.Millisecond)
	if tk.Value() != 5 {
		t.Errorf("Value() after long frame = %d, want 5", tk.Value())
	}
}

func TestTicker_NonRepeating(t *testing.T) {
	tk := New()
	_ = tk.Start(interval, false)
	tk.Advance(5 * interval)
	if tk.Value() != 1 {
		t.Errorf("Value() = %d, want 1", tk.Value())
	}
	if tk.Running() {
		t.Error("one-shot ticker should stop after firing")
	}
}

func TestTicker_StopIsIdempotent(t *testing.T) {
	tk := New()
	tk.Stop() // before start: no-op
	if err := tk.Start(interval, true); err != nil {
		t.Fatalf("Start after early Stop: %v", err)
	}
	tk.Advance(interval)
	tk.Stop()
	tk.Stop()
	if tk.Value() != 1 {
		t.Errorf("Value() = %d, want 1", tk.Value())
	}
}

func TestTicker_StartErrors(t *testing.T) {
	tk := New()
	if err := tk.Start(0, true); !errors.Is(err, ErrInterval) {
		t.Errorf("zero interval err = %v", err)
	}
	_ = tk.Start(interval, true)
	if err := tk.Start(interval, true); !errors.Is(err, ErrRunning) {
		t.Errorf("double start err = %v", err)
	}
	tk.Stop()
	if err := tk.Start(interval, true); !errors.Is(err, ErrStopped) {
		t.Errorf("restart after stop err = %v", err)
	}
}

func TestTicker_Subscribe(t *testing.T) {
	tk := New()
	var seen []int
	unsubscribe := tk.Subscribe(func(v int) { seen = append(seen, v) })
	_ = tk.Start(interval, true)

	tk.Advance(3 * interval)
	if len(seen) != 3 || seen[2] != 3 {
		t.Fatalf("seen = %v, want [1 2 3]", seen)
	}

	unsubscribe()
	tk.Advance(interval)
	if len(seen) != 3 {
		t.Error("unsubscribed callback still invoked")
	}
}
