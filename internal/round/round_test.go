package round

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/tomz197/colorguess/internal/color"
	"github.com/tomz197/colorguess/internal/score"
)

func newTestController(seed int64) *Controller {
	return New(WithRand(rand.New(rand.NewSource(seed))))
}

func TestNew_StartsGuessing(t *testing.T) {
	c := newTestController(1)
	if c.State() != StateGuessing {
		t.Fatalf("initial state = %v, want guessing", c.State())
	}
	if c.Guess() != color.Midpoint {
		t.Errorf("initial guess = %+v, want midpoint", c.Guess())
	}
	if c.Round() != 1 {
		t.Errorf("Round() = %d, want 1", c.Round())
	}
	tg := c.Target()
	for _, ch := range color.Channels {
		if v := tg.Get(ch); v < 0 || v >= 1 {
			t.Errorf("target %v = %v, want [0,1)", ch, v)
		}
	}
	if _, ok := c.Result(); ok {
		t.Error("Result should not be available while guessing")
	}
}

func TestUpdateGuess(t *testing.T) {
	c := newTestController(1)
	if err := c.UpdateGuess(color.Red, 0.2); err != nil {
		t.Fatalf("UpdateGuess: %v", err)
	}
	if c.Guess().R != 0.2 {
		t.Errorf("guess R = %v, want 0.2", c.Guess().R)
	}

	tests := []struct {
		name string
		ch   color.Channel
		v    float64
		want error
	}{
		{"above range", color.Green, 1.01, ErrOutOfRange},
		{"below range", color.Blue, -0.01, ErrOutOfRange},
		{"bad channel", color.Channel(9), 0.5, ErrUnknownChannel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.Guess()
			err := c.UpdateGuess(tt.ch, tt.v)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if c.Guess() != before {
				t.Error("rejected update must not change the guess")
			}
		})
	}
}

func TestNudge_Clamps(t *testing.T) {
	c := newTestController(1)
	if err := c.Nudge(color.Blue, 0.75); err != nil {
		t.Fatal(err)
	}
	if c.Guess().B != 1 {
		t.Errorf("B after overshoot = %v, want 1", c.Guess().B)
	}
	if err := c.Nudge(color.Blue, -3); err != nil {
		t.Fatal(err)
	}
	if c.Guess().B != 0 {
		t.Errorf("B after undershoot = %v, want 0", c.Guess().B)
	}
}

func TestReveal_FreezesGuess(t *testing.T) {
	c := newTestController(7)
	_ = c.UpdateGuess(color.Red, 0.1)

	res, err := c.Reveal()
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if c.State() != StateRevealed {
		t.Fatalf("state = %v, want revealed", c.State())
	}
	if want := score.Score(c.Target(), c.Guess()); res.Score != want {
		t.Errorf("score = %d, want %d", res.Score, want)
	}

	guess, target := c.Guess(), c.Target()
	if err := c.UpdateGuess(color.Red, 0.9); !errors.Is(err, ErrInvalidState) {
		t.Errorf("UpdateGuess after reveal err = %v, want ErrInvalidState", err)
	}
	if err := c.Nudge(color.Red, 0.1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Nudge after reveal err = %v, want ErrInvalidState", err)
	}
	if _, err := c.Reveal(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Reveal err = %v, want ErrInvalidState", err)
	}
	if c.Guess() != guess || c.Target() != target {
		t.Error("guess and target must not change after reveal")
	}
	if got, ok := c.Result(); !ok || got != res {
		t.Errorf("Result() = %+v, %v", got, ok)
	}
}

func TestReset(t *testing.T) {
	c := newTestController(3)
	if err := c.Reset(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Reset while guessing err = %v, want ErrInvalidState", err)
	}

	first := c.Target()
	_ = c.UpdateGuess(color.Green, 0)
	if _, err := c.Reveal(); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if c.State() != StateGuessing {
		t.Errorf("state after reset = %v", c.State())
	}
	if c.Guess() != color.Midpoint {
		t.Errorf("guess after reset = %+v, want midpoint", c.Guess())
	}
	if c.Target() == first {
		t.Error("target should be redrawn on reset")
	}
	if c.Round() != 2 {
		t.Errorf("Round() = %d, want 2", c.Round())
	}
}

func TestSubscribe(t *testing.T) {
	c := newTestController(4)

	var got []EventType
	unsubscribe := c.Subscribe(func(ev Event) {
		got = append(got, ev.Type)
	})

	_ = c.UpdateGuess(color.Red, 0.3)
	_ = c.Nudge(color.Red, 0) // no change, no event
	_, _ = c.Reveal()
	_ = c.Reset()

	want := []EventType{EventGuessChanged, EventRevealed, EventStarted}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	unsubscribe()
	_ = c.UpdateGuess(color.Red, 0.4)
	if len(got) != len(want) {
		t.Error("unsubscribed callback still invoked")
	}
}
