// Package round implements the guessing → revealed → reset lifecycle of a
// single game round.
package round

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/colorguess/internal/color"
	"github.com/tomz197/colorguess/internal/score"
)

// State is the phase of the current round.
type State int

const (
	StateGuessing State = iota // Player is adjusting the guess
	StateRevealed              // Score is frozen until reset
)

func (s State) String() string {
	switch s {
	case StateGuessing:
		return "guessing"
	case StateRevealed:
		return "revealed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrOutOfRange is returned when a channel value lies outside [0,1].
	ErrOutOfRange = errors.New("channel value out of range")
	// ErrUnknownChannel is returned for a channel that is not red, green or blue.
	ErrUnknownChannel = errors.New("unknown channel")
)

// EventType identifies a controller change notification.
type EventType int

const (
	EventStarted EventType = iota
	EventGuessChanged
	EventRevealed
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Type   EventType
	Round  int
	State  State
	Guess  color.Color3
	Result score.Result // Set for EventRevealed
}

// Controller owns one target/guess pair and its state machine. It is not
// safe for concurrent use; the owning loop serializes all calls.
type Controller struct {
	rng    *rand.Rand
	state  State
	round  int
	target color.Color3
	guess  color.Color3
	result score.Result

	subs   map[int]func(Event)
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used to draw targets.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// New creates a controller and starts its first round.
func New(opts ...Option) *Controller {
	c := &Controller{
		subs: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.Start()
	return c
}

// Start draws a new target, resets the guess to the midpoint and enters
// the guessing state. It is valid from any state.
func (c *Controller) Start() {
	c.target = color.Color3{
		R: c.rng.Float64(),
		G: c.rng.Float64(),
		B: c.rng.Float64(),
	}
	c.guess = color.Midpoint
	c.result = score.Result{}
	c.state = StateGuessing
	c.round++
	c.notify(EventStarted)
}

// UpdateGuess sets one channel of the guess.
func (c *Controller) UpdateGuess(ch color.Channel, v float64) error {
	if err := c.require(StateGuessing, "update guess"); err != nil {
		return err
	}
	if !ch.Valid() {
		return fmt.Errorf("update guess: %w: %v", ErrUnknownChannel, ch)
	}
	next := c.guess.With(ch, v)
	if !next.InRange() {
		return fmt.Errorf("update guess %v=%v: %w", ch, v, ErrOutOfRange)
	}
	c.guess = next
	c.notify(EventGuessChanged)
	return nil
}

// Nudge moves one channel of the guess by delta, clamping into [0,1].
func (c *Controller) Nudge(ch color.Channel, delta float64) error {
	if err := c.require(StateGuessing, "nudge guess"); err != nil {
		return err
	}
	if !ch.Valid() {
		return fmt.Errorf("nudge guess: %w: %v", ErrUnknownChannel, ch)
	}
	v := color.Clamp(c.guess.Get(ch) + delta)
	if v == c.guess.Get(ch) {
		return nil
	}
	c.guess = c.guess.With(ch, v)
	c.notify(EventGuessChanged)
	return nil
}

// Reveal freezes the guess and computes the score.
func (c *Controller) Reveal() (score.Result, error) {
	if err := c.require(StateGuessing, "reveal"); err != nil {
		return score.Result{}, err
	}
	c.result = score.Evaluate(c.target, c.guess)
	c.state = StateRevealed
	c.notify(EventRevealed)
	return c.result, nil
}

// Reset starts a new round. Only valid once the current round is revealed.
func (c *Controller) Reset() error {
	if err := c.require(StateRevealed, "reset"); err != nil {
		return err
	}
	c.Start()
	return nil
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Round returns the 1-based number of the current round.
func (c *Controller) Round() int { return c.round }

// Target returns the hidden color.
func (c *Controller) Target() color.Color3 { return c.target }

// Guess returns the current guess.
func (c *Controller) Guess() color.Color3 { return c.guess }

// Result returns the frozen result. ok is false while guessing.
func (c *Controller) Result() (res score.Result, ok bool) {
	return c.result, c.state == StateRevealed
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Callbacks run synchronously on the caller's goroutine.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		delete(c.subs, id)
	}
}

func (c *Controller) require(want State, op string) error {
	if c.state != want {
		return fmt.Errorf("%s while %s: %w", op, c.state, ErrInvalidState)
	}
	return nil
}

func (c *Controller) notify(t EventType) {
	if len(c.subs) == 0 {
		return
	}
	ev := Event{
		Type:   t,
		Round:  c.round,
		State:  c.state,
		Guess:  c.guess,
		Result: c.result,
	}
	for _, fn := range c.subs {
		fn(ev)
	}
}
