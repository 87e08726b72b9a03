// Package client runs one player's game session: input, round logic,
// counter and rendering on a single frame loop.
package client

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/colorguess/internal/color"
	"github.com/tomz197/colorguess/internal/draw"
	"github.com/tomz197/colorguess/internal/input"
	"github.com/tomz197/colorguess/internal/logger"
	"github.com/tomz197/colorguess/internal/loop/config"
	"github.com/tomz197/colorguess/internal/loop/server"
	"github.com/tomz197/colorguess/internal/round"
	"github.com/tomz197/colorguess/internal/ticker"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	round        *round.Controller
	ticker       *ticker.Ticker
	tickInterval time.Duration
	painter      *draw.Painter
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	TickInterval time.Duration // Counter period; defaults to config.DefaultTickInterval
	ColorProfile string        // See draw.ParseProfile; empty means auto
	OutputOpts   []termenv.OutputOption
	Logger       *log.Logger
	Rand         *rand.Rand // Target color source; seeded from the clock when nil
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = config.DefaultTickInterval
	}
	lg := opts.Logger
	if lg == nil {
		lg = logger.Discard()
	}
	profile := opts.ColorProfile
	if profile == "" {
		profile = "auto"
	}

	handle := gs.RegisterClient(opts.Username)

	var roundOpts []round.Option
	if opts.Rand != nil {
		roundOpts = append(roundOpts, round.WithRand(opts.Rand))
	}

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		round:        round.New(roundOpts...),
		tickInterval: interval,
		painter:      draw.NewPainter(w, profile, opts.OutputOpts...),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       lg.With("client", handle.ID),
	}
	if r != nil {
		c.inputStream = input.StartStream(r)
	}

	c.round.Subscribe(c.onRoundEvent)
	c.startTicker()
	return c
}

// Run starts the client loop. Blocks until the client quits, the input
// closes, or the server shutdown display expires.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		var in input.Input
		if c.inputStream != nil {
			in = input.ReadInput(c.inputStream)
		}
		if err := c.step(in, delta); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// step runs one Input → Update → Draw cycle.
func (c *Client) step(in input.Input, delta time.Duration) error {
	c.state.delta = delta

	c.processInput(in)
	c.processServerEvents()

	switch c.state.GameState {
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput records activity and applies key actions.
func (c *Client) processInput(in input.Input) {
	c.state.Input = in

	if in.Closed || in.Has(input.ActionQuit) {
		c.state.Running = false
		return
	}

	if in.Active() {
		c.lastInput = time.Now()
		if c.state.isInactive {
			// The key that dismisses the warning is not applied.
			c.state.isInactive = false
			return
		}
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
		return
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, a := range in.Actions {
		c.applyAction(a)
	}
}

// applyAction maps one action onto the round controller.
func (c *Client) applyAction(a input.Action) {
	if c.state.GameState == GameStateShutdown {
		if a == input.ActionConfirm {
			c.state.Running = false
		}
		return
	}

	var err error
	switch a {
	case input.ActionConfirm:
		if c.round.State() == round.StateRevealed {
			err = c.round.Reset()
		} else {
			_, err = c.round.Reveal()
		}
	case input.ActionNextChannel:
		c.state.Selected = c.state.Selected.Next()
	case input.ActionPrevChannel:
		c.state.Selected = c.state.Selected.Prev()
	case input.ActionSelectRed:
		c.state.Selected = color.Red
	case input.ActionSelectGreen:
		c.state.Selected = color.Green
	case input.ActionSelectBlue:
		c.state.Selected = color.Blue
	case input.ActionIncrease:
		err = c.round.Nudge(c.state.Selected, config.SliderFineStep)
	case input.ActionDecrease:
		err = c.round.Nudge(c.state.Selected, -config.SliderFineStep)
	case input.ActionIncreaseMore:
		err = c.round.Nudge(c.state.Selected, config.SliderCoarseStep)
	case input.ActionDecreaseMore:
		err = c.round.Nudge(c.state.Selected, -config.SliderCoarseStep)
	}
	if err != nil {
		c.logger.Debug("ignored input", "action", a, "err", err)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.ticker.Stop()
			}
		default:
			return
		}
	}
}

// updatePlayingState advances the round counter.
func (c *Client) updatePlayingState() {
	c.ticker.Advance(c.state.delta)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// onRoundEvent keeps the counter and the server in step with the round.
func (c *Client) onRoundEvent(ev round.Event) {
	switch ev.Type {
	case round.EventStarted:
		c.state.Selected = color.Red
		c.startTicker()
	case round.EventRevealed:
		c.ticker.Stop()
		c.server.ReportRound(c.handle.ID, ev.Result.Score)
		c.logger.Debug("round revealed",
			"round", ev.Round,
			"score", ev.Result.Score,
			"seconds", c.ticker.Value(),
		)
	}
}

// startTicker replaces the counter with a fresh one for the new round.
func (c *Client) startTicker() {
	c.ticker = ticker.New()
	if err := c.ticker.Start(c.tickInterval, true); err != nil {
		c.logger.Error("failed to start counter", "err", err)
	}
}
