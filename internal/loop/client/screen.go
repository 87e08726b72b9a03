package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/colorguess/internal/color"
	"github.com/tomz197/colorguess/internal/draw"
	"github.com/tomz197/colorguess/internal/loop/config"
	"github.com/tomz197/colorguess/internal/round"
	"github.com/tomz197/colorguess/internal/score"
)

const (
	swatchChrome = 11 // Rows used by everything except the swatches
	sliderChrome = 28 // Columns used by a slider row except its track
	minSwatch    = 2
	minSlider    = 8
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		termWidth, termHeight = config.MaxTermWidth, config.MaxTermHeight
	}
	width, height, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)

	current := view{
		gameState:  c.state.GameState,
		round:      c.round.Round(),
		revealed:   c.round.State() == round.StateRevealed,
		inactive:   c.state.isInactive,
		tooSmall:   width < config.MinTermWidth || height < config.MinTermHeight,
		termWidth:  termWidth,
		termHeight: termHeight,
	}
	// On view transitions do a full terminal clear so elements from the
	// previous view don't persist on screen.
	if current != c.state.prevView {
		c.chunkWriter.WriteString(draw.ClearSequence())
		c.chunkWriter.Invalidate()
		c.state.prevView = current
	}

	switch {
	case current.tooSmall:
		c.drawTooSmall(width, height)
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(width, height)
	case c.state.isInactive:
		c.drawInactivityScreen(width, height)
	default:
		c.drawPlayingScreen(width, height)
		if current.revealed {
			c.drawScoreDialog(width, height)
		}
	}

	return c.chunkWriter.Flush()
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawPlayingScreen draws the swatches, sliders and counter.
func (c *Client) drawPlayingScreen(width, height int) {
	cw := c.chunkWriter
	p := c.painter
	target, guess := c.round.Target(), c.round.Guess()
	res, revealed := c.round.Result()

	// Header
	cw.WriteAt(3, 1, p.Label("COLOR GUESS"))
	status := fmt.Sprintf("Round %d   Timer %d", c.round.Round(), c.ticker.Value())
	cw.WriteAt(width-len(status)-1, 1, status)

	// Swatches: target left, guess right
	swatchWidth := (width - 6) / 2
	swatchHeight := max(height-swatchChrome, minSwatch)
	guessCol := 3 + swatchWidth + 2
	cw.WriteBlock(3, 3, p.Swatch(target, swatchWidth, swatchHeight))
	cw.WriteBlock(guessCol, 3, p.Swatch(guess, swatchWidth, swatchHeight))

	captionRow := 3 + swatchHeight
	targetCaption := "Match this color"
	guessCaption := guess.String()
	cw.WriteAt(3+(swatchWidth-len(targetCaption))/2, captionRow, targetCaption)
	cw.WriteAt(guessCol+(swatchWidth-len(guessCaption))/2, captionRow, guessCaption)

	// Sliders
	sliderWidth := max(width-sliderChrome, minSlider)
	for i, ch := range color.Channels {
		line := p.Slider(ch, guess.Get(ch), sliderWidth, !revealed && ch == c.state.Selected)
		if revealed {
			line += "  " + p.Cue(ch, res.Closeness[ch])
		}
		cw.WriteAt(2, captionRow+2+i, line)
	}

	// Controls hint
	hint := "←/→ adjust  ↑/↓ channel  SPACE hit me  q quit"
	if revealed {
		hint = "SPACE play again  q quit"
	}
	cw.WriteAt(3, height, p.Faint(hint))
}

// drawScoreDialog draws the score box over the playing screen.
func (c *Client) drawScoreDialog(width, height int) {
	res, _ := c.round.Result()
	p := c.painter
	box := p.Dialog("Your Score",
		p.Label(fmt.Sprintf("%d", res.Score)),
		score.Verdict(res.Score),
		"",
		p.Faint(fmt.Sprintf("target %s  guess %s", c.round.Target().Hex(), c.round.Guess().Hex())),
		p.Faint(fmt.Sprintf("time %d", c.ticker.Value())),
		"",
		"Press SPACE to play again",
	)
	c.drawCentered(width, height, box)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(width, height int) {
	remaining := int(math.Max(0, config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()))
	box := c.painter.Dialog("INACTIVITY WARNING",
		fmt.Sprintf("You will be disconnected in %d seconds.", remaining),
		"",
		"Press any key to continue",
	)
	c.drawCentered(width, height, box)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(width, height int) {
	remaining := int(math.Ceil(math.Max(0, c.state.shutdownTimer)))
	box := c.painter.Dialog("SERVER SHUTTING DOWN",
		fmt.Sprintf("Disconnecting in %d seconds.", remaining),
		"",
		"Press SPACE to leave now",
	)
	c.drawCentered(width, height, box)
}

// drawTooSmall asks for a bigger terminal.
func (c *Client) drawTooSmall(width, height int) {
	msg := fmt.Sprintf("Terminal too small: need %dx%d", config.MinTermWidth, config.MinTermHeight)
	col := max((width-len(msg))/2+1, 1)
	c.chunkWriter.WriteAt(col, max(height/2, 1), msg)
}

// drawCentered writes a rendered block in the middle of the render area.
func (c *Client) drawCentered(width, height int, block string) {
	w, h := draw.BlockSize(block)
	col := max((width-w)/2+1, 1)
	row := max((height-h)/2+1, 1)
	c.chunkWriter.WriteBlock(col, row, block)
}
