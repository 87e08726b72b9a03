package client

import (
	"time"

	"github.com/tomz197/colorguess/internal/color"
	"github.com/tomz197/colorguess/internal/input"
)

// GameState represents the session phase for a client.
type GameState int

const (
	GameStatePlaying  GameState = iota // Rounds in progress
	GameStateShutdown                  // Server is shutting down
)

// view identifies what is on screen. A change forces a full clear.
type view struct {
	gameState  GameState
	round      int
	revealed   bool
	inactive   bool
	tooSmall   bool
	termWidth  int
	termHeight int
}

// ClientState holds per-player UI state. Game rules live in the round
// controller and ticker owned by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState     // This client's session phase
	Selected      color.Channel // Slider receiving adjustments
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevView      view
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStatePlaying,
		Selected:  color.Red,
		Running:   true,
		prevView:  view{round: -1},
	}
}
