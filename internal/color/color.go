// Package color defines the RGB color model shared by the game core.
package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel identifies one of the three RGB channels.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists all channels in display order.
var Channels = [...]Channel{Red, Green, Blue}

// String returns the lowercase channel name.
func (ch Channel) String() string {
	switch ch {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(ch))
	}
}

// Valid reports whether ch names a real channel.
func (ch Channel) Valid() bool {
	return ch >= Red && ch <= Blue
}

// Next returns the channel after ch, wrapping from blue to red.
func (ch Channel) Next() Channel {
	return (ch + 1) % 3
}

// Prev returns the channel before ch, wrapping from red to blue.
func (ch Channel) Prev() Channel {
	return (ch + 2) % 3
}

// Color3 holds three channel values in [0,1].
type Color3 struct {
	R, G, B float64
}

// Midpoint is the initial guess of every round.
var Midpoint = Color3{R: 0.5, G: 0.5, B: 0.5}

// Get returns the value of a single channel. Unknown channels read as 0.
func (c Color3) Get(ch Channel) float64 {
	switch ch {
	case Red:
		return c.R
	case Green:
		return c.G
	case Blue:
		return c.B
	}
	return 0
}

// With returns a copy of c with one channel replaced.
func (c Color3) With(ch Channel, v float64) Color3 {
	switch ch {
	case Red:
		c.R = v
	case Green:
		c.G = v
	case Blue:
		c.B = v
	}
	return c
}

// InRange reports whether every channel lies in [0,1].
func (c Color3) InRange() bool {
	return InUnit(c.R) && InUnit(c.G) && InUnit(c.B)
}

// Colorful converts c into a go-colorful color.
func (c Color3) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the #rrggbb form of c.
func (c Color3) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// RGB255 returns the channels scaled to 0..255 by truncation,
// matching the slider readout.
func (c Color3) RGB255() (r, g, b int) {
	return To255(c.R), To255(c.G), To255(c.B)
}

// String formats c as "R: r  G: g  B: b" using 0..255 values. Each value
// is padded to three digits so the text keeps a constant width.
func (c Color3) String() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("R: %3d  G: %3d  B: %3d", r, g, b)
}

// To255 scales a unit value to 0..255, truncating.
func To255(v float64) int {
	return int(Clamp(v) * 255)
}

// InUnit reports whether v lies in [0,1].
func InUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Clamp limits v to [0,1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
