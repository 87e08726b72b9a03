// Package config centralizes all tunable game parameters.
package config

import "time"

// Slider steps, as fractions of the full 0..1 range.
const (
	SliderFineStep   = 1.0 / 255.0 // One 8-bit level
	SliderCoarseStep = 16.0 / 255.0
)

// Layout limits. Larger terminals are centered.
const (
	MaxTermWidth  = 100
	MaxTermHeight = 30
	MinTermWidth  = 40
	MinTermHeight = 16
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// DefaultTickInterval is the counter period when none is configured.
const DefaultTickInterval = time.Second
