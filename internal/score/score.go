// Package score maps a target and a guess color to a score.
//
// All functions are pure; inputs are expected to lie in [0,1] per channel.
package score

import (
	"math"

	"github.com/tomz197/colorguess/internal/color"
)

// Perfect is the score of an exact match.
const Perfect = 100

// Distance returns the Euclidean distance between target and guess in RGB
// space. The maximum for in-range inputs is √3.
func Distance(target, guess color.Color3) float64 {
	return target.Colorful().DistanceRgb(guess.Colorful())
}

// Score scales the distance to a 0..100 score: (1 - distance) * 100,
// rounded half up by adding 0.5 and truncating toward zero.
// The result is not clamped, so far-apart colors yield negative scores.
func Score(target, guess color.Color3) int {
	return scaled(Distance(target, guess))
}

func scaled(distance float64) int {
	return int((1.0-distance)*100.0 + 0.5)
}

// ChannelCloseness returns 1 - |guess[ch] - target[ch]|.
func ChannelCloseness(target, guess color.Color3, ch color.Channel) float64 {
	return 1 - math.Abs(guess.Get(ch)-target.Get(ch))
}

// Result is the frozen outcome of a revealed round.
type Result struct {
	Distance  float64
	Score     int
	Closeness [3]float64 // Indexed by color.Channel
}

// Evaluate computes the full result for a target/guess pair.
func Evaluate(target, guess color.Color3) Result {
	d := Distance(target, guess)
	res := Result{Distance: d, Score: scaled(d)}
	for _, ch := range color.Channels {
		res.Closeness[ch] = ChannelCloseness(target, guess, ch)
	}
	return res
}

// Verdict returns a short label for a score.
func Verdict(s int) string {
	switch {
	case s >= Perfect:
		return "Perfect!"
	case s >= 90:
		return "Excellent"
	case s >= 75:
		return "Great"
	case s >= 50:
		return "Close"
	case s >= 0:
		return "Not quite"
	default:
		return "Way off"
	}
}
