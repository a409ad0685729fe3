// Package srs implements the spaced-repetition scheduling policy for
// drills: exponential interval growth on correct answers, reset on
// incorrect ones.
package srs

import "time"

// Params defines all configurable parameters for the scheduling policy.
type Params struct {
	// GrowthFactor multiplies the previous interval on a correct answer.
	GrowthFactor float64

	// GrowthIncrement is added after applying the growth factor, so the
	// first correct answer on a fresh drill (previous interval 0) still
	// moves the drill forward.
	GrowthIncrement float64

	// MinIntervalDays floors every computed interval.
	MinIntervalDays float64

	// LapseIntervalDays is the interval after an incorrect answer.
	LapseIntervalDays float64
}

// NewDefaultParams creates a new Params instance with default values:
// a 2.5x growth with +1 day increment, floored at 1 day, and a 1 day
// reset on any incorrect answer.
func NewDefaultParams() *Params {
	return &Params{
		GrowthFactor:      2.5,
		GrowthIncrement:   1,
		MinIntervalDays:   1,
		LapseIntervalDays: 1,
	}
}

// day converts fractional days to a time.Duration.
func day(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
