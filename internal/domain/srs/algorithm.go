package srs

import (
	"github.com/proevals/proevals-api/internal/domain"
)

// NextIntervalDays computes the next review interval in fractional days.
//
// On a correct answer the interval grows exponentially:
//
//	max(MinIntervalDays, previous*GrowthFactor + GrowthIncrement)
//
// so three consecutive correct answers produce strictly increasing
// intervals. On an incorrect answer the interval resets to
// LapseIntervalDays regardless of how long it had grown.
func NextIntervalDays(isCorrect bool, previousIntervalDays float64, params *Params) float64 {
	if !isCorrect {
		return params.LapseIntervalDays
	}

	next := previousIntervalDays*params.GrowthFactor + params.GrowthIncrement
	if next < params.MinIntervalDays {
		next = params.MinIntervalDays
	}
	return next
}

// PreviousIntervalDays recovers the interval that was scheduled by a prior
// attempt by diffing its due date against its attempt time. There is no
// stored interval field; the schedule itself is the state. Returns 0 for a
// first-ever attempt on a drill (prev == nil) or for malformed records
// whose due date precedes the attempt.
func PreviousIntervalDays(prev *domain.DrillAttempt) float64 {
	if prev == nil {
		return 0
	}

	days := prev.NextShowAt.Sub(prev.AttemptedAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
