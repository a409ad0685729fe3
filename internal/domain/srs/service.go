package srs

import (
	"time"

	"github.com/proevals/proevals-api/internal/domain"
)

// Service defines the interface for spaced-repetition scheduling operations.
type Service interface {
	// Schedule computes the next-show timestamp for an attempt being
	// recorded now. prev is the user's prior live attempt on the same
	// drill, or nil for a first attempt.
	Schedule(prev *domain.DrillAttempt, isCorrect bool, now time.Time) time.Time

	// IsDue reports whether an attempted drill is due to be shown again.
	IsDue(attempt domain.DrillAttempt, now time.Time) bool
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Schedule implements the Service interface.
func (s *defaultService) Schedule(prev *domain.DrillAttempt, isCorrect bool, now time.Time) time.Time {
	previous := PreviousIntervalDays(prev)
	interval := NextIntervalDays(isCorrect, previous, s.params)
	return now.Add(day(interval))
}

// IsDue implements the Service interface. A drill is due once its
// next-show timestamp has passed (inclusive).
func (s *defaultService) IsDue(attempt domain.DrillAttempt, now time.Time) bool {
	return !attempt.NextShowAt.After(now)
}
