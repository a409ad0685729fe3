// Package leaderboard computes ranked standings across the user
// population: time-windowed global rankings and all-time skill-category
// rankings, with eligibility thresholds and deterministic tie-breaks.
package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
)

// Common error types for the leaderboard service.
var (
	// ErrInvalidPeriod indicates an unrecognized ranking period.
	ErrInvalidPeriod = errors.New("invalid leaderboard period")

	// ErrInvalidCategory indicates an unrecognized skill category.
	ErrInvalidCategory = errors.New("invalid skill category")
)

// Period selects the time window for global rankings.
type Period string

// Recognized ranking periods.
const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Window returns the trailing duration the period covers.
func (p Period) Window() (time.Duration, error) {
	switch p {
	case PeriodWeekly:
		return 7 * 24 * time.Hour, nil
	case PeriodMonthly:
		return 30 * 24 * time.Hour, nil
	default:
		return 0, ErrInvalidPeriod
	}
}

// Params defines the configurable parameters for ranking eligibility.
type Params struct {
	// GlobalMinAttempts is the in-window attempt count required to appear
	// on a time-windowed global ranking.
	GlobalMinAttempts int

	// SkillMinAttempts is the in-category attempt count required to
	// appear on an all-time skill ranking.
	SkillMinAttempts int
}

// NewDefaultParams creates a new Params instance with the default
// thresholds of 5 attempts for global rankings and 10 for skill rankings.
func NewDefaultParams() *Params {
	return &Params{
		GlobalMinAttempts: 5,
		SkillMinAttempts:  10,
	}
}

// Entry is one ranked row. Ranks are 1-based sequential positions: users
// tied on both sort keys still receive distinct consecutive ranks.
type Entry struct {
	Rank         int          `json:"rank"`
	UserID       uuid.UUID    `json:"user_id"`
	Name         string       `json:"name"`
	Level        domain.Level `json:"level"`
	Score        int          `json:"score"`
	AttemptCount int          `json:"attempt_count"`
}

// UserStatus reports one user's position relative to a ranking. An
// ineligible user is not an error case: Ranked is false and DrillsNeeded
// says how many more qualifying attempts would make them eligible.
type UserStatus struct {
	Ranked       bool `json:"is_ranked"`
	Rank         int  `json:"rank,omitempty"`
	Score        int  `json:"score"`
	AttemptCount int  `json:"attempt_count"`
	DrillsNeeded int  `json:"drills_needed"`
}

// Service provides the leaderboard ranking operations. Every query reads
// the full user population; there is no incremental index.
type Service interface {
	// Global ranks users by mean calibration score over attempts inside
	// the period's trailing window. Eligibility requires
	// GlobalMinAttempts in-window attempts.
	Global(ctx context.Context, period Period) ([]Entry, error)

	// Skill ranks users by mean calibration score over all attempts on
	// drills in the category, with no time window. Eligibility requires
	// SkillMinAttempts such attempts.
	Skill(ctx context.Context, category domain.Category) ([]Entry, error)

	// GlobalStatus reports a single user's standing on a global ranking.
	GlobalStatus(ctx context.Context, userID uuid.UUID, period Period) (*UserStatus, error)

	// SkillStatus reports a single user's standing on a skill ranking.
	SkillStatus(ctx context.Context, userID uuid.UUID, category domain.Category) (*UserStatus, error)
}
