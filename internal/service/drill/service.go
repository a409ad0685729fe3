// Package drill orchestrates the drill-taking loop: quota gating, next-drill
// selection, and attempt recording with calibration scoring, streak updates
// and spaced-repetition rescheduling.
package drill

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/domain/quota"
)

// Common error types for the drill service. Exhaustion variants are normal
// terminal states, not failures; callers branch on them to choose UI.
var (
	// ErrQuotaExhausted indicates a rate-limited user has no drills left
	// in the current cycle. Query QuotaStatus for the cooldown end time.
	ErrQuotaExhausted = errors.New("drill quota exhausted")

	// ErrNoDrillAvailable indicates no drill is selectable at the target
	// level: the bank has none, or everything is attempted and nothing is
	// due. The user is caught up.
	ErrNoDrillAvailable = errors.New("no drill available")

	// ErrDrillNotFound indicates the referenced drill is not in the bank.
	ErrDrillNotFound = errors.New("drill not found")

	// ErrInvalidAttempt indicates a malformed attempt submission.
	ErrInvalidAttempt = errors.New("invalid attempt")
)

// Outcome classifies a resolved attempt for display. The strategic
// alternative is a softer outcome in the UI only; it scores as incorrect.
type Outcome string

// Possible attempt outcomes.
const (
	OutcomeOptimal              Outcome = "optimal"
	OutcomeStrategicAlternative Outcome = "strategic_alternative"
	OutcomeIncorrect            Outcome = "incorrect"
)

// AttemptSubmission is a user's resolution of a drill. An empty
// SelectedOption means the answer timer expired; the attempt is recorded
// through the normal path as the deterministic default (incorrect, 0%
// confidence).
type AttemptSubmission struct {
	DrillID        string
	SelectedOption domain.Option
	Confidence     int
}

// AttemptResult is the outcome of recording an attempt: the stored attempt,
// its display classification, and the updated progress counters.
type AttemptResult struct {
	Attempt  domain.DrillAttempt
	Outcome  Outcome
	Progress *domain.UserProgress
}

// Stats are a user's aggregate performance metrics, with flags set when a
// metric beats the last value the user has been shown.
type Stats struct {
	OverallScore       int
	SkillScores        map[domain.Category]int
	AttemptCount       int
	CurrentStreak      int
	LongestStreak      int
	CurrentDailyStreak int
	LongestDailyStreak int
	NewOverallBest     bool
	NewDailyStreakBest bool
}

// Service provides the drill scheduling and recording operations.
type Service interface {
	// NextDrill chooses the drill the user sees next. desiredLevel
	// overrides the user's declared level; pass "" for the default.
	// Policy, in strict priority order: quota gate, then unseen drills at
	// the level (uniformly at random), then the earliest-due attempted
	// drill. Returns ErrQuotaExhausted or ErrNoDrillAvailable as normal
	// terminal states.
	NextDrill(ctx context.Context, userID uuid.UUID, desiredLevel domain.Level) (*domain.Drill, error)

	// RecordAttempt scores and stores an attempt, advancing streaks,
	// rescheduling the drill, and consuming free-tier quota. A re-attempt
	// replaces the prior record for that drill. Recording is not quota
	// gated; the quota manager is advisory and selection is the gate.
	RecordAttempt(ctx context.Context, userID uuid.UUID, sub AttemptSubmission) (*AttemptResult, error)

	// QuotaStatus reports the user's current quota position. Pure over
	// stored state: querying twice without an intervening completion
	// yields identical results.
	QuotaStatus(ctx context.Context, userID uuid.UUID) (quota.Status, error)

	// ToggleSaved adds or removes a drill from the user's saved set and
	// reports the new saved state.
	ToggleSaved(ctx context.Context, userID uuid.UUID, drillID string) (bool, error)

	// UserStats computes the user's aggregate metrics and refreshes the
	// personal-best cache.
	UserStats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}
