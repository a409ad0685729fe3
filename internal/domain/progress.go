package domain

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DrillAttempt is one user's live resolution of one drill. A later attempt
// on the same drill replaces the prior record; at most one attempt per
// (user, drill) pair is ever retained.
type DrillAttempt struct {
	DrillID          string    `json:"drill_id"`
	SelectedOption   Option    `json:"selected_option"`
	IsCorrect        bool      `json:"is_correct"`
	Confidence       int       `json:"confidence"`
	CalibrationScore int       `json:"calibration_score"`
	AttemptedAt      time.Time `json:"attempted_at"`
	NextShowAt       time.Time `json:"next_show_at"`
	// LevelAtAttempt freezes the user's declared level at attempt time for
	// historical filtering; later profile edits do not rewrite history.
	LevelAtAttempt Level `json:"level_at_attempt"`
}

// DailyDrillCompletion is a lightweight completion marker used only for
// free-tier quota accounting. Markers older than the retention window are
// pruned on every write.
type DailyDrillCompletion struct {
	DrillID     string    `json:"drill_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// LastSeenStats caches the last "best" metrics the user has been shown.
// It exists only to detect new personal bests and is not authoritative.
type LastSeenStats struct {
	OverallScore       int              `json:"overall_score"`
	LongestDailyStreak int              `json:"longest_daily_streak"`
	SkillScores        map[Category]int `json:"skill_scores"`
}

// UserProgress is the per-user aggregate root: the live attempt per drill,
// saved drills, both streak counters, quota completion markers and the
// personal-best cache.
//
// Attempts are held as a map keyed by drill ID so the one-live-attempt-per-
// drill invariant is structural rather than conventional. The JSON form is
// a list ordered by attempt time, matching the external contract.
type UserProgress struct {
	UserID                uuid.UUID
	Attempts              map[string]DrillAttempt
	SavedDrills           []string
	CurrentStreak         int
	LongestStreak         int
	CurrentDailyStreak    int
	LongestDailyStreak    int
	LastStreakDay         string // local calendar day (YYYY-MM-DD), empty = no streak yet
	DailyDrillCompletions []DailyDrillCompletion
	LastSeenStats         *LastSeenStats
}

// NewProgress returns the zero-valued progress for a user with no history.
// Stores must hand this out instead of nil for unknown users.
func NewProgress(userID uuid.UUID) *UserProgress {
	return &UserProgress{
		UserID:                userID,
		Attempts:              make(map[string]DrillAttempt),
		SavedDrills:           []string{},
		DailyDrillCompletions: []DailyDrillCompletion{},
	}
}

// AttemptFor returns the live attempt for the given drill, if any.
func (p *UserProgress) AttemptFor(drillID string) (DrillAttempt, bool) {
	a, ok := p.Attempts[drillID]
	return a, ok
}

// UpsertAttempt records an attempt, replacing any prior attempt on the
// same drill in place.
func (p *UserProgress) UpsertAttempt(a DrillAttempt) {
	if p.Attempts == nil {
		p.Attempts = make(map[string]DrillAttempt)
	}
	p.Attempts[a.DrillID] = a
}

// AttemptsByTime returns all live attempts ordered by attempt time
// ascending, with drill ID as a deterministic tie-break.
func (p *UserProgress) AttemptsByTime() []DrillAttempt {
	out := make([]DrillAttempt, 0, len(p.Attempts))
	for _, a := range p.Attempts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AttemptedAt.Equal(out[j].AttemptedAt) {
			return out[i].AttemptedAt.Before(out[j].AttemptedAt)
		}
		return out[i].DrillID < out[j].DrillID
	})
	return out
}

// LastAttempt returns the most recent live attempt by attempt time, not
// submission order. ok is false for a user with no attempts.
func (p *UserProgress) LastAttempt() (DrillAttempt, bool) {
	var last DrillAttempt
	found := false
	for _, a := range p.Attempts {
		if !found || a.AttemptedAt.After(last.AttemptedAt) {
			last = a
			found = true
		}
	}
	return last, found
}

// IsSaved reports whether the drill is in the user's saved set.
func (p *UserProgress) IsSaved(drillID string) bool {
	for _, id := range p.SavedDrills {
		if id == drillID {
			return true
		}
	}
	return false
}

// ToggleSaved adds or removes a drill from the saved set and reports the
// new saved state.
func (p *UserProgress) ToggleSaved(drillID string) bool {
	for i, id := range p.SavedDrills {
		if id == drillID {
			p.SavedDrills = append(p.SavedDrills[:i], p.SavedDrills[i+1:]...)
			return false
		}
	}
	p.SavedDrills = append(p.SavedDrills, drillID)
	return true
}

// AddCompletion appends a quota completion marker and prunes markers older
// than the retention window, bounding growth for free-tier accounts.
func (p *UserProgress) AddCompletion(drillID string, at time.Time, retention time.Duration) {
	cutoff := at.Add(-retention)
	kept := p.DailyDrillCompletions[:0]
	for _, c := range p.DailyDrillCompletions {
		if c.CompletedAt.After(cutoff) {
			kept = append(kept, c)
		}
	}
	p.DailyDrillCompletions = append(kept, DailyDrillCompletion{DrillID: drillID, CompletedAt: at})
}

// progressJSON is the external JSON representation of UserProgress. The
// attempt map flattens to a list ordered by attempt time.
type progressJSON struct {
	UserID                uuid.UUID              `json:"user_id"`
	Attempts              []DrillAttempt         `json:"attempts"`
	SavedDrills           []string               `json:"saved_drills"`
	CurrentStreak         int                    `json:"current_streak"`
	LongestStreak         int                    `json:"longest_streak"`
	CurrentDailyStreak    int                    `json:"current_daily_streak"`
	LongestDailyStreak    int                    `json:"longest_daily_streak"`
	LastStreakDay         string                 `json:"last_streak_day,omitempty"`
	DailyDrillCompletions []DailyDrillCompletion `json:"daily_drill_completions"`
	LastSeenStats         *LastSeenStats         `json:"last_seen_stats,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p *UserProgress) MarshalJSON() ([]byte, error) {
	out := progressJSON{
		UserID:                p.UserID,
		Attempts:              p.AttemptsByTime(),
		SavedDrills:           p.SavedDrills,
		CurrentStreak:         p.CurrentStreak,
		LongestStreak:         p.LongestStreak,
		CurrentDailyStreak:    p.CurrentDailyStreak,
		LongestDailyStreak:    p.LongestDailyStreak,
		LastStreakDay:         p.LastStreakDay,
		DailyDrillCompletions: p.DailyDrillCompletions,
		LastSeenStats:         p.LastSeenStats,
	}
	if out.SavedDrills == nil {
		out.SavedDrills = []string{}
	}
	if out.DailyDrillCompletions == nil {
		out.DailyDrillCompletions = []DailyDrillCompletion{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. A duplicate drill ID in the
// stored list keeps the later entry, re-establishing the upsert invariant
// for data written before it was structurally enforced.
func (p *UserProgress) UnmarshalJSON(data []byte) error {
	var in progressJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	p.UserID = in.UserID
	p.Attempts = make(map[string]DrillAttempt, len(in.Attempts))
	for _, a := range in.Attempts {
		p.Attempts[a.DrillID] = a
	}
	p.SavedDrills = in.SavedDrills
	if p.SavedDrills == nil {
		p.SavedDrills = []string{}
	}
	p.CurrentStreak = in.CurrentStreak
	p.LongestStreak = in.LongestStreak
	p.CurrentDailyStreak = in.CurrentDailyStreak
	p.LongestDailyStreak = in.LongestDailyStreak
	p.LastStreakDay = in.LastStreakDay
	p.DailyDrillCompletions = in.DailyDrillCompletions
	if p.DailyDrillCompletions == nil {
		p.DailyDrillCompletions = []DailyDrillCompletion{}
	}
	p.LastSeenStats = in.LastSeenStats
	return nil
}
