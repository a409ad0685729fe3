// Package quota enforces the free-tier drill allowance over rolling
// 24-hour cycles.
//
// There is no stored cycle state: the cycle boundary is recomputed from the
// (48h-pruned) completion-marker list on every query, so status can never
// drift from the data. One boundary convention applies throughout: a
// completion is inside the trailing window iff it is strictly after
// now-24h, the cycle starts at the oldest such completion, and the cycle is
// over iff its end is at or before now.
package quota

import (
	"time"

	"github.com/proevals/proevals-api/internal/domain"
)

// Params defines the configurable parameters for quota tracking.
type Params struct {
	// Limit is the number of drills a rate-limited account may complete
	// per cycle.
	Limit int

	// CycleDuration is the length of the rolling quota cycle.
	CycleDuration time.Duration

	// RetentionWindow bounds how long completion markers are kept. It must
	// be at least CycleDuration or cycles would lose their own history.
	RetentionWindow time.Duration
}

// NewDefaultParams creates a new Params instance with the default 3 drills
// per 24 hour cycle and 48 hour marker retention.
func NewDefaultParams() *Params {
	return &Params{
		Limit:           3,
		CycleDuration:   24 * time.Hour,
		RetentionWindow: 48 * time.Hour,
	}
}

// Status describes a user's quota position at a point in time.
//
// The manager is advisory: it reports remaining quota but blocks nothing
// itself. Refusing to hand out a drill when Remaining is 0 is the drill
// selector's responsibility.
type Status struct {
	// Unlimited is true for plans exempt from the quota. All other fields
	// are zero values when set.
	Unlimited bool

	// CompletedInCycle is the number of completions since the current
	// cycle's start.
	CompletedInCycle int

	// Remaining is max(0, limit - CompletedInCycle).
	Remaining int

	// CooldownEnd is the absolute time the current cycle ends. Set only
	// when Remaining is 0.
	CooldownEnd *time.Time
}

// Exhausted reports whether the caller must wait for the cooldown.
func (s Status) Exhausted() bool {
	return !s.Unlimited && s.Remaining == 0
}

// Compute derives the quota status for a user at now. It is a pure
// function over the completion list; querying twice without an intervening
// completion yields identical results.
func Compute(plan domain.Plan, completions []domain.DailyDrillCompletion, now time.Time, params *Params) Status {
	if plan.Unlimited() {
		return Status{Unlimited: true}
	}

	windowStart := now.Add(-params.CycleDuration)

	// The cycle anchor is the oldest completion still inside the trailing
	// window.
	var cycleStart time.Time
	found := false
	for _, c := range completions {
		if !c.CompletedAt.After(windowStart) {
			continue
		}
		if !found || c.CompletedAt.Before(cycleStart) {
			cycleStart = c.CompletedAt
			found = true
		}
	}

	if !found {
		// Idle: nothing in the last cycle duration.
		return Status{Remaining: params.Limit}
	}

	cycleEnd := cycleStart.Add(params.CycleDuration)
	if !cycleEnd.After(now) {
		// Cycle is over even though some markers are recent. A fresh cycle
		// begins on the next completion.
		return Status{Remaining: params.Limit}
	}

	inCycle := 0
	for _, c := range completions {
		if !c.CompletedAt.Before(cycleStart) {
			inCycle++
		}
	}

	remaining := params.Limit - inCycle
	if remaining < 0 {
		remaining = 0
	}

	st := Status{CompletedInCycle: inCycle, Remaining: remaining}
	if remaining == 0 {
		st.CooldownEnd = &cycleEnd
	}
	return st
}
