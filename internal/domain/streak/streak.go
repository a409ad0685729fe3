// Package streak maintains the two consecutive-activity counters: the
// session streak (attempts within a rolling time window of each other) and
// the daily streak (consecutive local calendar days with at least one
// attempt). Both are independent state machines advanced only as a side
// effect of recording an attempt.
package streak

import "time"

// Params defines the configurable parameters for streak tracking.
type Params struct {
	// SessionWindow is the maximum gap between attempts that keeps a
	// session streak alive.
	SessionWindow time.Duration
}

// NewDefaultParams creates a new Params instance with the default 36 hour
// session window.
func NewDefaultParams() *Params {
	return &Params{SessionWindow: 36 * time.Hour}
}

// Session is the session-streak state.
type Session struct {
	Current int
	Longest int
}

// Daily is the daily-streak state. LastDay is the local calendar day
// (YYYY-MM-DD) the streak last advanced; empty means no streak yet — not a
// broken streak. Existing history is never retroactively counted.
type Daily struct {
	Current int
	Longest int
	LastDay string
}

// LocalDay formats the calendar day of t in t's own location. The daily
// streak is keyed off local calendar dates, not UTC and not elapsed hours.
func LocalDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// AdvanceSession returns the session state after an attempt at now.
// lastAttemptAt is the timestamp of the most recent prior attempt (by
// attempt time, not submission order); hasPrior is false for a first-ever
// attempt. A gap under the window increments the streak, anything else
// resets it to 1. The longest value is a running maximum and never
// decreases.
func AdvanceSession(s Session, lastAttemptAt time.Time, hasPrior bool, now time.Time, params *Params) Session {
	if hasPrior && now.Sub(lastAttemptAt) < params.SessionWindow {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return s
}

// AdvanceDaily returns the daily state after an attempt at now. Only the
// first attempt of a new local day moves the machine: if the previous
// qualifying day was exactly yesterday the streak increments, otherwise it
// resets to 1. Further attempts on the same local day are no-ops, so the
// streak advances at most once per calendar day.
func AdvanceDaily(d Daily, now time.Time) Daily {
	today := LocalDay(now)
	if d.LastDay == today {
		return d
	}

	yesterday := LocalDay(now.AddDate(0, 0, -1))
	if d.LastDay == yesterday {
		d.Current++
	} else {
		d.Current = 1
	}
	if d.Current > d.Longest {
		d.Longest = d.Current
	}
	d.LastDay = today
	return d
}
