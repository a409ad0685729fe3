package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUpsertAttemptKeepsOnePerDrill(t *testing.T) {
	t.Parallel() // Enable parallel execution

	p := NewProgress(uuid.New())
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	p.UpsertAttempt(DrillAttempt{DrillID: "d1", CalibrationScore: 40, AttemptedAt: now})
	p.UpsertAttempt(DrillAttempt{DrillID: "d2", CalibrationScore: 70, AttemptedAt: now.Add(time.Hour)})
	p.UpsertAttempt(DrillAttempt{DrillID: "d1", CalibrationScore: 90, AttemptedAt: now.Add(2 * time.Hour)})

	if len(p.Attempts) != 2 {
		t.Fatalf("expected 2 live attempts, got %d", len(p.Attempts))
	}

	a, ok := p.AttemptFor("d1")
	if !ok {
		t.Fatal("expected a live attempt for d1")
	}
	if a.CalibrationScore != 90 {
		t.Errorf("re-attempt did not replace prior record: score %d, want 90", a.CalibrationScore)
	}
}

func TestLastAttemptByAttemptTime(t *testing.T) {
	t.Parallel() // Enable parallel execution

	p := NewProgress(uuid.New())
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	if _, ok := p.LastAttempt(); ok {
		t.Error("empty progress should have no last attempt")
	}

	// Insertion order differs from attempt time order.
	p.UpsertAttempt(DrillAttempt{DrillID: "d1", AttemptedAt: now.Add(3 * time.Hour)})
	p.UpsertAttempt(DrillAttempt{DrillID: "d2", AttemptedAt: now})

	last, ok := p.LastAttempt()
	if !ok || last.DrillID != "d1" {
		t.Errorf("LastAttempt = %v (%v), want d1 by attempt time", last.DrillID, ok)
	}
}

func TestToggleSaved(t *testing.T) {
	t.Parallel() // Enable parallel execution

	p := NewProgress(uuid.New())

	if saved := p.ToggleSaved("d1"); !saved {
		t.Error("first toggle should save")
	}
	if !p.IsSaved("d1") {
		t.Error("d1 should be saved")
	}
	if saved := p.ToggleSaved("d1"); saved {
		t.Error("second toggle should unsave")
	}
	if p.IsSaved("d1") {
		t.Error("d1 should no longer be saved")
	}
}

func TestAddCompletionPrunesRetentionWindow(t *testing.T) {
	t.Parallel() // Enable parallel execution

	p := NewProgress(uuid.New())
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	retention := 48 * time.Hour

	p.AddCompletion("old", now.Add(-49*time.Hour), retention)
	p.AddCompletion("edge", now.Add(-48*time.Hour), retention)
	p.AddCompletion("recent", now.Add(-time.Hour), retention)
	p.AddCompletion("new", now, retention)

	if len(p.DailyDrillCompletions) != 2 {
		t.Fatalf("expected markers outside 48h to be pruned, got %d markers", len(p.DailyDrillCompletions))
	}
	for _, c := range p.DailyDrillCompletions {
		if c.DrillID == "old" || c.DrillID == "edge" {
			t.Errorf("marker %q should have been pruned", c.DrillID)
		}
	}
}

func TestProgressJSONRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution

	userID := uuid.New()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	p := NewProgress(userID)
	p.UpsertAttempt(DrillAttempt{
		DrillID:          "d2",
		SelectedOption:   OptionB,
		IsCorrect:        true,
		Confidence:       80,
		CalibrationScore: 80,
		AttemptedAt:      now.Add(time.Hour),
		NextShowAt:       now.Add(25 * time.Hour),
		LevelAtAttempt:   LevelMid,
	})
	p.UpsertAttempt(DrillAttempt{DrillID: "d1", AttemptedAt: now, NextShowAt: now.Add(24 * time.Hour)})
	p.CurrentStreak = 2
	p.LongestStreak = 5
	p.CurrentDailyStreak = 1
	p.LongestDailyStreak = 3
	p.LastStreakDay = "2025-06-10"
	p.AddCompletion("d1", now, 48*time.Hour)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The external form is a list, oldest attempt first.
	var wire struct {
		Attempts []DrillAttempt `json:"attempts"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal wire form: %v", err)
	}
	if len(wire.Attempts) != 2 || wire.Attempts[0].DrillID != "d1" {
		t.Errorf("expected attempts as a time-ordered list, got %+v", wire.Attempts)
	}

	var back UserProgress
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.UserID != userID {
		t.Errorf("UserID = %v, want %v", back.UserID, userID)
	}
	if len(back.Attempts) != 2 {
		t.Errorf("expected 2 attempts after round trip, got %d", len(back.Attempts))
	}
	if back.LastStreakDay != "2025-06-10" || back.LongestStreak != 5 {
		t.Errorf("streak state lost in round trip: %+v", back)
	}
	if len(back.DailyDrillCompletions) != 1 {
		t.Errorf("completion markers lost in round trip")
	}
}

func TestProgressJSONDuplicateAttemptsKeepLater(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Data written before the invariant was structurally enforced may hold
	// duplicates; the later list entry wins.
	raw := `{
		"user_id": "7b8ffa4c-9b70-4f11-b5bc-57cd5ebb6a60",
		"attempts": [
			{"drill_id": "d1", "calibration_score": 10, "attempted_at": "2025-06-01T10:00:00Z", "next_show_at": "2025-06-02T10:00:00Z"},
			{"drill_id": "d1", "calibration_score": 95, "attempted_at": "2025-06-03T10:00:00Z", "next_show_at": "2025-06-04T10:00:00Z"}
		]
	}`

	var p UserProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	a, ok := p.AttemptFor("d1")
	if !ok || a.CalibrationScore != 95 {
		t.Errorf("expected the later duplicate to win, got %+v (%v)", a, ok)
	}
}
