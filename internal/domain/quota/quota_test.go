package quota

import (
	"testing"
	"time"

	"github.com/proevals/proevals-api/internal/domain"
)

func completionsAt(times ...time.Time) []domain.DailyDrillCompletion {
	out := make([]domain.DailyDrillCompletion, len(times))
	for i, ts := range times {
		out[i] = domain.DailyDrillCompletion{DrillID: "drill_x", CompletedAt: ts}
	}
	return out
}

func TestComputeUnlimitedPlans(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	completions := completionsAt(now.Add(-time.Hour), now.Add(-2*time.Hour), now.Add(-3*time.Hour), now.Add(-4*time.Hour))

	for _, plan := range []domain.Plan{domain.PlanPlus, domain.PlanTeams} {
		st := Compute(plan, completions, now, params)
		if !st.Unlimited {
			t.Errorf("plan %s: expected unlimited status", plan)
		}
		if st.Exhausted() {
			t.Errorf("plan %s: unlimited plan reported exhausted", plan)
		}
	}
}

func TestComputeIdle(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		completions []domain.DailyDrillCompletion
	}{
		{"no completions at all", nil},
		{"only stale completions", completionsAt(now.Add(-30 * time.Hour), now.Add(-25 * time.Hour))},
		{"completion exactly at window edge is outside", completionsAt(now.Add(-24 * time.Hour))},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			st := Compute(domain.PlanFree, tc.completions, now, params)
			if st.Remaining != params.Limit || st.CompletedInCycle != 0 || st.CooldownEnd != nil {
				t.Errorf("expected idle full quota, got %+v", st)
			}
		})
	}
}

func TestComputeExhaustion(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	// Free user completes drill 1 at T, drill 2 at T+1h, drill 3 at T+2h.
	T := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	completions := completionsAt(T, T.Add(time.Hour), T.Add(2*time.Hour))
	now := T.Add(3 * time.Hour)

	st := Compute(domain.PlanFree, completions, now, params)
	if st.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", st.Remaining)
	}
	if st.CompletedInCycle != 3 {
		t.Errorf("CompletedInCycle = %d, want 3", st.CompletedInCycle)
	}
	if st.CooldownEnd == nil {
		t.Fatal("expected a cooldown end time")
	}
	if want := T.Add(24 * time.Hour); !st.CooldownEnd.Equal(want) {
		t.Errorf("CooldownEnd = %v, want %v (oldest completion + 24h)", st.CooldownEnd, want)
	}
	if !st.Exhausted() {
		t.Error("expected exhausted status")
	}
}

func TestComputeIdempotence(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	completions := completionsAt(now.Add(-5*time.Hour), now.Add(-2*time.Hour))

	first := Compute(domain.PlanFree, completions, now, params)
	second := Compute(domain.PlanFree, completions, now, params)

	if first.Remaining != second.Remaining ||
		first.CompletedInCycle != second.CompletedInCycle ||
		first.Unlimited != second.Unlimited {
		t.Errorf("quota status not idempotent: %+v vs %+v", first, second)
	}
}

func TestComputePartialCycle(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	st := Compute(domain.PlanFree, completionsAt(now.Add(-3*time.Hour)), now, params)
	if st.Remaining != 2 || st.CompletedInCycle != 1 {
		t.Errorf("got %+v, want 2 remaining after 1 completion", st)
	}
	if st.CooldownEnd != nil {
		t.Errorf("cooldown should only be reported when quota is exhausted, got %v", st.CooldownEnd)
	}
}

func TestComputeCycleRollover(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	// Three completions 23h ago exhaust the quota; one hour later the
	// cycle has ended and the full quota is back.
	T := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	completions := completionsAt(T, T.Add(10*time.Minute), T.Add(20*time.Minute))

	before := Compute(domain.PlanFree, completions, T.Add(23*time.Hour), params)
	if !before.Exhausted() {
		t.Fatalf("expected exhaustion before cycle end, got %+v", before)
	}

	after := Compute(domain.PlanFree, completions, T.Add(24*time.Hour), params)
	if after.Exhausted() || after.Remaining != params.Limit {
		t.Errorf("expected fresh quota at cycle end, got %+v", after)
	}
}

func TestComputeOverQuotaCompletions(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// The manager is advisory; if a caller let a 4th completion through,
	// remaining clamps at zero rather than going negative.
	completions := completionsAt(
		now.Add(-4*time.Hour), now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour),
	)
	st := Compute(domain.PlanFree, completions, now, params)
	if st.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", st.Remaining)
	}
	if st.CompletedInCycle != 4 {
		t.Errorf("CompletedInCycle = %d, want 4", st.CompletedInCycle)
	}
}
