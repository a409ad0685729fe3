package content

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validDrill(id string) domain.Drill {
	return domain.Drill{
		ID:                id,
		Title:             "Capacity Standoff " + id,
		TargetLevel:       domain.LevelMid,
		Category:          domain.CategoryExecution,
		ScenarioText:      "Two teams want the same sprint capacity.",
		Stakeholder1Role:  "Engineering Lead",
		Stakeholder1Quote: "We can't do both.",
		Stakeholder2Role:  "Sales Director",
		Stakeholder2Quote: "The deal depends on it.",
		Stakeholder3Role:  "Designer",
		Stakeholder3Quote: "Neither is ready.",
		OptionA:           "Ship the sales ask",
		OptionB:           "Hold the roadmap",
		OptionC:           "Split capacity",
		OptionD:           "Escalate to the VP",
		OptimalChoice:     domain.OptionB,
		ExpertAnalysis:    "Protect the roadmap; revisit the deal scope.",
		RationaleA:        "Short-term win, long-term churn.",
		RationaleB:        "Keeps commitments credible.",
		RationaleC:        "Both efforts arrive late.",
		RationaleD:        "Delegates a call you own.",
		PeerDataA:         20,
		PeerDataB:         45,
		PeerDataC:         25,
		PeerDataD:         10,
	}
}

func newTestService(bank ...domain.Drill) (*serviceImpl, *fakeDrillStore) {
	drills := newFakeDrillStore(bank...)
	svc := NewService(drills, testLogger()).(*serviceImpl)
	svc.timeFunc = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc, drills
}

func TestImport_Append(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, drills := newTestService(validDrill("existing"))

	report, err := svc.Import(context.Background(), []domain.Drill{
		validDrill("new-1"),
		validDrill("new-2"),
	}, ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Warnings)

	bank, err := drills.GetBank(context.Background())
	require.NoError(t, err)
	assert.Len(t, bank, 3, "append keeps the existing bank")
}

func TestImport_RejectsWholeBatch(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, drills := newTestService()

	bad := validDrill("bad")
	bad.ScenarioText = ""
	bad.PeerDataA = 55 // sum is now 135

	report, err := svc.Import(context.Background(), []domain.Drill{
		validDrill("good"),
		bad,
	}, ModeAppend)
	require.ErrorIs(t, err, ErrImportRejected)
	require.NotNil(t, report)
	assert.Zero(t, report.Imported)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, 1, report.Issues[0].Index)
	assert.GreaterOrEqual(t, len(report.Issues[0].Fields), 2)

	// Nothing was applied, not even the valid drill.
	bank, err := drills.GetBank(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bank)
}

func TestImport_ReassignsCollidingIDs(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, drills := newTestService(validDrill("taken"))

	noID := validDrill("")
	dupInBank := validDrill("taken")
	dupInBatch := validDrill("fresh")
	fresh := validDrill("fresh")

	report, err := svc.Import(context.Background(), []domain.Drill{
		noID, dupInBank, fresh, dupInBatch,
	}, ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Imported)
	assert.Len(t, report.Warnings, 3)

	bank, err := drills.GetBank(context.Background())
	require.NoError(t, err)
	assert.Len(t, bank, 5, "reassigned IDs must not overwrite anything")
}

func TestImport_ReplaceDiscardsBank(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, drills := newTestService(validDrill("old-1"), validDrill("old-2"))

	// Replace mode starts from an empty ID set, so reusing an old ID is
	// not a collision.
	report, err := svc.Import(context.Background(), []domain.Drill{validDrill("old-1")}, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Empty(t, report.Warnings)

	bank, err := drills.GetBank(context.Background())
	require.NoError(t, err)
	require.Len(t, bank, 1)
	assert.Equal(t, "old-1", bank[0].ID)
}

func TestImport_UnknownMode(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, _ := newTestService()
	_, err := svc.Import(context.Background(), []domain.Drill{validDrill("d")}, ImportMode("merge"))
	assert.ErrorIs(t, err, ErrImportRejected)
}

func TestUpdate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, drills := newTestService(validDrill("drill-1"))
	ctx := context.Background()

	edited := validDrill("drill-1")
	edited.Title = "Renamed"
	require.NoError(t, svc.Update(ctx, &edited))

	got, err := drills.GetByID(ctx, "drill-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	invalid := validDrill("drill-1")
	invalid.OptimalChoice = "E"
	assert.ErrorIs(t, svc.Update(ctx, &invalid), domain.ErrValidation)

	missing := validDrill("nope")
	assert.ErrorIs(t, svc.Update(ctx, &missing), store.ErrDrillNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc, _ := newTestService(validDrill("drill-1"))
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "drill-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "drill-1"), store.ErrDrillNotFound)
}
