package drill

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/domain/calibration"
	"github.com/proevals/proevals-api/internal/domain/quota"
	"github.com/proevals/proevals-api/internal/domain/srs"
	"github.com/proevals/proevals-api/internal/domain/streak"
	"github.com/proevals/proevals-api/internal/platform/logger"
	"github.com/proevals/proevals-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	userStore     store.UserStore
	drillStore    store.DrillStore
	progressStore store.ProgressStore
	srsService    srs.Service
	quotaParams   *quota.Params
	streakParams  *streak.Params
	logger        *slog.Logger

	timeFunc func() time.Time // Injectable for testing
	intn     func(n int) int  // Injectable for deterministic selection tests
}

// NewService creates a new drill scheduling Service.
func NewService(
	userStore store.UserStore,
	drillStore store.DrillStore,
	progressStore store.ProgressStore,
	srsService srs.Service,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if drillStore == nil {
		panic("drillStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		userStore:     userStore,
		drillStore:    drillStore,
		progressStore: progressStore,
		srsService:    srsService,
		quotaParams:   quota.NewDefaultParams(),
		streakParams:  streak.NewDefaultParams(),
		logger:        logger.With(slog.String("component", "drill_service")),
		timeFunc:      time.Now,
		intn:          rand.Intn,
	}
}

// NextDrill implements Service.NextDrill.
func (s *serviceImpl) NextDrill(
	ctx context.Context,
	userID uuid.UUID,
	desiredLevel domain.Level,
) (*domain.Drill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	now := s.timeFunc()

	// Priority 1: the quota gate. Selection is where over-quota users are
	// refused; the quota manager itself only reports.
	status := quota.Compute(user.Plan, progress.DailyDrillCompletions, now, s.quotaParams)
	if status.Exhausted() {
		log.Debug("quota exhausted", slog.String("user_id", userID.String()))
		return nil, ErrQuotaExhausted
	}

	bank, err := s.drillStore.GetBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drill bank: %w", err)
	}

	targetLevel := desiredLevel
	if targetLevel == "" {
		targetLevel = user.Level
	}

	var forLevel []domain.Drill
	for _, d := range bank {
		if d.TargetLevel == targetLevel {
			forLevel = append(forLevel, d)
		}
	}
	if len(forLevel) == 0 {
		log.Debug("no drills at target level",
			slog.String("user_id", userID.String()),
			slog.String("level", string(targetLevel)))
		return nil, ErrNoDrillAvailable
	}

	// Priority 2: unseen drills, uniformly at random.
	var unseen []domain.Drill
	for _, d := range forLevel {
		if _, attempted := progress.AttemptFor(d.ID); !attempted {
			unseen = append(unseen, d)
		}
	}
	if len(unseen) > 0 {
		chosen := unseen[s.intn(len(unseen))]
		return &chosen, nil
	}

	// Priority 3: attempted drills at the level that are due, oldest due
	// first. No dues means the user is caught up.
	byID := make(map[string]domain.Drill, len(forLevel))
	for _, d := range forLevel {
		byID[d.ID] = d
	}

	var due []domain.DrillAttempt
	for _, a := range progress.AttemptsByTime() {
		if _, ok := byID[a.DrillID]; !ok {
			continue
		}
		if s.srsService.IsDue(a, now) {
			due = append(due, a)
		}
	}
	if len(due) == 0 {
		return nil, ErrNoDrillAvailable
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextShowAt.Equal(due[j].NextShowAt) {
			return due[i].NextShowAt.Before(due[j].NextShowAt)
		}
		return due[i].DrillID < due[j].DrillID
	})

	chosen := byID[due[0].DrillID]
	return &chosen, nil
}

// RecordAttempt implements Service.RecordAttempt.
func (s *serviceImpl) RecordAttempt(
	ctx context.Context,
	userID uuid.UUID,
	sub AttemptSubmission,
) (*AttemptResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if sub.DrillID == "" {
		return nil, fmt.Errorf("%w: drill ID is required", ErrInvalidAttempt)
	}
	if sub.SelectedOption != "" && !sub.SelectedOption.IsValid() {
		return nil, fmt.Errorf("%w: selected option %q", ErrInvalidAttempt, sub.SelectedOption)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	d, err := s.drillStore.GetByID(ctx, sub.DrillID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDrillNotFound
		}
		return nil, fmt.Errorf("failed to load drill: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	now := s.timeFunc()

	// An expired answer timer submits the deterministic default through
	// this same path: no selection, zero confidence, incorrect.
	selected := sub.SelectedOption
	confidence := calibration.Clamp(sub.Confidence)
	if selected == "" {
		confidence = 0
	}

	isCorrect := selected != "" && selected == d.OptimalChoice

	outcome := OutcomeIncorrect
	switch {
	case isCorrect:
		outcome = OutcomeOptimal
	case selected != "" && d.StrategicAlternative != "" && selected == d.StrategicAlternative:
		// Displayed as a softer outcome; scored as incorrect.
		outcome = OutcomeStrategicAlternative
	}

	// Streaks advance before the attempt map changes: the session streak
	// compares against the most recent prior attempt.
	last, hasPrior := progress.LastAttempt()
	session := streak.AdvanceSession(
		streak.Session{Current: progress.CurrentStreak, Longest: progress.LongestStreak},
		last.AttemptedAt, hasPrior, now, s.streakParams,
	)
	progress.CurrentStreak = session.Current
	progress.LongestStreak = session.Longest

	daily := streak.AdvanceDaily(
		streak.Daily{
			Current: progress.CurrentDailyStreak,
			Longest: progress.LongestDailyStreak,
			LastDay: progress.LastStreakDay,
		},
		now,
	)
	progress.CurrentDailyStreak = daily.Current
	progress.LongestDailyStreak = daily.Longest
	progress.LastStreakDay = daily.LastDay

	// Reschedule: the prior attempt on this drill (if any) carries the
	// previous interval in its timestamps.
	var prev *domain.DrillAttempt
	if existing, ok := progress.AttemptFor(sub.DrillID); ok {
		prev = &existing
	}
	nextShowAt := s.srsService.Schedule(prev, isCorrect, now)

	attempt := domain.DrillAttempt{
		DrillID:          sub.DrillID,
		SelectedOption:   selected,
		IsCorrect:        isCorrect,
		Confidence:       confidence,
		CalibrationScore: calibration.Score(confidence, isCorrect),
		AttemptedAt:      now,
		NextShowAt:       nextShowAt,
		LevelAtAttempt:   user.Level,
	}
	progress.UpsertAttempt(attempt)

	// Quota markers are free-tier only; unlimited plans skip the
	// bookkeeping entirely.
	if !user.Plan.Unlimited() {
		progress.AddCompletion(sub.DrillID, now, s.quotaParams.RetentionWindow)
	}

	if err := s.progressStore.Put(ctx, userID, progress); err != nil {
		return nil, fmt.Errorf("failed to persist progress: %w", err)
	}

	log.Debug("attempt recorded",
		slog.String("user_id", userID.String()),
		slog.String("drill_id", sub.DrillID),
		slog.String("outcome", string(outcome)),
		slog.Int("calibration_score", attempt.CalibrationScore))

	return &AttemptResult{Attempt: attempt, Outcome: outcome, Progress: progress}, nil
}

// QuotaStatus implements Service.QuotaStatus.
func (s *serviceImpl) QuotaStatus(ctx context.Context, userID uuid.UUID) (quota.Status, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return quota.Status{}, fmt.Errorf("failed to load user: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return quota.Status{}, fmt.Errorf("failed to load progress: %w", err)
	}

	return quota.Compute(user.Plan, progress.DailyDrillCompletions, s.timeFunc(), s.quotaParams), nil
}

// ToggleSaved implements Service.ToggleSaved.
func (s *serviceImpl) ToggleSaved(ctx context.Context, userID uuid.UUID, drillID string) (bool, error) {
	if _, err := s.drillStore.GetByID(ctx, drillID); err != nil {
		if store.IsNotFoundError(err) {
			return false, ErrDrillNotFound
		}
		return false, fmt.Errorf("failed to load drill: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load progress: %w", err)
	}

	saved := progress.ToggleSaved(drillID)
	if err := s.progressStore.Put(ctx, userID, progress); err != nil {
		return false, fmt.Errorf("failed to persist progress: %w", err)
	}
	return saved, nil
}

// UserStats implements Service.UserStats. It recomputes aggregates from
// the live attempts and refreshes the personal-best cache, flagging
// metrics that beat the last values shown.
func (s *serviceImpl) UserStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	bank, err := s.drillStore.GetBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drill bank: %w", err)
	}

	categoryOf := make(map[string]domain.Category, len(bank))
	for _, d := range bank {
		categoryOf[d.ID] = d.Category
	}

	total := 0
	count := 0
	catTotals := make(map[domain.Category]int)
	catCounts := make(map[domain.Category]int)
	for _, a := range progress.Attempts {
		total += a.CalibrationScore
		count++
		if cat, ok := categoryOf[a.DrillID]; ok {
			catTotals[cat] += a.CalibrationScore
			catCounts[cat]++
		}
	}

	stats := &Stats{
		SkillScores:        make(map[domain.Category]int, len(catTotals)),
		AttemptCount:       count,
		CurrentStreak:      progress.CurrentStreak,
		LongestStreak:      progress.LongestStreak,
		CurrentDailyStreak: progress.CurrentDailyStreak,
		LongestDailyStreak: progress.LongestDailyStreak,
	}
	if count > 0 {
		stats.OverallScore = int(math.Round(float64(total) / float64(count)))
	}
	for cat, sum := range catTotals {
		stats.SkillScores[cat] = int(math.Round(float64(sum) / float64(catCounts[cat])))
	}

	// The cache only detects new bests; it is never authoritative.
	seen := progress.LastSeenStats
	if seen != nil {
		stats.NewOverallBest = stats.OverallScore > seen.OverallScore
		stats.NewDailyStreakBest = stats.LongestDailyStreak > seen.LongestDailyStreak
	}
	progress.LastSeenStats = &domain.LastSeenStats{
		OverallScore:       stats.OverallScore,
		LongestDailyStreak: stats.LongestDailyStreak,
		SkillScores:        stats.SkillScores,
	}
	if err := s.progressStore.Put(ctx, userID, progress); err != nil {
		return nil, fmt.Errorf("failed to persist progress: %w", err)
	}

	return stats, nil
}
