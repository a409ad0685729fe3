package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	userStore     store.UserStore
	drillStore    store.DrillStore
	progressStore store.ProgressStore
	params        *Params
	logger        *slog.Logger

	timeFunc func() time.Time // Injectable for testing
}

// NewService creates a new leaderboard Service.
func NewService(
	userStore store.UserStore,
	drillStore store.DrillStore,
	progressStore store.ProgressStore,
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
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		userStore:     userStore,
		drillStore:    drillStore,
		progressStore: progressStore,
		params:        NewDefaultParams(),
		logger:        logger.With(slog.String("component", "leaderboard_service")),
		timeFunc:      time.Now,
	}
}

// standing is one user's aggregate before ranks are assigned.
type standing struct {
	user         *domain.User
	score        int
	attemptCount int
}

// attemptFilter decides which of a user's attempts count toward a ranking.
type attemptFilter func(a domain.DrillAttempt) bool

// Global implements Service.Global.
func (s *serviceImpl) Global(ctx context.Context, period Period) ([]Entry, error) {
	filter, minAttempts, err := s.globalFilter(period)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, filter, minAttempts)
}

// Skill implements Service.Skill.
func (s *serviceImpl) Skill(ctx context.Context, category domain.Category) ([]Entry, error) {
	filter, err := s.skillFilter(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, filter, s.params.SkillMinAttempts)
}

// GlobalStatus implements Service.GlobalStatus.
func (s *serviceImpl) GlobalStatus(ctx context.Context, userID uuid.UUID, period Period) (*UserStatus, error) {
	filter, minAttempts, err := s.globalFilter(period)
	if err != nil {
		return nil, err
	}
	return s.status(ctx, userID, filter, minAttempts)
}

// SkillStatus implements Service.SkillStatus.
func (s *serviceImpl) SkillStatus(ctx context.Context, userID uuid.UUID, category domain.Category) (*UserStatus, error) {
	filter, err := s.skillFilter(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.status(ctx, userID, filter, s.params.SkillMinAttempts)
}

func (s *serviceImpl) globalFilter(period Period) (attemptFilter, int, error) {
	window, err := period.Window()
	if err != nil {
		return nil, 0, err
	}
	cutoff := s.timeFunc().Add(-window)
	return func(a domain.DrillAttempt) bool {
		return a.AttemptedAt.After(cutoff)
	}, s.params.GlobalMinAttempts, nil
}

func (s *serviceImpl) skillFilter(ctx context.Context, category domain.Category) (attemptFilter, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	bank, err := s.drillStore.GetBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drill bank: %w", err)
	}
	inCategory := make(map[string]bool, len(bank))
	for _, d := range bank {
		if d.Category == category {
			inCategory[d.ID] = true
		}
	}
	return func(a domain.DrillAttempt) bool {
		return inCategory[a.DrillID]
	}, nil
}

// rank computes the full ordered standings for one ranking mode.
func (s *serviceImpl) rank(ctx context.Context, filter attemptFilter, minAttempts int) ([]Entry, error) {
	standings, err := s.standings(ctx, filter, minAttempts)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(standings))
	for i, st := range standings {
		entries = append(entries, Entry{
			Rank:         i + 1,
			UserID:       st.user.ID,
			Name:         st.user.Name,
			Level:        st.user.Level,
			Score:        st.score,
			AttemptCount: st.attemptCount,
		})
	}
	return entries, nil
}

// status locates one user within a ranking, or reports how far they are
// from eligibility.
func (s *serviceImpl) status(ctx context.Context, userID uuid.UUID, filter attemptFilter, minAttempts int) (*UserStatus, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	standings, err := s.standings(ctx, filter, minAttempts)
	if err != nil {
		return nil, err
	}
	for i, st := range standings {
		if st.user.ID == userID {
			return &UserStatus{
				Ranked:       true,
				Rank:         i + 1,
				Score:        st.score,
				AttemptCount: st.attemptCount,
			}, nil
		}
	}

	// Not ranked: recount this user's qualifying attempts for the
	// needs-N-more report.
	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	count, score := aggregate(progress, filter)
	return &UserStatus{
		Ranked:       false,
		Score:        score,
		AttemptCount: count,
		DrillsNeeded: minAttempts - count,
	}, nil
}

// standings loads every user's progress, aggregates qualifying attempts,
// drops ineligible users and sorts the rest. Sort order: average score
// descending, then attempt count descending, then user ID ascending so the
// output is stable across the unordered population read.
func (s *serviceImpl) standings(ctx context.Context, filter attemptFilter, minAttempts int) ([]standing, error) {
	users, err := s.userStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	standings := make([]standing, 0, len(users))
	for _, u := range users {
		progress, err := s.progressStore.Get(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress for user %s: %w", u.ID, err)
		}
		count, score := aggregate(progress, filter)
		if count < minAttempts {
			continue
		}
		standings = append(standings, standing{user: u, score: score, attemptCount: count})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].score != standings[j].score {
			return standings[i].score > standings[j].score
		}
		if standings[i].attemptCount != standings[j].attemptCount {
			return standings[i].attemptCount > standings[j].attemptCount
		}
		return standings[i].user.ID.String() < standings[j].user.ID.String()
	})
	return standings, nil
}

// aggregate counts a user's qualifying attempts and computes their mean
// calibration score, rounded to the nearest integer.
func aggregate(progress *domain.UserProgress, filter attemptFilter) (count, score int) {
	total := 0
	for _, a := range progress.Attempts {
		if !filter(a) {
			continue
		}
		total += a.CalibrationScore
		count++
	}
	if count > 0 {
		score = int(math.Round(float64(total) / float64(count)))
	}
	return count, score
}
