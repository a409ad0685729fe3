package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/platform/logger"
	"github.com/proevals/proevals-api/internal/service/auth"
	"github.com/proevals/proevals-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	userStore     store.UserStore
	progressStore store.ProgressStore
	hasher        auth.PasswordHasher
	verifier      auth.PasswordVerifier
	logger        *slog.Logger

	timeFunc func() time.Time // Injectable for testing
}

// NewService creates a new account management Service.
func NewService(
	userStore store.UserStore,
	progressStore store.ProgressStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		userStore:     userStore,
		progressStore: progressStore,
		hasher:        hasher,
		verifier:      verifier,
		logger:        logger.With(slog.String("component", "user_service")),
		timeFunc:      time.Now,
	}
}

// Get implements Service.Get.
func (s *serviceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// UpdateProfile implements Service.UpdateProfile.
func (s *serviceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if update.Name != nil {
		u.Name = strings.TrimSpace(*update.Name)
	}
	if update.Level != nil {
		u.Level = *update.Level
	}
	if update.Plan != nil {
		u.Plan = *update.Plan
	}
	u.UpdatedAt = s.timeFunc().UTC()

	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if err := s.userStore.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Debug("profile updated", slog.String("user_id", userID.String()))
	return u, nil
}

// ChangePassword implements Service.ChangePassword.
func (s *serviceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.verifier.Compare(u.HashedPassword, current); err != nil {
		return ErrWrongPassword
	}

	if len(next) < 12 {
		return domain.ErrPasswordTooShort
	}
	if len(next) > 72 {
		return domain.ErrPasswordTooLong
	}

	hashed, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.HashedPassword = hashed
	u.Password = ""
	u.UpdatedAt = s.timeFunc().UTC()

	if err := s.userStore.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("password changed", slog.String("user_id", userID.String()))
	return nil
}

// DeleteAccount implements Service.DeleteAccount. Progress goes first so a
// failure between the two writes cannot orphan progress under a deleted
// user.
func (s *serviceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.progressStore.Delete(ctx, userID); err != nil && !store.IsNotFoundError(err) {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	if err := s.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
