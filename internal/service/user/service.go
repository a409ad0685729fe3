// Package user handles account lifecycle operations beyond authentication:
// profile edits, plan changes, password changes and account deletion.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
)

// Common error types for the user service.
var (
	// ErrWrongPassword indicates the supplied current password did not
	// match during a password change.
	ErrWrongPassword = errors.New("current password is incorrect")
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// corresponding field unchanged.
type ProfileUpdate struct {
	Name  *string
	Level *domain.Level
	Plan  *domain.Plan
}

// Service provides account management operations.
type Service interface {
	// Get returns the user's account record.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies the non-nil fields of the update and returns
	// the refreshed record.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// ChangePassword verifies the current password and installs the new
	// one.
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error

	// DeleteAccount removes the user and all their progress. The drill
	// bank is shared content and is untouched.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
