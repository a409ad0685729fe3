package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
)

// ProgressStore defines the interface for per-user progress persistence.
// Progress is the aggregate root: it is read and written whole, key/value
// style, with a single active writer per user (last write wins).
type ProgressStore interface {
	// Get retrieves a user's progress. For a user with no history it
	// returns the zero-valued default, never nil and never an error.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)

	// Put persists a user's complete progress, replacing what was stored.
	Put(ctx context.Context, userID uuid.UUID, progress *domain.UserProgress) error

	// Delete removes a user's progress. Deleting absent progress is not
	// an error; the cascade from account deletion may have removed it.
	Delete(ctx context.Context, userID uuid.UUID) error
}
