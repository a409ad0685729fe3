package store

import (
	"context"

	"github.com/proevals/proevals-api/internal/domain"
)

// DrillStore defines the interface for the shared drill content bank.
// Drills are read-only to the scheduling core; writes come only from the
// import tooling.
type DrillStore interface {
	// GetBank retrieves the entire drill bank.
	GetBank(ctx context.Context) ([]domain.Drill, error)

	// GetByID retrieves a drill by its ID.
	// Returns ErrDrillNotFound if the drill does not exist.
	GetByID(ctx context.Context, id string) (*domain.Drill, error)

	// Put inserts or replaces a drill in the bank. Drills must already be
	// validated; stores do not re-run content validation.
	Put(ctx context.Context, drill *domain.Drill) error

	// Delete removes a drill from the bank.
	// Returns ErrDrillNotFound if the drill does not exist.
	Delete(ctx context.Context, id string) error

	// ReplaceBank atomically replaces the entire bank with the given
	// drills. Either all drills are applied or none.
	ReplaceBank(ctx context.Context, drills []domain.Drill) error
}
