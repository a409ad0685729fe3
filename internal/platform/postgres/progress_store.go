package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
//
// Progress is an aggregate root read and written whole, so it is stored
// as one JSONB document per user rather than normalized tables. The row
// references users(id) with ON DELETE CASCADE.
type PostgresProgressStore struct {
	db store.DBTX
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface.
func NewPostgresProgressStore(db store.DBTX) *PostgresProgressStore {
	return &PostgresProgressStore{
		db: db,
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Get implements store.ProgressStore.Get. A user with no stored progress
// gets the zero-valued default, not an error.
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM user_progress WHERE user_id = $1", userID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewProgress(userID), nil
		}
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}

	var progress domain.UserProgress
	if err := json.Unmarshal(doc, &progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress document: %w", err)
	}
	return &progress, nil
}

// Put implements store.ProgressStore.Put. Last write wins; the single
// active writer per user is assumed upstream.
func (s *PostgresProgressStore) Put(ctx context.Context, userID uuid.UUID, progress *domain.UserProgress) error {
	doc, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_progress (user_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, doc, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// Delete implements store.ProgressStore.Delete. Absent progress is fine;
// the cascade from a user deletion may already have removed the row.
func (s *PostgresProgressStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM user_progress WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}
