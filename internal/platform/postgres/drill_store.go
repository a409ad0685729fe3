package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

// PostgresDrillStore implements the store.DrillStore interface
// using a PostgreSQL database as the storage backend.
//
// Drills are stored as one JSONB payload per row, with the target level
// and skill category lifted into columns for filtered reads. It takes a
// *sql.DB rather than store.DBTX because ReplaceBank needs its own
// transaction.
type PostgresDrillStore struct {
	db *sql.DB
}

// NewPostgresDrillStore creates a new PostgreSQL implementation of the
// DrillStore interface.
func NewPostgresDrillStore(db *sql.DB) *PostgresDrillStore {
	return &PostgresDrillStore{
		db: db,
	}
}

// Ensure PostgresDrillStore implements store.DrillStore interface
var _ store.DrillStore = (*PostgresDrillStore)(nil)

// GetBank implements store.DrillStore.GetBank
func (s *PostgresDrillStore) GetBank(ctx context.Context) ([]domain.Drill, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM drills ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query drill bank: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bank []domain.Drill
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan drill row: %w", err)
		}
		var d domain.Drill
		if err := json.Unmarshal(payload, &d); err != nil {
			return nil, fmt.Errorf("failed to decode drill payload: %w", err)
		}
		bank = append(bank, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drill rows: %w", err)
	}
	return bank, nil
}

// GetByID implements store.DrillStore.GetByID
func (s *PostgresDrillStore) GetByID(ctx context.Context, id string) (*domain.Drill, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM drills WHERE id = $1", id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDrillNotFound
		}
		return nil, fmt.Errorf("failed to query drill: %w", err)
	}

	var d domain.Drill
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("failed to decode drill payload: %w", err)
	}
	return &d, nil
}

// Put implements store.DrillStore.Put
func (s *PostgresDrillStore) Put(ctx context.Context, drill *domain.Drill) error {
	payload, err := json.Marshal(drill)
	if err != nil {
		return fmt.Errorf("failed to encode drill: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drills (id, target_pm_level, skill_category, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET target_pm_level = EXCLUDED.target_pm_level,
		    skill_category = EXCLUDED.skill_category,
		    payload = EXCLUDED.payload`,
		drill.ID, drill.TargetLevel, drill.Category, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert drill: %w", err)
	}
	return nil
}

// Delete implements store.DrillStore.Delete
func (s *PostgresDrillStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM drills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete drill: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return store.ErrDrillNotFound
	}
	return nil
}

// ReplaceBank implements store.DrillStore.ReplaceBank. The truncate and
// reload run in one transaction so readers never observe a partial bank.
func (s *PostgresDrillStore) ReplaceBank(ctx context.Context, drills []domain.Drill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM drills"); err != nil {
		return fmt.Errorf("failed to clear drill bank: %w", err)
	}

	for i := range drills {
		d := &drills[i]
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode drill %s: %w", d.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO drills (id, target_pm_level, skill_category, payload)
			VALUES ($1, $2, $3, $4)`,
			d.ID, d.TargetLevel, d.Category, payload,
		); err != nil {
			return fmt.Errorf("failed to insert drill %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit drill bank replacement: %w", err)
	}
	return nil
}
