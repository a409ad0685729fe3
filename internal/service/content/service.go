// Package content manages the shared drill bank: bulk JSON import with
// field-level validation, single-drill edits, and deletion.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/proevals/proevals-api/internal/domain"
)

// ErrImportRejected indicates a batch failed validation. Imports are
// all-or-nothing: one invalid drill rejects the whole batch and nothing is
// applied.
var ErrImportRejected = errors.New("drill import rejected")

// ImportMode selects how a batch combines with the existing bank.
type ImportMode string

// Recognized import modes.
const (
	// ModeAppend adds the batch to the existing bank.
	ModeAppend ImportMode = "append"

	// ModeReplace discards the existing bank and installs the batch.
	ModeReplace ImportMode = "replace"
)

// Issue is one drill's validation failure within a batch, positioned by
// index and title so authors can locate it in their source JSON.
type Issue struct {
	Index  int                  `json:"index"`
	Title  string               `json:"title"`
	Fields []*domain.FieldError `json:"fields"`
}

// Report summarizes an import. When Issues is non-empty the batch was
// rejected and Imported is 0.
type Report struct {
	Imported int      `json:"imported"`
	Mode     string   `json:"mode"`
	Issues   []Issue  `json:"issues,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Service provides drill bank management operations.
type Service interface {
	// Import validates a batch and applies it per the mode. Drills with
	// missing, colliding or already-taken IDs are assigned fresh IDs,
	// reported as warnings. A batch with any invalid drill is rejected
	// whole: the report carries the issues and the returned error wraps
	// ErrImportRejected.
	Import(ctx context.Context, drills []domain.Drill, mode ImportMode) (*Report, error)

	// List returns the full drill bank.
	List(ctx context.Context) ([]domain.Drill, error)

	// Update validates and overwrites one drill in place.
	Update(ctx context.Context, drill *domain.Drill) error

	// Delete removes one drill from the bank.
	Delete(ctx context.Context, drillID string) error
}

// issuesError renders a rejected batch as an error for log lines; the
// structured detail travels in the Report.
func issuesError(issues []Issue) error {
	return fmt.Errorf("%w: %d invalid drill(s)", ErrImportRejected, len(issues))
}
