package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/platform/logger"
	"github.com/proevals/proevals-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	drillStore store.DrillStore
	logger     *slog.Logger

	timeFunc func() time.Time // Injectable for testing
}

// NewService creates a new content management Service.
func NewService(drillStore store.DrillStore, logger *slog.Logger) Service {
	// Validate inputs
	if drillStore == nil {
		panic("drillStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		drillStore: drillStore,
		logger:     logger.With(slog.String("component", "content_service")),
		timeFunc:   time.Now,
	}
}

// Import implements Service.Import.
func (s *serviceImpl) Import(ctx context.Context, drills []domain.Drill, mode ImportMode) (*Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if mode != ModeAppend && mode != ModeReplace {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrImportRejected, mode)
	}

	current, err := s.drillStore.GetBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drill bank: %w", err)
	}

	// Append mode must avoid colliding with IDs already in the bank;
	// replace mode starts from a clean slate.
	taken := make(map[string]bool)
	if mode == ModeAppend {
		for _, d := range current {
			taken[d.ID] = true
		}
	}

	report := &Report{Mode: string(mode)}
	processed := make([]domain.Drill, 0, len(drills))
	for i, d := range drills {
		if fieldErrs := d.Validate(); len(fieldErrs) > 0 {
			report.Issues = append(report.Issues, Issue{Index: i, Title: d.Title, Fields: fieldErrs})
			continue
		}

		if d.ID == "" || taken[d.ID] {
			oldID := d.ID
			if oldID == "" {
				oldID = "(no ID)"
			}
			d.ID = fmt.Sprintf("drill_%d_%d", s.timeFunc().UnixMilli(), i)
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("drill %q with original ID %q was assigned a new unique ID", d.Title, oldID))
		}
		taken[d.ID] = true
		processed = append(processed, d)
	}

	// All-or-nothing: any invalid drill rejects the whole batch.
	if len(report.Issues) > 0 {
		log.Warn("drill import rejected",
			slog.Int("invalid", len(report.Issues)),
			slog.Int("batch_size", len(drills)))
		return report, issuesError(report.Issues)
	}

	switch mode {
	case ModeReplace:
		if err := s.drillStore.ReplaceBank(ctx, processed); err != nil {
			return nil, fmt.Errorf("failed to replace drill bank: %w", err)
		}
	case ModeAppend:
		for i := range processed {
			if err := s.drillStore.Put(ctx, &processed[i]); err != nil {
				return nil, fmt.Errorf("failed to store drill %s: %w", processed[i].ID, err)
			}
		}
	}

	report.Imported = len(processed)
	log.Info("drill import applied",
		slog.String("mode", string(mode)),
		slog.Int("imported", report.Imported),
		slog.Int("warnings", len(report.Warnings)))
	return report, nil
}

// List implements Service.List.
func (s *serviceImpl) List(ctx context.Context) ([]domain.Drill, error) {
	bank, err := s.drillStore.GetBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drill bank: %w", err)
	}
	return bank, nil
}

// Update implements Service.Update.
func (s *serviceImpl) Update(ctx context.Context, drill *domain.Drill) error {
	if fieldErrs := drill.Validate(); len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, fieldErrs[0])
	}
	if _, err := s.drillStore.GetByID(ctx, drill.ID); err != nil {
		return fmt.Errorf("failed to load drill: %w", err)
	}
	if err := s.drillStore.Put(ctx, drill); err != nil {
		return fmt.Errorf("failed to store drill: %w", err)
	}
	return nil
}

// Delete implements Service.Delete.
func (s *serviceImpl) Delete(ctx context.Context, drillID string) error {
	if err := s.drillStore.Delete(ctx, drillID); err != nil {
		return fmt.Errorf("failed to delete drill: %w", err)
	}
	return nil
}
