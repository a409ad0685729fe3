package content

import (
	"context"
	"sync"

	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

// fakeDrillStore is an in-memory store.DrillStore for tests.
type fakeDrillStore struct {
	mu     sync.Mutex
	drills map[string]domain.Drill
}

func newFakeDrillStore(drills ...domain.Drill) *fakeDrillStore {
	s := &fakeDrillStore{drills: make(map[string]domain.Drill)}
	for _, d := range drills {
		s.drills[d.ID] = d
	}
	return s
}

func (s *fakeDrillStore) GetBank(ctx context.Context) ([]domain.Drill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Drill, 0, len(s.drills))
	for _, d := range s.drills {
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeDrillStore) GetByID(ctx context.Context, id string) (*domain.Drill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drills[id]
	if !ok {
		return nil, store.ErrDrillNotFound
	}
	return &d, nil
}

func (s *fakeDrillStore) Put(ctx context.Context, drill *domain.Drill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drills[drill.ID] = *drill
	return nil
}

func (s *fakeDrillStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drills[id]; !ok {
		return store.ErrDrillNotFound
	}
	delete(s.drills, id)
	return nil
}

func (s *fakeDrillStore) ReplaceBank(ctx context.Context, drills []domain.Drill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drills = make(map[string]domain.Drill, len(drills))
	for _, d := range drills {
		s.drills[d.ID] = d
	}
	return nil
}
