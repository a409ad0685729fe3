package leaderboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

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

// fakeProgressStore is an in-memory store.ProgressStore for tests.
type fakeProgressStore struct {
	mu   sync.Mutex
	data map[uuid.UUID]*domain.UserProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{data: make(map[uuid.UUID]*domain.UserProgress)}
}

func (s *fakeProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		return domain.NewProgress(userID), nil
	}
	return p, nil
}

func (s *fakeProgressStore) Put(ctx context.Context, userID uuid.UUID, progress *domain.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = progress
	return nil
}

func (s *fakeProgressStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}
