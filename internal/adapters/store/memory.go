package store

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"errors"
	"sync"
	"time"
)

const DefaultTTL = 30 * time.Minute

type memoryEntry struct {
	result    *domain.PlanningResult
	expiresAt time.Time
}

// MemoryStore keeps planning results in process memory until their TTL lapses.
// Expired entries are dropped lazily on access and on every Save.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, result *domain.PlanningResult) error {
	if result == nil || result.ID == "" {
		return errors.New("memory store: result must have an id")
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[result.ID] = memoryEntry{result: result, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.PlanningResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil, domain.ErrPlanNotFound
	}
	return e.result, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len reports the number of held results, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
