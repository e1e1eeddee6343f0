package counter

import (
	"context"
	"sync"

	"shulchan/internal/ratelimit/models"
)

// MemoryStore keeps counters in a map. Default backend for development and
// tests; counters do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]models.Counter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]models.Counter)}
}

// Get returns the counter for idHash, or nil when none exists.
func (s *MemoryStore) Get(_ context.Context, idHash string) (*models.Counter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.counters[idHash]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *MemoryStore) Insert(_ context.Context, c models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[c.IDHash] = c
	return nil
}

func (s *MemoryStore) Update(_ context.Context, c models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[c.IDHash] = c
	return nil
}
