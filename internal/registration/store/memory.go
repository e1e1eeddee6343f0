// Package store persists registration records. Records are append-only from
// this service's point of view: inserted once, never mutated afterwards.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shulchan/internal/registration/models"
	"shulchan/pkg/sentinel"
)

// MemoryStore keeps registrations in a map. Default backend for development
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Registration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.Registration)}
}

func (s *MemoryStore) Insert(_ context.Context, reg models.Registration) (models.Registration, error) {
	reg.ID = uuid.NewString()
	reg.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[reg.ID] = reg
	return reg, nil
}

// FindByID is not part of the orchestrator's contract; tests and tooling use
// it to inspect what was persisted.
func (s *MemoryStore) FindByID(_ context.Context, id string) (models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if reg, ok := s.records[id]; ok {
		return reg, nil
	}
	return models.Registration{}, sentinel.ErrNotFound
}

// Len reports how many records were inserted.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
