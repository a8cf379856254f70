package tokenclass

import (
	"context"
	"sync"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
)

// InMemory holds token classes for the memory backend and tests.
type InMemory struct {
	mu      sync.RWMutex
	classes map[domain.TokenClassID]*models.TokenClass
	lastID  domain.TokenClassID
}

func NewInMemory() *InMemory {
	return &InMemory{classes: make(map[domain.TokenClassID]*models.TokenClass)}
}

// Create assigns the next id and stores a copy of tc.
func (s *InMemory) Create(_ context.Context, tc *models.TokenClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	tc.ID = s.lastID
	s.classes[tc.ID] = clone(tc)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.TokenClassID) (*models.TokenClass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tc, ok := s.classes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(tc), nil
}

func clone(tc *models.TokenClass) *models.TokenClass {
	cp := *tc
	cp.Features = append([]byte(nil), tc.Features...)
	return &cp
}
