package request

import (
	"context"
	"sync"

	"supplyledger/internal/transfer/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
)

// InMemory holds transfer requests for the memory backend and tests.
type InMemory struct {
	mu          sync.RWMutex
	byID        map[domain.TransferID]*models.TransferRequest
	byPrincipal map[domain.Principal][]domain.TransferID
	lastID      domain.TransferID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:        make(map[domain.TransferID]*models.TransferRequest),
		byPrincipal: make(map[domain.Principal][]domain.TransferID),
	}
}

// Create assigns the next id and indexes the request under both parties.
func (s *InMemory) Create(_ context.Context, t *models.TransferRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	t.ID = s.lastID
	stored := *t
	s.byID[t.ID] = &stored
	s.byPrincipal[t.From] = append(s.byPrincipal[t.From], t.ID)
	s.byPrincipal[t.To] = append(s.byPrincipal[t.To], t.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.TransferID) (*models.TransferRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// Update persists a status change. Parties, token and amount are immutable.
func (s *InMemory) Update(_ context.Context, t *models.TransferRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[t.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	existing.Status = t.Status
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

// ListForPrincipal returns the ids of requests the principal sent or
// received, in creation order.
func (s *InMemory) ListForPrincipal(_ context.Context, principal domain.Principal) ([]domain.TransferID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byPrincipal[principal]
	out := make([]domain.TransferID, len(ids))
	copy(out, ids)
	return out, nil
}
