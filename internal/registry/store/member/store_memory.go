package member

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"supplyledger/internal/registry/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
)

// InMemory is the member store for the memory backend and tests.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[domain.MemberID]*models.Member
	byKey  map[domain.Principal]domain.MemberID
	lastID domain.MemberID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:  make(map[domain.MemberID]*models.Member),
		byKey: make(map[domain.Principal]domain.MemberID),
	}
}

// Create assigns the next id and stores the member. The counter only advances
// on success.
func (s *InMemory) Create(_ context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKey[m.Principal]; exists {
		return fmt.Errorf("principal %s: %w", m.Principal, sentinel.ErrAlreadyUsed)
	}
	s.lastID++
	m.ID = s.lastID
	stored := *m
	s.byID[m.ID] = &stored
	s.byKey[m.Principal] = m.ID
	return nil
}

func (s *InMemory) FindByPrincipal(_ context.Context, principal domain.Principal) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[principal]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	m := *s.byID[id]
	return &m, nil
}

// Update persists a status change. Role and principal are immutable.
func (s *InMemory) Update(_ context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[m.ID]
	if !ok || existing.Principal != m.Principal {
		return sentinel.ErrNotFound
	}
	existing.Status = m.Status
	existing.UpdatedAt = m.UpdatedAt
	return nil
}

// List returns members in id order, optionally filtered by status.
func (s *InMemory) List(_ context.Context, status models.Status) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Member, 0, len(s.byID))
	for _, m := range s.byID {
		if status != "" && m.Status != status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
