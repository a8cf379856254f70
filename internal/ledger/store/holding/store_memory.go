package holding

import (
	"context"
	"sort"
	"sync"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
)

type balanceKey struct {
	token     domain.TokenClassID
	principal domain.Principal
}

// InMemory keeps balances and the owned-assets index for the memory backend.
// Zero balances are removed so the holder list only names real holders.
type InMemory struct {
	mu       sync.RWMutex
	balances map[balanceKey]uint64
	owned    map[domain.Principal]map[domain.TokenClassID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{
		balances: make(map[balanceKey]uint64),
		owned:    make(map[domain.Principal]map[domain.TokenClassID]struct{}),
	}
}

func (s *InMemory) Balance(_ context.Context, token domain.TokenClassID, principal domain.Principal) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[balanceKey{token, principal}], nil
}

func (s *InMemory) SetBalance(_ context.Context, token domain.TokenClassID, principal domain.Principal, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := balanceKey{token, principal}
	if amount == 0 {
		delete(s.balances, key)
		return nil
	}
	s.balances[key] = amount
	return nil
}

// Holders lists the non-zero balances of a class ordered by principal.
func (s *InMemory) Holders(_ context.Context, token domain.TokenClassID) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Holding{}
	for key, amount := range s.balances {
		if key.token == token {
			out = append(out, models.Holding{TokenClassID: token, Principal: key.principal, Amount: amount})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out, nil
}

// HoldingsOf lists a principal's non-zero balances ordered by class id.
func (s *InMemory) HoldingsOf(_ context.Context, principal domain.Principal) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Holding{}
	for key, amount := range s.balances {
		if key.principal == principal {
			out = append(out, models.Holding{TokenClassID: key.token, Principal: principal, Amount: amount})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TokenClassID < out[j].TokenClassID })
	return out, nil
}

func (s *InMemory) AddOwned(_ context.Context, principal domain.Principal, token domain.TokenClassID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.owned[principal]
	if !ok {
		set = make(map[domain.TokenClassID]struct{})
		s.owned[principal] = set
	}
	set[token] = struct{}{}
	return nil
}

func (s *InMemory) RemoveOwned(_ context.Context, principal domain.Principal, token domain.TokenClassID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.owned[principal]
	if !ok {
		return nil
	}
	delete(set, token)
	if len(set) == 0 {
		delete(s.owned, principal)
	}
	return nil
}

// Owned returns the indexed class ids for principal in ascending order.
func (s *InMemory) Owned(_ context.Context, principal domain.Principal) ([]domain.TokenClassID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TokenClassID, 0, len(s.owned[principal]))
	for id := range s.owned[principal] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ReplaceOwned overwrites principal's index entries with ids.
func (s *InMemory) ReplaceOwned(_ context.Context, principal domain.Principal, ids []domain.TokenClassID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		delete(s.owned, principal)
		return nil
	}
	set := make(map[domain.TokenClassID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.owned[principal] = set
	return nil
}
