package memory

import (
	"context"
	"sync"

	audit "supplyledger/pkg/platform/audit"
)

// InMemoryStore is a journal for tests and the memory backend. It also serves
// as the outbox so the relay runs the same way against both backends.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    []audit.Event
	published uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.published = 0
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) (audit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Seq = uint64(len(s.events)) + 1
	s.events = append(s.events, event)
	return event, nil
}

func (s *InMemoryStore) ListAfter(_ context.Context, after uint64, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window(after, limit), nil
}

// ListAll returns the full journal in sequence order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

func (s *InMemoryStore) ListUnpublished(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window(s.published, limit), nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, upTo uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upTo > s.published {
		s.published = min(upTo, uint64(len(s.events)))
	}
	return nil
}

// window must be called with the lock held; Seq n lives at index n-1.
func (s *InMemoryStore) window(after uint64, limit int) []audit.Event {
	total := uint64(len(s.events))
	if after >= total {
		return []audit.Event{}
	}
	end := total
	if limit > 0 && after+uint64(limit) < end {
		end = after + uint64(limit)
	}
	return append([]audit.Event{}, s.events[after:end]...)
}
