package tx

import (
	"context"
	"sync"
	"time"

	dErrors "supplyledger/pkg/domain-errors"
)

// Runner is the unit-of-work boundary shared by the registry, ledger and
// transfer services. Every mutating operation runs inside RunInTx, which applies
// operations one at a time in a single global order; reads run inside View and
// only ever observe fully committed state.
//
// Both methods are re-entrant: a call made with a context that is already inside
// a unit of work joins it instead of opening a new one. This lets the transfer
// service settle balances through the ledger without nesting locks.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// defaultTxTimeout bounds how long an operation may wait for and hold the writer.
const defaultTxTimeout = 5 * time.Second

type scope int

const (
	scopeNone scope = iota
	scopeRead
	scopeWrite
)

type scopeKey struct{}

func scopeFrom(ctx context.Context) scope {
	if s, ok := ctx.Value(scopeKey{}).(scope); ok {
		return s
	}
	return scopeNone
}

func withScope(ctx context.Context, s scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// MemorySerializer provides the single-writer discipline for in-memory stores
// with one process-wide RWMutex: writers are exclusive, readers share.
type MemorySerializer struct {
	mu      sync.RWMutex
	timeout time.Duration
}

// NewMemorySerializer creates a serializer; a zero timeout selects the default.
func NewMemorySerializer(timeout time.Duration) *MemorySerializer {
	return &MemorySerializer{timeout: timeout}
}

func (s *MemorySerializer) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	switch scopeFrom(ctx) {
	case scopeWrite:
		return fn(ctx)
	case scopeRead:
		return dErrors.New(dErrors.CodeInternal, "write attempted inside a read-only view")
	}

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := s.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check again after acquiring the writer.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(withScope(ctx, scopeWrite))
}

func (s *MemorySerializer) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if scopeFrom(ctx) != scopeNone {
		return fn(ctx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(withScope(ctx, scopeRead))
}
