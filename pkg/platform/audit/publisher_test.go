package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/audit/store/memory"
	"supplyledger/pkg/requestcontext"
)

func TestPublisher_EmitStampsRequestMetadata(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")

	stored, err := pub.Emit(ctx, audit.TokenClassMinted(1, "0xp", "Grain", 100))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stored.Seq)
	assert.Equal(t, now, stored.Timestamp)
	assert.Equal(t, "req-1", stored.RequestID)

	events, err := pub.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.KindTokenClassMinted, events[0].Kind)
	assert.Equal(t, "0xp", events[0].Key())
}

func TestEvent_KeyFallsBackToSender(t *testing.T) {
	e := audit.TransferRequested(7, "0xfrom", "0xto", 1, 5)
	assert.Equal(t, "0xfrom", e.Key())
}
