// Package outbox relays committed journal entries to the message broker.
package outbox

import (
	"context"
	"log/slog"
	"time"

	audit "supplyledger/pkg/platform/audit"
)

// Producer delivers a batch of events, in order, to the broker. It returns only
// once every event is acknowledged.
type Producer interface {
	Publish(ctx context.Context, events []audit.Event) error
}

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Relay polls the outbox and publishes unpublished entries in sequence order.
// Delivery is at-least-once: a crash between publish and mark re-sends the batch.
type Relay struct {
	outbox    audit.Outbox
	producer  Producer
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func NewRelay(outbox audit.Outbox, producer Producer, opts ...Option) *Relay {
	r := &Relay{
		outbox:    outbox,
		producer:  producer,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drains the outbox every interval until ctx is cancelled. Delivery
// failures are logged and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// Drain publishes batches until the outbox is empty and returns how many
// events were delivered.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	delivered := 0
	for {
		events, err := r.outbox.ListUnpublished(ctx, r.batchSize)
		if err != nil {
			return delivered, err
		}
		if len(events) == 0 {
			return delivered, nil
		}
		if err := r.producer.Publish(ctx, events); err != nil {
			return delivered, err
		}
		last := events[len(events)-1].Seq
		if err := r.outbox.MarkPublished(ctx, last); err != nil {
			return delivered, err
		}
		delivered += len(events)
		r.logger.DebugContext(ctx, "outbox batch published", "count", len(events), "up_to_seq", last)
		if len(events) < r.batchSize {
			return delivered, nil
		}
	}
}
