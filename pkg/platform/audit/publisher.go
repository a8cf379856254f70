package audit

import (
	"context"
	"log/slog"

	"supplyledger/pkg/requestcontext"
)

// Publisher stamps notifications with request metadata and appends them to the
// journal. It is append-only; callers emit as the last step of their unit of
// work so the entry commits together with the state it describes.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

type PublisherOption func(*Publisher)

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event Event) (Event, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	stored, err := p.store.Append(ctx, event)
	if err != nil {
		return Event{}, err
	}
	if p.logger != nil {
		p.logger.InfoContext(ctx, string(stored.Kind),
			"log_type", "audit",
			"event", stored.Kind,
			"seq", stored.Seq,
			"principal", stored.Key(),
			"request_id", stored.RequestID,
		)
	}
	return stored, nil
}

func (p *Publisher) List(ctx context.Context, after uint64, limit int) ([]Event, error) {
	return p.store.ListAfter(ctx, after, limit)
}
