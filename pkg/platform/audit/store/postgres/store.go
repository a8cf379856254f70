package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	audit "supplyledger/pkg/platform/audit"
	txcontext "supplyledger/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table inside the caller's transaction and
// published to Kafka by the outbox relay. Sequence numbers are allocated as
// MAX(seq)+1, which is gap-free because appends run under the global writer lock.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL journal backed by the outbox table.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes the event to the outbox and returns it with its sequence number.
func (s *Store) Append(ctx context.Context, event audit.Event) (audit.Event, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return audit.Event{}, fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO outbox (seq, id, event_type, aggregate_key, payload, created_at)
		SELECT COALESCE(MAX(seq), 0) + 1, $1, $2, $3, $4, $5 FROM outbox
		RETURNING seq
	`
	var seq int64
	err = txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		uuid.New(),
		string(event.Kind),
		event.Key(),
		payload,
		event.Timestamp,
	).Scan(&seq)
	if err != nil {
		return audit.Event{}, fmt.Errorf("insert outbox entry: %w", err)
	}
	event.Seq = uint64(seq)
	return event, nil
}

// ListAfter returns journal entries with seq > after in order.
func (s *Store) ListAfter(ctx context.Context, after uint64, limit int) ([]audit.Event, error) {
	query := `
		SELECT seq, payload FROM outbox
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2
	`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, int64(after), limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListUnpublished returns entries the relay has not yet delivered, oldest first.
func (s *Store) ListUnpublished(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT seq, payload FROM outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("query unpublished outbox: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// MarkPublished flags every entry up to and including upTo as delivered.
func (s *Store) MarkPublished(ctx context.Context, upTo uint64) error {
	query := `UPDATE outbox SET published_at = NOW() WHERE seq <= $1 AND published_at IS NULL`
	if _, err := s.db.ExecContext(ctx, query, int64(upTo)); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

// limitArg maps a non-positive limit to NULL, which Postgres treats as no limit.
func limitArg(limit int) sql.NullInt64 {
	if limit <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(limit), Valid: true}
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	events := []audit.Event{}
	for rows.Next() {
		var (
			seq     int64
			payload []byte
			event   audit.Event
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("unmarshal outbox payload: %w", err)
		}
		event.Seq = uint64(seq)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox entries: %w", err)
	}
	return events, nil
}
