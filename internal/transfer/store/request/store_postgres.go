package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"supplyledger/internal/transfer/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
	txcontext "supplyledger/pkg/platform/tx"
)

// PostgresStore persists transfer requests. Ids are allocated as MAX(id)+1
// inside the writer's transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *models.TransferRequest) error {
	query := `
		INSERT INTO transfers (id, from_principal, to_principal, token_class_id, amount, status, created_at, updated_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6, $7 FROM transfers
		RETURNING id
	`
	var id int64
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		t.From.String(), t.To.String(), int64(t.TokenID), int64(t.Amount), t.Status.String(), t.CreatedAt, t.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	t.ID = domain.TransferID(id)
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.TransferID) (*models.TransferRequest, error) {
	query := `
		SELECT id, from_principal, to_principal, token_class_id, amount, status, created_at, updated_at
		FROM transfers WHERE id = $1
	`
	var (
		t                    models.TransferRequest
		rowID, token, amount int64
		from, to, status     string
	)
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, int64(id)).Scan(
		&rowID, &from, &to, &token, &amount, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find transfer: %w", err)
	}
	t.ID = domain.TransferID(rowID)
	t.From = domain.Principal(from)
	t.To = domain.Principal(to)
	t.TokenID = domain.TokenClassID(token)
	t.Amount = uint64(amount)
	t.Status = models.Status(status)
	return &t, nil
}

func (s *PostgresStore) Update(ctx context.Context, t *models.TransferRequest) error {
	query := `UPDATE transfers SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, t.Status.String(), t.UpdatedAt, int64(t.ID))
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transfer rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListForPrincipal(ctx context.Context, principal domain.Principal) ([]domain.TransferID, error) {
	query := `
		SELECT id FROM transfers
		WHERE from_principal = $1 OR to_principal = $1
		ORDER BY id
	`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, principal.String())
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	out := []domain.TransferID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transfer id: %w", err)
		}
		out = append(out, domain.TransferID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return out, nil
}
