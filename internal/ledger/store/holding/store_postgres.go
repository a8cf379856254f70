package holding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
	txcontext "supplyledger/pkg/platform/tx"
)

// PostgresStore keeps balances and owned_assets rows. Zero balances are
// deleted rather than stored.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Balance(ctx context.Context, token domain.TokenClassID, principal domain.Principal) (uint64, error) {
	query := `SELECT amount FROM balances WHERE token_class_id = $1 AND principal = $2`
	var amount int64
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, int64(token), principal.String()).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return uint64(amount), nil
}

func (s *PostgresStore) SetBalance(ctx context.Context, token domain.TokenClassID, principal domain.Principal, amount uint64) error {
	exec := txcontext.Executor(ctx, s.db)
	if amount == 0 {
		if _, err := exec.ExecContext(ctx,
			`DELETE FROM balances WHERE token_class_id = $1 AND principal = $2`,
			int64(token), principal.String(),
		); err != nil {
			return fmt.Errorf("clear balance: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO balances (token_class_id, principal, amount) VALUES ($1, $2, $3)
		ON CONFLICT (token_class_id, principal) DO UPDATE SET amount = EXCLUDED.amount
	`
	if _, err := exec.ExecContext(ctx, query, int64(token), principal.String(), int64(amount)); err != nil {
		return fmt.Errorf("write balance: %w", err)
	}
	return nil
}

func (s *PostgresStore) Holders(ctx context.Context, token domain.TokenClassID) ([]models.Holding, error) {
	query := `
		SELECT token_class_id, principal, amount FROM balances
		WHERE token_class_id = $1 AND amount > 0
		ORDER BY principal
	`
	return s.queryHoldings(ctx, query, int64(token))
}

func (s *PostgresStore) HoldingsOf(ctx context.Context, principal domain.Principal) ([]models.Holding, error) {
	query := `
		SELECT token_class_id, principal, amount FROM balances
		WHERE principal = $1 AND amount > 0
		ORDER BY token_class_id
	`
	return s.queryHoldings(ctx, query, principal.String())
}

func (s *PostgresStore) queryHoldings(ctx context.Context, query string, arg any) ([]models.Holding, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	out := []models.Holding{}
	for rows.Next() {
		var (
			token, amount int64
			principal     string
		)
		if err := rows.Scan(&token, &principal, &amount); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		out = append(out, models.Holding{
			TokenClassID: domain.TokenClassID(token),
			Principal:    domain.Principal(principal),
			Amount:       uint64(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddOwned(ctx context.Context, principal domain.Principal, token domain.TokenClassID) error {
	query := `
		INSERT INTO owned_assets (principal, token_class_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, principal.String(), int64(token)); err != nil {
		return fmt.Errorf("index owned asset: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveOwned(ctx context.Context, principal domain.Principal, token domain.TokenClassID) error {
	query := `DELETE FROM owned_assets WHERE principal = $1 AND token_class_id = $2`
	if _, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, principal.String(), int64(token)); err != nil {
		return fmt.Errorf("unindex owned asset: %w", err)
	}
	return nil
}

func (s *PostgresStore) Owned(ctx context.Context, principal domain.Principal) ([]domain.TokenClassID, error) {
	query := `SELECT token_class_id FROM owned_assets WHERE principal = $1 ORDER BY token_class_id`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, principal.String())
	if err != nil {
		return nil, fmt.Errorf("list owned assets: %w", err)
	}
	defer rows.Close()

	out := []domain.TokenClassID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owned asset: %w", err)
		}
		out = append(out, domain.TokenClassID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned assets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ReplaceOwned(ctx context.Context, principal domain.Principal, ids []domain.TokenClassID) error {
	exec := txcontext.Executor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM owned_assets WHERE principal = $1`, principal.String()); err != nil {
		return fmt.Errorf("clear owned assets: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	query := `
		INSERT INTO owned_assets (principal, token_class_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, principal.String(), pq.Array(raw)); err != nil {
		return fmt.Errorf("rebuild owned assets: %w", err)
	}
	return nil
}
