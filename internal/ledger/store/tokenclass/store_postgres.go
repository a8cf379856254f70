package tokenclass

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
	txcontext "supplyledger/pkg/platform/tx"
)

// PostgresStore persists token classes. A root class stores NULL as its
// parent so the foreign key can reference real rows only.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, tc *models.TokenClass) error {
	query := `
		INSERT INTO token_classes (id, creator, name, total_supply, features, kind, parent_id, created_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6, $7 FROM token_classes
		RETURNING id
	`
	var parent sql.NullInt64
	if !tc.IsRoot() {
		parent = sql.NullInt64{Int64: int64(tc.ParentID), Valid: true}
	}
	features := tc.Features
	if features == nil {
		features = []byte{}
	}
	var id int64
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		tc.Creator.String(), tc.Name, int64(tc.TotalSupply), features, tc.Kind.String(), parent, tc.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert token class: %w", err)
	}
	tc.ID = domain.TokenClassID(id)
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error) {
	query := `
		SELECT id, creator, name, total_supply, features, kind, parent_id, created_at
		FROM token_classes WHERE id = $1
	`
	var (
		tc            models.TokenClass
		rowID, supply int64
		creator, kind string
		parent        sql.NullInt64
	)
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, int64(id)).Scan(
		&rowID, &creator, &tc.Name, &supply, &tc.Features, &kind, &parent, &tc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find token class: %w", err)
	}
	tc.ID = domain.TokenClassID(rowID)
	tc.Creator = domain.Principal(creator)
	tc.TotalSupply = uint64(supply)
	tc.Kind = models.Kind(kind)
	if parent.Valid {
		tc.ParentID = domain.TokenClassID(parent.Int64)
	}
	return &tc, nil
}
