package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"supplyledger/internal/registry/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/sentinel"
	txcontext "supplyledger/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists members in PostgreSQL. Ids are allocated as
// MAX(id)+1 inside the writer's transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (id, principal, role, status, created_at, updated_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM members
		RETURNING id
	`
	var id int64
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		m.Principal.String(), m.Role.String(), m.Status.String(), m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("principal %s: %w", m.Principal, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert member: %w", err)
	}
	m.ID = domain.MemberID(id)
	return nil
}

func (s *PostgresStore) FindByPrincipal(ctx context.Context, principal domain.Principal) (*models.Member, error) {
	query := `
		SELECT id, principal, role, status, created_at, updated_at
		FROM members WHERE principal = $1
	`
	m, err := scanMember(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, principal.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find member by principal: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) Update(ctx context.Context, m *models.Member) error {
	query := `UPDATE members SET status = $1, updated_at = $2 WHERE id = $3 AND principal = $4`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		m.Status.String(), m.UpdatedAt, int64(m.ID), m.Principal.String(),
	)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update member rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, status models.Status) ([]*models.Member, error) {
	query := `
		SELECT id, principal, role, status, created_at, updated_at
		FROM members
		WHERE $1 = '' OR status = $1
		ORDER BY id
	`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, status.String())
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	out := []*models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var (
		m                       models.Member
		id                      int64
		principal, role, status string
	)
	if err := row.Scan(&id, &principal, &role, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.ID = domain.MemberID(id)
	m.Principal = domain.Principal(principal)
	m.Role = domain.Role(role)
	m.Status = models.Status(status)
	return &m, nil
}
