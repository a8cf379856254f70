package tx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dErrors "supplyledger/pkg/domain-errors"
)

// writerLockKey is the advisory lock every mutating transaction takes first.
// Holding it for the life of the transaction gives all writers one global order.
const writerLockKey int64 = 0x5350_4c44_4752 // "SPLDGR"

// PostgresRunner runs units of work as database transactions.
//
// Writers take a transaction-scoped advisory lock before touching any row and
// run at READ COMMITTED: each statement after the lock sees every previously
// committed writer, which is the single-writer model the services assume.
// SERIALIZABLE would take its snapshot before the lock is granted.
//
// Views run in a read-only REPEATABLE READ transaction so multi-statement
// reads see one consistent snapshot.
type PostgresRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresRunner(db *sql.DB, timeout time.Duration) *PostgresRunner {
	return &PostgresRunner{db: db, timeout: timeout}
}

func (r *PostgresRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		if scopeFrom(ctx) == scopeRead {
			return dErrors.New(dErrors.CodeInternal, "write attempted inside a read-only view")
		}
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, writerLockKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire writer lock")
	}

	if err := fn(withScope(WithTx(ctx, sqlTx), scopeWrite)); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}

func (r *PostgresRunner) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin read transaction")
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(withScope(WithTx(ctx, sqlTx), scopeRead)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit read transaction: %w", err)
	}
	return nil
}

func (r *PostgresRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	timeout := r.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
