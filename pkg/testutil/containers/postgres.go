//go:build integration

package containers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"supplyledger/internal/platform/config"
	"supplyledger/internal/platform/database"
)

// ledgerTables lists every table in foreign key order, children first.
var ledgerTables = []string{"outbox", "transfers", "owned_assets", "balances", "token_classes", "members"}

// PostgresContainer is a migrated Postgres instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts Postgres and applies the embedded migrations.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("supplyledger"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := database.Migrate(ctx, url, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	db, err := database.Open(ctx, config.DatabaseConfig{URL: url, MaxOpenConns: 10, MaxIdleConns: 2})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}

	return &PostgresContainer{
		Container: container,
		URL:       url,
		DB:        db,
	}
}

// TruncateTables empties every ledger table. Use between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, "TRUNCATE "+strings.Join(ledgerTables, ", ")+" CASCADE")
	return err
}
