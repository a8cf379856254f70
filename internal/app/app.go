// Package app assembles the stores, services and HTTP router into one
// runnable process.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "supplyledger/internal/http"
	jwttoken "supplyledger/internal/jwt_token"
	"supplyledger/internal/ledger"
	ledgerAdapters "supplyledger/internal/ledger/adapters"
	ledgerMetrics "supplyledger/internal/ledger/metrics"
	ledgerModels "supplyledger/internal/ledger/models"
	ledgerService "supplyledger/internal/ledger/service"
	"supplyledger/internal/ledger/store/cache"
	"supplyledger/internal/ledger/store/holding"
	"supplyledger/internal/ledger/store/tokenclass"
	"supplyledger/internal/notifications"
	"supplyledger/internal/platform/config"
	"supplyledger/internal/platform/database"
	platformMetrics "supplyledger/internal/platform/metrics"
	"supplyledger/internal/platform/redis"
	"supplyledger/internal/registry"
	registryMetrics "supplyledger/internal/registry/metrics"
	registryService "supplyledger/internal/registry/service"
	"supplyledger/internal/registry/store/member"
	"supplyledger/internal/transfer"
	transferAdapters "supplyledger/internal/transfer/adapters"
	transferMetrics "supplyledger/internal/transfer/metrics"
	transferService "supplyledger/internal/transfer/service"
	"supplyledger/internal/transfer/store/request"
	"supplyledger/pkg/domain"
	audit "supplyledger/pkg/platform/audit"
	auditMemory "supplyledger/pkg/platform/audit/store/memory"
	auditPostgres "supplyledger/pkg/platform/audit/store/postgres"
	"supplyledger/pkg/platform/tx"
)

// journal is both the notification store and the relay outbox.
type journal interface {
	audit.Store
	audit.Outbox
}

type stores struct {
	members   registryService.MemberStore
	classes   ledgerService.TokenClassStore
	holdings  ledgerService.HoldingStore
	transfers transferService.TransferStore
	journal   journal
	runner    tx.Runner
}

// App is the fully wired process. Close releases every connection it opened.
type App struct {
	handler http.Handler
	outbox  audit.Outbox
	health  map[string]httpapi.HealthCheck
	closers []func() error
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Outbox is the relay-facing side of the notification journal.
func (a *App) Outbox() audit.Outbox {
	return a.outbox
}

// AddHealthCheck registers a dependency probe for /healthz. Call it before
// serving.
func (a *App) AddHealthCheck(name string, check httpapi.HealthCheck) {
	a.health[name] = check
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// New wires every bounded context against the configured backend.
func New(ctx context.Context, cfg config.Server, log *slog.Logger) (_ *App, err error) {
	a := &App{health: map[string]httpapi.HealthCheck{}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	admin, err := domain.ParsePrincipal(cfg.AdminPrincipal)
	if err != nil {
		return nil, fmt.Errorf("admin principal: %w", err)
	}
	policy, err := ledgerModels.ParseLineagePolicy(cfg.LineagePolicy)
	if err != nil {
		return nil, fmt.Errorf("lineage policy: %w", err)
	}

	st, err := a.openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.outbox = st.journal

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	publisher := audit.NewPublisher(st.journal, audit.WithPublisherLogger(log))

	registrySvc, err := registry.NewService(st.members, st.runner, admin,
		registryService.WithLogger(log),
		registryService.WithAuditPublisher(publisher),
		registryService.WithMetrics(registryMetrics.New(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("registry service: %w", err)
	}

	ledgerSvc, err := ledger.NewService(st.classes, st.holdings, ledgerAdapters.NewRegistryAdapter(registrySvc), st.runner,
		ledgerService.WithLogger(log),
		ledgerService.WithAuditPublisher(publisher),
		ledgerService.WithMetrics(ledgerMetrics.New(reg)),
		ledgerService.WithLineagePolicy(policy),
	)
	if err != nil {
		return nil, fmt.Errorf("ledger service: %w", err)
	}

	transferSvc, err := transfer.NewService(st.transfers,
		transferAdapters.NewRegistryAdapter(registrySvc),
		transferAdapters.NewLedgerAdapter(ledgerSvc),
		st.runner,
		transferService.WithLogger(log),
		transferService.WithAuditPublisher(publisher),
		transferService.WithMetrics(transferMetrics.New(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("transfer service: %w", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	a.handler = httpapi.NewRouter(httpapi.Config{
		Logger:    log,
		Validator: jwttoken.NewJWTServiceAdapter(jwtService),
		Metrics:   platformMetrics.New(reg),
		Gatherer:  reg,
		Health:    a.health,
		Handlers: []httpapi.RouteRegistrar{
			registry.NewHandler(registrySvc, log),
			ledger.NewHandler(ledgerSvc, log),
			transfer.NewHandler(transferSvc, log),
			notifications.New(publisher, log),
		},
	})
	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg config.Server, log *slog.Logger) (*stores, error) {
	var st *stores
	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.health["database"] = db.PingContext
		st = postgresStores(db, cfg)
	default:
		st = &stores{
			members:   member.NewInMemory(),
			classes:   tokenclass.NewInMemory(),
			holdings:  holding.NewInMemory(),
			transfers: request.NewInMemory(),
			journal:   auditMemory.NewInMemoryStore(),
			runner:    tx.NewMemorySerializer(cfg.TxTimeout),
		}
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		a.closers = append(a.closers, rdb.Close)
		a.health["redis"] = rdb.Health
		st.classes = cache.NewCachedTokenClasses(st.classes, rdb.Client, cfg.Redis.CacheTTL, cache.WithLogger(log))
	}
	return st, nil
}

func postgresStores(db *sql.DB, cfg config.Server) *stores {
	return &stores{
		members:   member.NewPostgres(db),
		classes:   tokenclass.NewPostgres(db),
		holdings:  holding.NewPostgres(db),
		transfers: request.NewPostgres(db),
		journal:   auditPostgres.New(db),
		runner:    tx.NewPostgresRunner(db, cfg.TxTimeout),
	}
}
