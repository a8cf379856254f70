package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"supplyledger/internal/app"
	"supplyledger/internal/platform/config"
	"supplyledger/internal/platform/database"
	"supplyledger/internal/platform/httpserver"
	"supplyledger/internal/platform/kafka"
	"supplyledger/internal/platform/logger"
	"supplyledger/pkg/platform/audit/outbox"
)

func serveCommand() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when brokers are configured, the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			ctx := cmd.Context()

			if migrateFirst && cfg.Store == config.StorePostgres {
				if err := database.Migrate(ctx, cfg.Database.URL, log); err != nil {
					return err
				}
			}

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				log.Error("failed to initialize", "error", err)
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error("failed to release resources", "error", err)
				}
			}()

			g, gctx := errgroup.WithContext(ctx)

			if cfg.RelayEnabled() {
				producer, err := kafka.NewProducer(cfg.Kafka)
				if err != nil {
					return err
				}
				defer producer.Close()
				if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
					return err
				}
				a.AddHealthCheck("kafka", producer.Ping)

				relay := outbox.NewRelay(a.Outbox(), producer,
					outbox.WithInterval(cfg.Kafka.OutboxPollInterval),
					outbox.WithBatchSize(cfg.Kafka.OutboxBatchSize),
					outbox.WithLogger(log),
				)
				g.Go(func() error {
					if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				})
			} else {
				log.Info("outbox relay disabled, no kafka brokers configured")
			}

			srv := httpserver.New(cfg.Addr, a.Handler())
			g.Go(func() error {
				return httpserver.Run(gctx, srv, log)
			})

			log.Info("ledger started",
				"store", cfg.Store,
				"lineage_policy", cfg.LineagePolicy,
				"admin", cfg.AdminPrincipal,
			)
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply database migrations before serving")
	return cmd
}
