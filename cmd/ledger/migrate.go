package main

import (
	"errors"

	"github.com/spf13/cobra"

	"supplyledger/internal/platform/config"
	"supplyledger/internal/platform/database"
	"supplyledger/internal/platform/logger"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("DATABASE_URL is required to run migrations")
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			return database.Migrate(cmd.Context(), cfg.Database.URL, log)
		},
	}
}
