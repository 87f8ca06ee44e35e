package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/pkg/log"
	"github.com/applyflow/applyflow/pkg/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		undo := log.Setup(cfg.Service.LogLevel)
		defer undo()

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if cfg.Service.MigrationFolder == "" {
			if err := store.InitialMigration(); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
			zap.S().Info("Db migrated")
			return nil
		}

		dialect := "postgres"
		if cfg.Database.Type == "sqlite" {
			dialect = "sqlite3"
		}
		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder, dialect); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}
		zap.S().Info("Db migrated")
		return nil
	},
}
