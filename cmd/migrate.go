package main

import (
	"github.com/spf13/cobra"

	"goal-tracker/internal/config"
	"goal-tracker/internal/infrastructure/database"
	"goal-tracker/internal/infrastructure/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		log, err := logger.Build(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		// Open applies the schema
		db, err := database.Open(cfg.Database.Driver, database.DSN(cfg.Database), log)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
