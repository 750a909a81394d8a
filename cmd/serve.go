package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"goal-tracker/internal/config"
	deliveryhttp "goal-tracker/internal/delivery/http"
	"goal-tracker/internal/infrastructure/database"
	"goal-tracker/internal/infrastructure/google"
	"goal-tracker/internal/infrastructure/httpclient"
	"goal-tracker/internal/infrastructure/logger"
	"goal-tracker/internal/infrastructure/oauth2"
	"goal-tracker/internal/infrastructure/planner"
	"goal-tracker/internal/infrastructure/redis"
	"goal-tracker/internal/infrastructure/repository"
	"goal-tracker/internal/server"
	"goal-tracker/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := fx.New(
			// Configuration
			config.Module,

			// Infrastructure
			logger.Module,
			database.Module,
			redis.Module,
			repository.Module,
			httpclient.Module,
			oauth2.Module,
			google.Module,
			planner.Module,

			// Business Logic
			usecase.Module,

			// Delivery
			deliveryhttp.Module,

			// Server
			server.Module,
		)
		if err := app.Err(); err != nil {
			return err
		}

		app.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
