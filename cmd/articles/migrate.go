package main

import (
	"github.com/deppfellow/articles-api/internal/database"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := setup()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown(server.NewRelicShutdownTimeout)

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
