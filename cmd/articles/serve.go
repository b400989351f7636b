package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/deppfellow/articles-api/internal/database"
	"github.com/deppfellow/articles-api/internal/handler"
	"github.com/deppfellow/articles-api/internal/logger"
	"github.com/deppfellow/articles-api/internal/repository"
	"github.com/deppfellow/articles-api/internal/router"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/deppfellow/articles-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply postgres migrations before serving")

	return cmd
}

func setup() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	return cfg, loggerService, logger.NewLogger(cfg.Observability, loggerService), nil
}

func serve(parent context.Context, migrate bool) error {
	cfg, loggerService, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate && cfg.Database.Driver == config.DriverPostgres {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			loggerService.Shutdown(server.NewRelicShutdownTimeout)
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(ctx, cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown(server.NewRelicShutdownTimeout)
		return err
	}

	// the sqlite schema is idempotent and an in-memory database starts empty
	if cfg.Database.Driver == config.DriverSQLite {
		if err := srv.DB.MigrateSQLite(ctx); err != nil {
			_ = srv.Shutdown(context.Background())
			return err
		}
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	var startErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case startErr = <-serveErr:
		if startErr != nil {
			log.Error().Err(startErr).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Msg("shutdown timed out before in-flight requests finished")
		}
		return errors.Join(startErr, err)
	}

	return startErr
}
