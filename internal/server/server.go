// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the article database (postgres pool or sqlite handle)
//   - the optional redis client backing the article cache
//   - http.Server
//
// Shutdown releases them in dependency order: the HTTP server is drained
// first so no handler can touch the database after it has been closed.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/deppfellow/articles-api/internal/database"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/articles-api/internal/logger"
)

// RedisPingTimeout bounds the startup redis check.
const RedisPingTimeout = 5 * time.Second

// NewRelicShutdownTimeout is how long Shutdown waits for the agent to flush.
const NewRelicShutdownTimeout = 10 * time.Second

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is the Persistence Gateway's connection handle.
	DB *database.Database

	// Redis is nil when no address is configured.
	Redis *redis.Client

	httpServer *http.Server

	// baseCtx parents every request context; Shutdown cancels it once draining ends.
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New opens the database and, if configured, the redis client.
//
// Redis is optional: a failed ping is logged and startup continues, the
// article cache falls back to the database on every miss.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         newRedis(ctx, cfg, logger, loggerService),
	}, nil
}

// NewWithDatabase builds a Server around an already opened database.
// Tests use it with an in-memory sqlite handle.
func NewWithDatabase(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, db *database.Database) *Server {
	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}
}

func newRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	if cfg.Redis.Address == "" {
		logger.Info().Msg("redis address not set, article cache disabled")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis, continuing without a warm cache")
	}

	return redisClient
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())

	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
		BaseContext:  func(net.Listener) context.Context { return s.baseCtx },
	}
}

// Start blocks serving HTTP until Shutdown is called.
// A server closed by Shutdown returns nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve is Start on an already bound listener.
func (s *Server) Serve(ln net.Listener) error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("addr", ln.Addr().String()).
		Str("env", s.Config.Primary.Env).
		Str("driver", s.DB.Driver).
		Msg("starting server")

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires, then cancels the
// contexts of any handler still running before it releases the database,
// redis and the New Relic agent. Every step runs even if an earlier one
// failed; the errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
		s.cancelBase()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	s.LoggerService.Shutdown(NewRelicShutdownTimeout)

	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	s.Logger.Info().Msg("server stopped")
	return nil
}
