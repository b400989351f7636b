package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/articles-api/internal/middleware"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 when the database answers and 503 otherwise.
//
// Redis only backs the article cache, so a failing redis is reported
// but does not make the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !cfg.Enabled {
		return c.JSON(http.StatusOK, response)
	}

	isHealthy := true

	if slices.Contains(cfg.Checks, "database") {
		if !h.runCheck(c.Request().Context(), "database", checks, cfg.Timeout, h.server.DB.Ping) {
			isHealthy = false
		}
	}

	if slices.Contains(cfg.Checks, "redis") && h.server.Redis != nil {
		h.runCheck(c.Request().Context(), "redis", checks, cfg.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// runCheck pings one dependency, records the outcome under name and reports success.
func (h *HealthHandler) runCheck(
	parent context.Context,
	name string,
	checks map[string]interface{},
	timeout time.Duration,
	ping func(ctx context.Context) error,
) bool {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err == nil {
		checks[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
		return true
	}

	checks[name] = map[string]interface{}{
		"status":        "unhealthy",
		"response_time": elapsed.String(),
		"error":         err.Error(),
	}

	h.server.Logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return false
}
