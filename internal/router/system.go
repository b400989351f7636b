package router

import (
	"github.com/deppfellow/articles-api/internal/handler"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers the endpoints that are not part of the article API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.StaticFS("/static", h.OpenAPI.StaticFS())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
