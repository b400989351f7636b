package middleware

import (
	"github.com/deppfellow/articles-api/internal/server"
)

// Middlewares groups every middleware component used by the router.
// It is built once from the application container and reused during route setup.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing is a no-op when New Relic is disabled.
	Tracing *TracingMiddleware

	Metrics   *MetricsMiddleware
	RateLimit *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         NewMetricsMiddleware(),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
