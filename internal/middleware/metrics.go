package middleware

import (
	"time"

	"github.com/deppfellow/articles-api/internal/lib/metrics"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies for /metrics.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

// Record labels requests by route template so ids do not explode cardinality.
func (m *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = ResolveError(err).Status
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.RecordHTTPRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
