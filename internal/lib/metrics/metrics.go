// Package metrics provides the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration buckets cover fast lookups up to slow list scans.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "articles_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

var (
	// DBErrorsTotal counts database errors reaching the error handler, by kind and outcome.
	// outcome is "translated" for errors mapped to a client status, "fallback" otherwise.
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_db_errors_total",
			Help: "Database errors seen by the HTTP error handler",
		},
		[]string{"kind", "outcome"},
	)

	// CacheLookupsTotal counts article cache lookups by result (hit, miss, error).
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_cache_lookups_total",
			Help: "Article cache lookups",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records one finished request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

// RecordDBError records a database error seen by the error handler.
func RecordDBError(kind string, translated bool) {
	outcome := "fallback"
	if translated {
		outcome = "translated"
	}
	DBErrorsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheLookup records an article cache lookup result.
func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
