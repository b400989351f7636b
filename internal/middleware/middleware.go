// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, CORS, rate limiting, tracing, metrics,
// panic recovery and the translation of errors into responses.
package middleware
