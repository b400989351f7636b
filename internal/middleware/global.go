package middleware

import (
	"net/http"

	"github.com/deppfellow/articles-api/internal/errs"
	"github.com/deppfellow/articles-api/internal/lib/metrics"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/deppfellow/articles-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one "API" line per request, with severity based on the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a handler
			// returns an error, so derive the status it is going to write.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ResolveError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn().Err(v.Error)
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().Err(err).Bytes("stack", stack).Msg("recovered from panic")
			return err
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ResolveError maps any error returned by a handler to the response the client gets.
//
// Order matters:
//  1. database errors the translator understands (unique violation -> 409)
//  2. *errs.HTTPError as-is
//  3. echo errors, with unknown routes reported as "Route not found"
//  4. everything else, including untranslated database errors, is a 500
func ResolveError(err error) *errs.HTTPError {
	if translated, ok := sqlerr.Translate(err); ok {
		return translated
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return errs.NewHTTPError(echoErr.Code, message)
	}

	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
// The original error is logged; the client only sees the resolved HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	resolved := ResolveError(err)

	logger := GetLogger(c)

	var event *zerolog.Event
	if resolved.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}

	if dbErr := sqlerr.Classify(err); dbErr != nil {
		translated := resolved.Status < http.StatusInternalServerError
		metrics.RecordDBError(dbErr.Kind.String(), translated)

		event = event.
			Str("db_error_kind", dbErr.Kind.String()).
			Str("db_error_code", dbErr.DatabaseCode).
			Str("db_table", dbErr.TableName).
			Str("db_field", sqlerr.DescribeField(dbErr.ColumnName)).
			Bool("db_error_translated", translated)
	}

	event.
		Err(err).
		Int("status", resolved.Status).
		Str("error_code", resolved.Code).
		Msg(resolved.Message)

	if !c.Response().Committed {
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resolved.Status)
		} else {
			writeErr = c.JSON(resolved.Status, resolved)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
