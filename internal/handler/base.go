// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer and writes the response. Errors are returned untouched
// to the global error handler.
package handler

import (
	"time"

	"github.com/deppfellow/articles-api/internal/middleware"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/deppfellow/articles-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies every concrete handler embeds.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload constrains PReq to a pointer to Req that can validate itself,
// so Handle can allocate a fresh request value per call.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps a typed endpoint with binding, validation, logging and tracing,
// then writes the result as JSON with status.
//
//	r.POST("/articles", handler.Handle(h.Handler, h.CreateArticle, http.StatusCreated))
func Handle[Req any, Res any, PReq Payload[Req]](
	h Handler,
	fn func(c echo.Context, req PReq) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))

		result, err := handleRequest(c, req, fn)
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

func handleRequest[Req validation.Validatable, Res any](
	c echo.Context,
	req Req,
	fn func(c echo.Context, req Req) (Res, error),
) (Res, error) {
	var zero Res

	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return zero, err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if txn != nil {
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler returned error")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
		}
		return zero, err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return result, nil
}
