package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/deppfellow/articles-api/internal/handler"
	"github.com/deppfellow/articles-api/internal/middleware"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name"`
	Loud bool   `json:"loud"`
}

func (r *echoRequest) Validate() error {
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return nil
}

type echoResponse struct {
	Name string `json:"name"`
	Loud bool   `json:"loud"`
}

func newEcho() (*echo.Echo, handler.Handler) {
	logger := zerolog.Nop()
	s := &server.Server{Config: config.Default(), Logger: &logger}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e, handler.NewHandler(s)
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WritesResultWithStatus(t *testing.T) {
	e, h := newEcho()
	e.POST("/echo", handler.Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		return echoResponse{Name: req.Name, Loud: req.Loud}, nil
	}, http.StatusCreated))

	rec := post(e, `{"name":"a","loud":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"a","loud":true}`, rec.Body.String())
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	e, h := newEcho()
	e.POST("/echo", handler.Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		return echoResponse{Name: req.Name, Loud: req.Loud}, nil
	}, http.StatusOK))

	require.Equal(t, http.StatusOK, post(e, `{"name":"first","loud":true}`).Code)

	rec := post(e, `{"name":"second"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"second","loud":false}`, rec.Body.String())
}

func TestHandle_ValidationErrorSkipsHandler(t *testing.T) {
	e, h := newEcho()
	called := false
	e.POST("/echo", handler.Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		called = true
		return echoResponse{}, nil
	}, http.StatusOK))

	rec := post(e, `{"loud":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestHandle_HandlerErrorIsReturned(t *testing.T) {
	e, h := newEcho()
	e.POST("/echo", handler.Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		return echoResponse{}, echo.NewHTTPError(http.StatusTeapot, "no")
	}, http.StatusOK))

	rec := post(e, `{"name":"x"}`)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
