package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/deppfellow/articles-api/internal/errs"
	"github.com/deppfellow/articles-api/internal/middleware"
	"github.com/deppfellow/articles-api/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: config.Default(), Logger: &logger}
}

func runErrorHandler(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/articles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	middleware.NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(err, c)
	return rec
}

func TestGlobalErrorHandler_UniqueViolationIsConflict(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "articles_title_key"`,
		TableName:      "articles",
		ConstraintName: "articles_title_key",
	}

	rec := runErrorHandler(t, http.MethodPost, fmt.Errorf("create article: %w", pgErr))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{
		"statusCode": 409,
		"message": "A unique constraint would be violated on Article. Details: duplicate key value violates unique constraint \"articles_title_key\""
	}`, rec.Body.String())
}

func TestGlobalErrorHandler_OtherDatabaseErrorsFallBack(t *testing.T) {
	for _, code := range []string{"23503", "23502", "23514", "40001"} {
		t.Run(code, func(t *testing.T) {
			rec := runErrorHandler(t, http.MethodPost, &pgconn.PgError{Code: code, Message: "nope"})

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{
				"statusCode": 500,
				"message": "Internal Server Error",
				"code": "INTERNAL_SERVER_ERROR"
			}`, rec.Body.String())
		})
	}
}

func TestGlobalErrorHandler_HTTPErrorPassesThrough(t *testing.T) {
	err := errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "title", Error: "is required"}})

	rec := runErrorHandler(t, http.MethodPost, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"statusCode": 400,
		"message": "Validation failed",
		"code": "BAD_REQUEST",
		"override": true,
		"errors": [{"field": "title", "error": "is required"}]
	}`, rec.Body.String())
}

func TestGlobalErrorHandler_EchoErrors(t *testing.T) {
	rec := runErrorHandler(t, http.MethodGet, echo.ErrNotFound)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"statusCode":404,"message":"Route not found","code":"NOT_FOUND"}`, rec.Body.String())

	rec = runErrorHandler(t, http.MethodGet, echo.ErrMethodNotAllowed)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"statusCode":405,"message":"Method Not Allowed","code":"METHOD_NOT_ALLOWED"}`, rec.Body.String())
}

func TestGlobalErrorHandler_UnknownErrorIs500(t *testing.T) {
	rec := runErrorHandler(t, http.MethodGet, errors.New("something broke"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "something broke")
}

func TestGlobalErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := runErrorHandler(t, http.MethodHead, echo.ErrNotFound)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGlobalErrorHandler_CommittedResponseIsLeftAlone(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.String(http.StatusOK, "partial"))
	middleware.NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestResolveError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, http.StatusInternalServerError},
		{"not found error", errs.NewNotFoundError("gone", false, nil), http.StatusNotFound},
		{"wrapped http error", fmt.Errorf("ctx: %w", errs.NewTooManyRequestsError("slow down")), http.StatusTooManyRequests},
		{"echo bad request", echo.NewHTTPError(http.StatusBadRequest, "bad"), http.StatusBadRequest},
		{"plain", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, middleware.ResolveError(tt.err).Status)
		})
	}
}
