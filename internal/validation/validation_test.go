package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/articles-api/internal/errs"
	"github.com/deppfellow/articles-api/internal/model"
	"github.com/deppfellow/articles-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, method, body string, payload validation.Validatable, params ...string) error {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}

	return validation.BindAndValidate(c, payload)
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	var req model.CreateArticleRequest
	err := bind(t, http.MethodPost, `{"title":"ok","description":"short","published":true}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "ok", req.Title)
	assert.True(t, req.Published)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	long := strings.Repeat("d", 301)

	var req model.CreateArticleRequest
	err := bind(t, http.MethodPost, `{"description":"`+long+`"}`, &req)

	httpErr := requireBadRequest(t, err)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "title", Error: "is required"},
		{Field: "description", Error: "must not exceed 300 characters"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	var req model.CreateArticleRequest
	httpErr := requireBadRequest(t, bind(t, http.MethodPost, `{"title":`, &req))
	assert.Empty(t, httpErr.Errors)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_PathParam(t *testing.T) {
	var ok model.GetArticleRequest
	require.NoError(t, bind(t, http.MethodGet, "", &ok, "id", "12"))
	assert.Equal(t, int64(12), ok.ID)

	var notNumber model.GetArticleRequest
	requireBadRequest(t, bind(t, http.MethodGet, "", &notNumber, "id", "string-id"))

	var negative model.GetArticleRequest
	httpErr := requireBadRequest(t, bind(t, http.MethodGet, "", &negative, "id", "-4"))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "must be greater than 0", httpErr.Errors[0].Error)
}

type customPayload struct{}

func (customPayload) Validate() error {
	return validation.CustomValidationErrors{{Field: "slug", Message: "already reserved"}}
}

type brokenPayload struct{}

func (brokenPayload) Validate() error {
	return errors.New("unexpected")
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	httpErr := requireBadRequest(t, bind(t, http.MethodGet, "", &customPayload{}))
	assert.Equal(t, []errs.FieldError{{Field: "slug", Error: "already reserved"}}, httpErr.Errors)

	httpErr = requireBadRequest(t, bind(t, http.MethodGet, "", &brokenPayload{}))
	assert.Equal(t, []errs.FieldError{{Error: "unexpected"}}, httpErr.Errors)
}
