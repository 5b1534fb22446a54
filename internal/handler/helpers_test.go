package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/AchintyaNigam/my-rail/internal/middleware"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !assert.True(t, ok, "expected *echo.HTTPError, got %v", err) {
		return
	}
	assert.Equal(t, code, he.Code)
	if message != "" {
		assert.Equal(t, message, he.Message)
	}
}
