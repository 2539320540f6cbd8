package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_StructuredError(t *testing.T) {
	rec := doRequest(t, func(c echo.Context) error {
		return NotFound("concept not found").WithField("item_id", "c42")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "concept not found", resp.Error)
	assert.Equal(t, TypeNotFound, resp.Type)
	assert.Equal(t, "c42", resp.Context["item_id"])
}

func TestMiddleware_PlainErrorBecomesInternal(t *testing.T) {
	rec := doRequest(t, func(c echo.Context) error {
		return errors.New("something broke")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeInternal, resp.Type)
	// cause is logged, never leaked to clients
	assert.Equal(t, "internal server error", resp.Error)
}

func TestMiddleware_NoErrorPassesThrough(t *testing.T) {
	rec := doRequest(t, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_EchoHTTPErrorPreserved(t *testing.T) {
	rec := doRequest(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "slow down")
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
