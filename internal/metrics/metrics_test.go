package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	apperrors "smapp/internal/errors"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTP(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/posts/:post_id", func(c echo.Context) error {
		if c.Param("post_id") == "missing" {
			return apperrors.ErrPostNotFound
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", m.Handler())

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/posts/:post_id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/posts/:post_id", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "smapp_http_requests_total"))
}
