package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestVersionHeader(t *testing.T) {
	e := echo.New()
	g := e.Group("/v1")
	g.Use(VersionHeader("v1", "1.0.0"))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("api_version").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
	assert.Equal(t, "1.0.0", rec.Header().Get("X-Service-Version"))
	assert.Equal(t, "v1", rec.Body.String())
}
