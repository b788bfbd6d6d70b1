package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sheetmart/internal/common"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockTenantResolver struct {
	mock.Mock
}

func (m *MockTenantResolver) ResolveSheetID(ctx context.Context, rc services.RequestContext) string {
	return m.Called(ctx, rc).String(0)
}

func (m *MockTenantResolver) Resolve(ctx context.Context, rc services.RequestContext) services.Resolution {
	return m.Called(ctx, rc).Get(0).(services.Resolution)
}

func TestTenantMiddleware_PassesRequestSources(t *testing.T) {
	e := echo.New()
	resolver := new(MockTenantResolver)
	resolver.On("Resolve", mock.Anything, services.RequestContext{
		TenantID:        "client_2",
		CookieTenantID:  "client_1",
		RawCookieHeader: "clientId=client_1",
	}).Return(services.Resolution{TenantID: "client_2", SheetID: "sheet-2", Source: services.SourceParam})

	req := httptest.NewRequest(http.MethodGet, "/v1/inventory?clientId=client_2", nil)
	req.AddCookie(&http.Cookie{Name: services.TenantCookie, Value: "client_1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sheetID, tenantID string
	handler := TenantMiddleware(resolver, zap.NewNop())(func(c echo.Context) error {
		sheetID, _ = common.GetSheetIDFromContext(c.Request().Context())
		tenantID, _ = common.GetTenantIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sheet-2", sheetID)
	assert.Equal(t, "client_2", tenantID)
	assert.Equal(t, services.SourceParam, c.Get("tenant_source"))
	resolver.AssertExpectations(t)
}

func TestTenantMiddleware_NoSheet(t *testing.T) {
	e := echo.New()
	resolver := new(MockTenantResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(services.Resolution{})

	req := httptest.NewRequest(http.MethodGet, "/v1/inventory", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := TenantMiddleware(resolver, zap.NewNop())(func(c echo.Context) error {
		called = true
		return nil
	})

	require.NoError(t, handler(c))
	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no sheet configured")
}
