package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInventoryPDF_UsesTenantName(t *testing.T) {
	e := echo.New()
	reports := new(MockReportService)
	tenants := new(MockTenantService)
	tenants.On("Get", mock.Anything, "client_1").Return(&models.Tenant{ID: "client_1", Name: "Acme Traders"}, nil)
	reports.On("InventoryPDF", mock.Anything, shopSheet, "Acme Traders").Return([]byte("%PDF-1.3"), nil)

	c, rec := newContext(e, http.MethodGet, "/v1/reports/inventory", "", shopSheet)
	require.NoError(t, NewReportHandlers(reports, tenants, zap.NewNop()).InventoryPDF(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment; filename=")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestInventoryPDF_TenantLookupFails(t *testing.T) {
	e := echo.New()
	reports := new(MockReportService)
	tenants := new(MockTenantService)
	tenants.On("Get", mock.Anything, "client_1").Return(nil, errors.New("quota exceeded"))
	reports.On("InventoryPDF", mock.Anything, shopSheet, "client_1").Return([]byte("%PDF-1.3"), nil)

	c, rec := newContext(e, http.MethodGet, "/v1/reports/inventory", "", shopSheet)
	require.NoError(t, NewReportHandlers(reports, tenants, zap.NewNop()).InventoryPDF(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	reports.AssertExpectations(t)
}

func TestArchiveInventoryPDF(t *testing.T) {
	e := echo.New()
	reports := new(MockReportService)
	tenants := new(MockTenantService)
	tenants.On("Get", mock.Anything, "client_1").Return(&models.Tenant{ID: "client_1", Name: "Acme Traders"}, nil)
	archived := &services.ArchivedReport{
		Bucket:    "sheetmart-reports",
		Object:    "reports/client_1/inventory-20261015-100000.pdf",
		URL:       "http://minio.local/presigned",
		ExpiresAt: time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC),
	}
	reports.On("ArchiveInventoryPDF", mock.Anything, shopSheet, "client_1", "Acme Traders").Return(archived, nil)

	c, rec := newContext(e, http.MethodPost, "/v1/reports/inventory/archive", "", shopSheet)
	require.NoError(t, NewReportHandlers(reports, tenants, zap.NewNop()).ArchiveInventoryPDF(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "reports/client_1/inventory-20261015-100000.pdf")
}

func TestArchiveInventoryPDF_StorageNotConfigured(t *testing.T) {
	e := echo.New()
	reports := new(MockReportService)
	tenants := new(MockTenantService)
	tenants.On("Get", mock.Anything, "client_1").Return(&models.Tenant{ID: "client_1", Name: "Acme Traders"}, nil)
	reports.On("ArchiveInventoryPDF", mock.Anything, shopSheet, "client_1", "Acme Traders").Return(nil, services.ErrStorageNotConfigured)

	c, rec := newContext(e, http.MethodPost, "/v1/reports/inventory/archive", "", shopSheet)
	require.NoError(t, NewReportHandlers(reports, tenants, zap.NewNop()).ArchiveInventoryPDF(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_CONFIGURED"`)
}
