package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"sheetmart/internal/common"
	"sheetmart/internal/jobs"
	"sheetmart/internal/jobs/background"
	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListPurchases(ctx context.Context, sheetID string) ([]models.PurchaseItem, error) {
	args := m.Called(ctx, sheetID)
	items, _ := args.Get(0).([]models.PurchaseItem)
	return items, args.Error(1)
}

func (m *MockOrderService) ListSales(ctx context.Context, sheetID string) ([]models.SalesItem, error) {
	args := m.Called(ctx, sheetID)
	items, _ := args.Get(0).([]models.SalesItem)
	return items, args.Error(1)
}

func (m *MockOrderService) RecordPurchase(ctx context.Context, sheetID string, purchase *models.PurchaseItem) (*services.StockChange, error) {
	args := m.Called(ctx, sheetID, purchase)
	change, _ := args.Get(0).(*services.StockChange)
	return change, args.Error(1)
}

func (m *MockOrderService) RecordSale(ctx context.Context, sheetID string, sale *models.SalesItem) (*services.StockChange, error) {
	args := m.Called(ctx, sheetID, sale)
	change, _ := args.Get(0).(*services.StockChange)
	return change, args.Error(1)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]*models.Tenant)
	return tenants, args.Error(1)
}

func (m *MockTenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) Create(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	args := m.Called(ctx, req)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) Authenticate(ctx context.Context, username, password string) (*models.Tenant, error) {
	args := m.Called(ctx, username, password)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Start() error {
	return m.Called().Error(0)
}

func (m *MockScheduler) Status() background.Status {
	return m.Called().Get(0).(background.Status)
}

func (m *MockScheduler) RunLowStockNow(ctx context.Context) (*jobs.JobReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*jobs.JobReport)
	return report, args.Error(1)
}

func (m *MockScheduler) RunDashboardNow(ctx context.Context) (*jobs.JobReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*jobs.JobReport)
	return report, args.Error(1)
}

func (m *MockScheduler) RunAllNow(ctx context.Context) ([]*jobs.JobReport, error) {
	args := m.Called(ctx)
	reports, _ := args.Get(0).([]*jobs.JobReport)
	return reports, args.Error(1)
}

// newContext builds an echo context with a JSON body. A non-empty sheetID is
// placed on the request the way the tenant middleware does it.
func newContext(e *echo.Echo, method, target, body, sheetID string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sheetID != "" {
		req = req.WithContext(common.WithTenant(req.Context(), sheetID, "client_1"))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) InventoryPDF(ctx context.Context, sheetID, title string) ([]byte, error) {
	args := m.Called(ctx, sheetID, title)
	pdf, _ := args.Get(0).([]byte)
	return pdf, args.Error(1)
}

func (m *MockReportService) ArchiveInventoryPDF(ctx context.Context, sheetID, tenantID, title string) (*services.ArchivedReport, error) {
	args := m.Called(ctx, sheetID, tenantID, title)
	report, _ := args.Get(0).(*services.ArchivedReport)
	return report, args.Error(1)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Record(ctx context.Context, delivery *models.Delivery) error {
	return m.Called(ctx, delivery).Error(0)
}

func (m *MockDeliveryRepository) ListRecent(ctx context.Context, tenantID string, limit int) ([]*models.Delivery, error) {
	args := m.Called(ctx, tenantID, limit)
	deliveries, _ := args.Get(0).([]*models.Delivery)
	return deliveries, args.Error(1)
}
