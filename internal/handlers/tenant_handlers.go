package handlers

import (
	"net/http"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers manages the tenant directory (admin only)
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// ListTenants handles GET /v1/tenants
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if tenants == nil {
		tenants = []*models.Tenant{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tenants": tenants, "count": len(tenants)})
}

// GetTenant handles GET /v1/tenants/:id
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	tenant, err := h.tenantService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// createTenantResponse shows the generated password once.
type createTenantResponse struct {
	*models.Tenant
	Password string `json:"password"`
}

// CreateTenant handles POST /v1/tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req models.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	tenant, err := h.tenantService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, createTenantResponse{Tenant: tenant, Password: tenant.Password})
}
