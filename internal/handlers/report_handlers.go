package handlers

import (
	"fmt"
	"net/http"
	"time"

	"sheetmart/internal/common"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandlers serves inventory reports
type ReportHandlers struct {
	reportService services.ReportService
	tenantService services.TenantService
	logger        *zap.Logger
}

func NewReportHandlers(reportService services.ReportService, tenantService services.TenantService, logger *zap.Logger) *ReportHandlers {
	return &ReportHandlers{reportService: reportService, tenantService: tenantService, logger: logger}
}

// title names the report after the tenant when one was resolved.
func (h *ReportHandlers) title(c echo.Context) (string, string) {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return "", "Inventory"
	}
	tenant, err := h.tenantService.Get(ctx, tenantID)
	if err != nil || tenant.Name == "" {
		return tenantID, tenantID
	}
	return tenantID, tenant.Name
}

// InventoryPDF handles GET /v1/reports/inventory
func (h *ReportHandlers) InventoryPDF(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	_, title := h.title(c)

	pdf, err := h.reportService.InventoryPDF(c.Request().Context(), sheetID, title)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("inventory-%s.pdf", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ArchiveInventoryPDF handles POST /v1/reports/inventory/archive
func (h *ReportHandlers) ArchiveInventoryPDF(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	tenantID, title := h.title(c)

	report, err := h.reportService.ArchiveInventoryPDF(c.Request().Context(), sheetID, tenantID, title)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, report)
}
