package handlers

import (
	"net/http"

	"sheetmart/internal/analytics"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves metrics for the resolved sheet
type DashboardHandlers struct {
	analytics *analytics.AnalyticsService
}

func NewDashboardHandlers(analyticsService *analytics.AnalyticsService) *DashboardHandlers {
	return &DashboardHandlers{analytics: analyticsService}
}

// GetDashboard handles GET /v1/dashboard
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}

	metrics, err := h.analytics.DashboardMetrics(c.Request().Context(), sheetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}
