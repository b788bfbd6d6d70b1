package handlers

import (
	"net/http"

	"sheetmart/internal/common"
	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers exposes the delivery log (admin only)
type NotificationHandlers struct {
	deliveries repositories.DeliveryRepository
}

func NewNotificationHandlers(deliveries repositories.DeliveryRepository) *NotificationHandlers {
	return &NotificationHandlers{deliveries: deliveries}
}

// ListDeliveries handles GET /v1/notifications/deliveries?tenant_id=&limit=
func (h *NotificationHandlers) ListDeliveries(c echo.Context) error {
	limit := common.QueryLimit(c, 50, 500)
	deliveries, err := h.deliveries.ListRecent(c.Request().Context(), c.QueryParam("tenant_id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	if deliveries == nil {
		deliveries = []*models.Delivery{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"deliveries": deliveries, "count": len(deliveries)})
}
