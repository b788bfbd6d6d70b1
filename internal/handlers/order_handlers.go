package handlers

import (
	"net/http"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles purchases and sales
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// recordResponse is returned by both create endpoints. InventoryAdjusted is
// false when the record was saved but the stock row could not be updated.
type recordResponse struct {
	Record            interface{}           `json:"record"`
	Stock             *services.StockChange `json:"stock,omitempty"`
	InventoryAdjusted bool                  `json:"inventory_adjusted"`
	Error             string                `json:"error,omitempty"`
}

func respondRecorded(c echo.Context, record interface{}, change *services.StockChange, err error) error {
	if err == nil {
		return c.JSON(http.StatusCreated, recordResponse{Record: record, Stock: change, InventoryAdjusted: true})
	}
	if services.IsInventoryNotAdjusted(err) {
		return c.JSON(http.StatusMultiStatus, recordResponse{Record: record, InventoryAdjusted: false, Error: err.Error()})
	}
	return respondError(c, err)
}

// ListPurchases handles GET /v1/purchases
func (h *OrderHandlers) ListPurchases(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	purchases, err := h.orderService.ListPurchases(c.Request().Context(), sheetID)
	if err != nil {
		return respondError(c, err)
	}
	if purchases == nil {
		purchases = []models.PurchaseItem{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"purchases": purchases, "count": len(purchases)})
}

// CreatePurchase handles POST /v1/purchases
func (h *OrderHandlers) CreatePurchase(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	var purchase models.PurchaseItem
	if err := c.Bind(&purchase); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	change, err := h.orderService.RecordPurchase(c.Request().Context(), sheetID, &purchase)
	return respondRecorded(c, &purchase, change, err)
}

// ListSales handles GET /v1/sales
func (h *OrderHandlers) ListSales(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	sales, err := h.orderService.ListSales(c.Request().Context(), sheetID)
	if err != nil {
		return respondError(c, err)
	}
	if sales == nil {
		sales = []models.SalesItem{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sales": sales, "count": len(sales)})
}

// CreateSale handles POST /v1/sales
func (h *OrderHandlers) CreateSale(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	var sale models.SalesItem
	if err := c.Bind(&sale); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	change, err := h.orderService.RecordSale(c.Request().Context(), sheetID, &sale)
	return respondRecorded(c, &sale, change, err)
}
