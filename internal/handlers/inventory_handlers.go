package handlers

import (
	"net/http"
	"net/url"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory-related HTTP requests
type InventoryHandlers struct {
	inventoryService services.InventoryService
}

func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService}
}

func productParam(c echo.Context) string {
	raw := c.Param("product")
	if product, err := url.PathUnescape(raw); err == nil {
		return product
	}
	return raw
}

// ListInventory handles GET /v1/inventory. ?status=low keeps only low and
// negative stock.
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var items []models.InventoryItem
	if c.QueryParam("status") == "low" {
		items, err = h.inventoryService.LowStock(ctx, sheetID)
	} else {
		items, err = h.inventoryService.List(ctx, sheetID)
	}
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// GetInventoryItem handles GET /v1/inventory/:product
func (h *InventoryHandlers) GetInventoryItem(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	item, err := h.inventoryService.Get(c.Request().Context(), sheetID, productParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateInventoryItem handles POST /v1/inventory
func (h *InventoryHandlers) CreateInventoryItem(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	var item models.InventoryItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.inventoryService.Create(c.Request().Context(), sheetID, &item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateThresholds handles PATCH /v1/inventory/:product
func (h *InventoryHandlers) UpdateThresholds(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	var update models.ThresholdUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	item, err := h.inventoryService.UpdateThresholds(c.Request().Context(), sheetID, productParam(c), &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem handles DELETE /v1/inventory/:product
func (h *InventoryHandlers) DeleteInventoryItem(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	if err := h.inventoryService.Delete(c.Request().Context(), sheetID, productParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
