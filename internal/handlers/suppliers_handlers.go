package handlers

import (
	"net/http"

	"sheetmart/internal/models"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
)

// SupplierHandlers handles supplier-related HTTP requests
type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// ListSuppliers handles GET /v1/suppliers
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	suppliers, err := h.supplierService.List(c.Request().Context(), sheetID)
	if err != nil {
		return respondError(c, err)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suppliers": suppliers, "count": len(suppliers)})
}

// CreateSupplier handles POST /v1/suppliers. An existing name is not an error.
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	sheetID, err := sheetFrom(c)
	if err != nil {
		return err
	}
	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if supplier.Name() == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "supplier or company_name is required")
	}

	added, err := h.supplierService.Ensure(c.Request().Context(), sheetID, &supplier)
	if err != nil {
		return respondError(c, err)
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]interface{}{"supplier": supplier, "added": added})
}
