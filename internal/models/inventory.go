package models

// StockStatus is derived from stock and thresholds on every read. It is never stored.
type StockStatus string

const (
	StockStatusNegative StockStatus = "negative"
	StockStatusLow      StockStatus = "low"
	StockStatusNormal   StockStatus = "normal"
	StockStatusExcess   StockStatus = "excess"
)

// GetStockStatus classifies stock against the item's minimum and maximum.
// Both boundaries count as normal.
func GetStockStatus(stock, minimum, maximum float64) StockStatus {
	switch {
	case stock < 0:
		return StockStatusNegative
	case stock < minimum:
		return StockStatusLow
	case stock <= maximum:
		return StockStatusNormal
	default:
		return StockStatusExcess
	}
}

// InventoryItem is one row of a tenant's Inventory tab. Value is stored
// separately from Stock*PricePerUnit and may drift.
type InventoryItem struct {
	SrNo            int          `json:"sr_no"`
	Product         string       `json:"product" validate:"required"`
	Category        string       `json:"category"`
	Unit            string       `json:"unit"`
	MinimumQuantity float64      `json:"minimum_quantity" validate:"gte=0"`
	MaximumQuantity float64      `json:"maximum_quantity" validate:"gte=0"`
	ReorderQuantity float64      `json:"reorder_quantity" validate:"gte=0"`
	Stock           float64      `json:"stock"`
	PricePerUnit    float64      `json:"price_per_unit" validate:"gte=0"`
	Value           float64      `json:"value"`
	Timestamp       string       `json:"timestamp,omitempty"`
	Status          StockStatus  `json:"status,omitempty"`
	Row             int          `json:"-"`
	Errors          []FieldError `json:"field_errors,omitempty"`
}

// StockStatus derives the item's status from its current stock.
func (i *InventoryItem) CurrentStatus() StockStatus {
	return GetStockStatus(i.Stock, i.MinimumQuantity, i.MaximumQuantity)
}

// NeedsReorder is true for low and negative stock.
func (i *InventoryItem) NeedsReorder() bool {
	s := i.CurrentStatus()
	return s == StockStatusLow || s == StockStatusNegative
}

// ThresholdUpdate changes the configured levels of an existing product.
type ThresholdUpdate struct {
	MinimumQuantity *float64 `json:"minimum_quantity" validate:"omitempty,gte=0"`
	MaximumQuantity *float64 `json:"maximum_quantity" validate:"omitempty,gte=0"`
	ReorderQuantity *float64 `json:"reorder_quantity" validate:"omitempty,gte=0"`
	PricePerUnit    *float64 `json:"price_per_unit" validate:"omitempty,gte=0"`
	Category        *string  `json:"category"`
	Unit            *string  `json:"unit"`
}
