package models

// PurchaseItem is one row of the Purchase tab.
type PurchaseItem struct {
	SrNo            int          `json:"sr_no"`
	Product         string       `json:"product" validate:"required"`
	Quantity        float64      `json:"quantity" validate:"gt=0"`
	Unit            string       `json:"unit"`
	PricePerUnit    float64      `json:"price_per_unit" validate:"gte=0"`
	Value           float64      `json:"value"`
	Supplier        string       `json:"supplier"`
	DateOfReceiving string       `json:"date_of_receiving"`
	Timestamp       string       `json:"timestamp,omitempty"`
	Row             int          `json:"-"`
	Errors          []FieldError `json:"field_errors,omitempty"`
}

// RecordDate prefers the entry timestamp over the receiving date.
func (p *PurchaseItem) RecordDate() string {
	if p.Timestamp != "" {
		return p.Timestamp
	}
	return p.DateOfReceiving
}
