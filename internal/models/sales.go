package models

// SalesItem is one row of the Sales tab.
type SalesItem struct {
	SrNo         int          `json:"sr_no"`
	Product      string       `json:"product" validate:"required"`
	Quantity     float64      `json:"quantity" validate:"gt=0"`
	Unit         string       `json:"unit"`
	PricePerUnit float64      `json:"price_per_unit" validate:"gte=0"`
	Value        float64      `json:"value"`
	CompanyName  string       `json:"company_name"`
	DateOfIssue  string       `json:"date_of_issue"`
	Timestamp    string       `json:"timestamp,omitempty"`
	Row          int          `json:"-"`
	Errors       []FieldError `json:"field_errors,omitempty"`
}

// RecordDate prefers the entry timestamp over the issue date.
func (s *SalesItem) RecordDate() string {
	if s.Timestamp != "" {
		return s.Timestamp
	}
	return s.DateOfIssue
}
