package models

// Supplier holds a purchase counterpart (Supplier) or a sales counterpart
// (CompanyName). Usually only one of them is set.
type Supplier struct {
	Supplier    string `json:"supplier"`
	CompanyName string `json:"company_name"`
	Row         int    `json:"-"`
}

// Name returns whichever counterpart name is set.
func (s *Supplier) Name() string {
	if s.Supplier != "" {
		return s.Supplier
	}
	return s.CompanyName
}
