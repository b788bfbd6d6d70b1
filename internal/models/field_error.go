package models

import "fmt"

// FieldError records a cell that was present but could not be parsed. The
// field decodes to its zero value.
type FieldError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q", e.Row, e.Field, e.Value)
}
