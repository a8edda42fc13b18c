package models

import "github.com/shopspring/decimal"

// FilterSpec is a catalog view request. Absent optional fields impose no
// constraint; present ones are ANDed together.
type FilterSpec struct {
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	HasDiscount bool
	Page        int
	PageSize    int
}

func (s FilterSpec) Validate() error {
	if s.Page < 1 {
		return &ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if s.PageSize < 1 {
		return &ValidationError{Field: "limit", Reason: "must be at least 1"}
	}
	if s.MinPrice != nil && s.MinPrice.IsNegative() {
		return &ValidationError{Field: "minPrice", Reason: "must not be negative"}
	}
	if s.MaxPrice != nil && s.MaxPrice.IsNegative() {
		return &ValidationError{Field: "maxPrice", Reason: "must not be negative"}
	}
	return nil
}
