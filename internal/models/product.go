package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind enumerates the supported discount strategies. The set is
// closed: code switching on it should handle both kinds and reject the rest.
type DiscountKind string

const (
	// DiscountPercent reduces the base price by a percentage in [0, 100].
	DiscountPercent DiscountKind = "percent"
	// DiscountFixed subtracts a fixed amount, floored at zero.
	DiscountFixed DiscountKind = "fixed"
)

// Discount is a per-product price reduction, independent of coupons.
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

func (d Discount) Validate() error {
	switch d.Kind {
	case DiscountPercent:
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return &ValidationError{Field: "discount.value", Reason: "percent must be between 0 and 100"}
		}
	case DiscountFixed:
		if d.Value.IsNegative() {
			return &ValidationError{Field: "discount.value", Reason: "fixed amount must not be negative"}
		}
	default:
		return &ValidationError{Field: "discount.kind", Reason: "unknown discount kind"}
	}
	return nil
}

// Product is a catalog record. The engine only reads products; catalog
// management lives on the backend side.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Discount    *Discount
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if p.Discount != nil {
		return p.Discount.Validate()
	}
	return nil
}

// ProductPage is one page of a filtered catalog view.
type ProductPage struct {
	Items      []Product
	TotalItems int
	TotalPages int
}
