package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a named discount rule with a validity window, applied to a cart
// or to a single product at checkout time.
type Coupon struct {
	ID         int64
	Code       string
	Kind       DiscountKind
	Value      decimal.Decimal
	OneShot    bool
	ValidFrom  time.Time
	ValidUntil time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeCode is the canonical form used for storage and comparison.
// Codes are case-insensitive and surrounding whitespace is ignored.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Matches reports whether the supplied code refers to this coupon.
func (c Coupon) Matches(code string) bool {
	return NormalizeCode(c.Code) == NormalizeCode(code)
}

// Discount returns the coupon's reduction rule in Discount form so pricing
// can treat coupons and product discounts uniformly.
func (c Coupon) Discount() Discount {
	return Discount{Kind: c.Kind, Value: c.Value}
}

func (c Coupon) Validate() error {
	if NormalizeCode(c.Code) == "" {
		return &ValidationError{Field: "code", Reason: "required"}
	}
	switch c.Kind {
	case DiscountPercent:
		if !c.Value.IsPositive() || c.Value.GreaterThan(decimal.NewFromInt(100)) {
			return &ValidationError{Field: "value", Reason: "percent must be greater than 0 and at most 100"}
		}
	case DiscountFixed:
		if !c.Value.IsPositive() {
			return &ValidationError{Field: "value", Reason: "fixed amount must be greater than 0"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "unknown coupon type"}
	}
	if c.ValidFrom.IsZero() || c.ValidUntil.IsZero() {
		return &ValidationError{Field: "validFrom", Reason: "validity window is required"}
	}
	// A window that ends before it starts is corrupt data, not an expired coupon.
	if c.ValidFrom.After(c.ValidUntil) {
		return &ValidationError{Field: "validUntil", Reason: "must not be before validFrom"}
	}
	return nil
}
