// Package pricing computes final prices for products and carts. All
// arithmetic stays in decimal form; rounding happens only at the display
// boundary via CartQuote.Round and DisplayPrice.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/coupon"
	"github.com/pricewise/pricewise/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// FinalPrice applies a discount to a base price. A nil discount leaves the
// price unchanged. The result is always within [0, base].
func FinalPrice(base decimal.Decimal, d *models.Discount) decimal.Decimal {
	if d == nil {
		return base
	}
	var final decimal.Decimal
	switch d.Kind {
	case models.DiscountPercent:
		final = base.Sub(base.Mul(d.Value).Div(oneHundred))
	case models.DiscountFixed:
		final = base.Sub(d.Value)
	default:
		return base
	}
	if final.IsNegative() {
		return decimal.Zero
	}
	if final.GreaterThan(base) {
		return base
	}
	return final
}

// EffectivePrice is a product's price after its own discount, before any
// coupon.
func EffectivePrice(p models.Product) decimal.Decimal {
	return FinalPrice(p.Price, p.Discount)
}

// DisplayPrice rounds to cents for presentation, half away from zero.
func DisplayPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CartQuote is the priced view of a cart.
type CartQuote struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	CouponCode     string
}

// Round returns the quote with every amount rounded to cents for display.
func (q CartQuote) Round() CartQuote {
	q.Subtotal = DisplayPrice(q.Subtotal)
	q.DiscountAmount = DisplayPrice(q.DiscountAmount)
	q.Total = DisplayPrice(q.Total)
	return q
}

// Quote prices a cart against the known coupons. An empty coupon code is the
// no-coupon path and always succeeds with a zero discount. A supplied code
// that is unknown, expired or not yet valid fails with
// models.ErrInvalidCoupon so the caller can report the rejected code instead
// of silently charging full price.
func Quote(cart models.Cart, coupons []models.Coupon, now time.Time) (CartQuote, error) {
	if err := cart.Validate(); err != nil {
		return CartQuote{}, err
	}

	subtotal := cart.Subtotal()
	code := models.NormalizeCode(cart.CouponCode)
	if code == "" {
		return CartQuote{Subtotal: subtotal, DiscountAmount: decimal.Zero, Total: subtotal}, nil
	}

	var matched *models.Coupon
	for i := range coupons {
		if coupons[i].Matches(code) {
			matched = &coupons[i]
			break
		}
	}
	if matched == nil {
		return CartQuote{}, fmt.Errorf("coupon %q: unknown code: %w", cart.CouponCode, models.ErrInvalidCoupon)
	}
	if err := matched.Validate(); err != nil {
		return CartQuote{}, fmt.Errorf("coupon %q: %w", matched.Code, err)
	}
	if st := coupon.Classify(*matched, now); !st.Applicable() {
		return CartQuote{}, fmt.Errorf("coupon %q: %s: %w", matched.Code, st, models.ErrInvalidCoupon)
	}

	d := matched.Discount()
	discount := subtotal.Sub(FinalPrice(subtotal, &d))
	return CartQuote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
		CouponCode:     matched.Code,
	}, nil
}
