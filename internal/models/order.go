package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a confirmed checkout, priced at confirmation time.
type Order struct {
	ID             string
	Lines          []CartLine
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	CouponCode     string
	CreatedAt      time.Time
}

// OrderConfirmation is the acknowledgement returned to the caller once an
// order has been persisted.
type OrderConfirmation struct {
	OrderID        string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalFinal     decimal.Decimal
	CouponCode     string
}
