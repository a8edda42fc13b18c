// Package gateway is the narrow interface through which the engine reaches
// the storefront backend. It owns no business logic: every call is
// context-bound, fallible, and returns typed failures the caller can act on.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/models"
)

// Client is the data gateway consumed by the UI layer.
type Client interface {
	ListProducts(ctx context.Context, spec models.FilterSpec) (models.ProductPage, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error)
	CreateOrder(ctx context.Context, cart models.Cart) (models.OrderConfirmation, error)
	RemoveProductDiscount(ctx context.Context, productID int64) error
	ApplyCouponToProduct(ctx context.Context, productID int64, code string) (decimal.Decimal, error)
}

// ErrStaleResponse marks a fetch whose result arrived after a newer request
// for the same resource had already been issued. Callers discard it.
var ErrStaleResponse = errors.New("stale response discarded")

// NetworkError wraps a failed transport call. It is recoverable: the caller
// may retry at its discretion.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
