package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pricewise/pricewise/internal/models"
)

// CheckoutData is everything the checkout screen needs in one load.
type CheckoutData struct {
	Products models.ProductPage
	Coupons  []models.Coupon
}

// LoadCheckout fetches products and coupons in parallel. The engine imposes
// no ordering between the two calls; either failure cancels the other.
func LoadCheckout(ctx context.Context, fetcher *ProductFetcher, coupons *CouponSource, spec models.FilterSpec) (CheckoutData, error) {
	var data CheckoutData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := fetcher.Fetch(ctx, spec)
		if err != nil {
			return err
		}
		data.Products = page
		return nil
	})
	g.Go(func() error {
		list, err := coupons.Get(ctx)
		if err != nil {
			return err
		}
		data.Coupons = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return CheckoutData{}, err
	}
	return data, nil
}
