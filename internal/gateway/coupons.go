package gateway

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/pricewise/pricewise/internal/cache"
	"github.com/pricewise/pricewise/internal/models"
)

// CouponSource fronts ListCoupons with a TTL cache. Concurrent misses are
// collapsed into one backend call with singleflight.
type CouponSource struct {
	client Client
	cache  *cache.CouponCache
	sfg    singleflight.Group
}

func NewCouponSource(client Client, c *cache.CouponCache) *CouponSource {
	return &CouponSource{client: client, cache: c}
}

func (s *CouponSource) Get(ctx context.Context) ([]models.Coupon, error) {
	if coupons, ok := s.cache.Get(); ok {
		return coupons, nil
	}

	v, err, _ := s.sfg.Do("coupons", func() (interface{}, error) {
		coupons, err := s.client.ListCoupons(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(coupons)
		return coupons, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Coupon), nil
}

// CreateCoupon writes through the client and drops the cached list so the
// next read sees the new coupon.
func (s *CouponSource) CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	created, err := s.client.CreateCoupon(ctx, c)
	if err != nil {
		return models.Coupon{}, err
	}
	s.cache.Invalidate()
	return created, nil
}
