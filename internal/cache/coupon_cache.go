package cache

import (
	"sync"
	"time"

	"github.com/pricewise/pricewise/internal/models"
)

// CouponCache holds the full coupon list for a short TTL so repeated checkout
// lookups don't hit the backend. Admin writes call Invalidate.
type CouponCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	coupons   []models.Coupon
	fetchedAt time.Time
}

func NewCouponCache(ttl time.Duration) *CouponCache {
	return &CouponCache{ttl: ttl}
}

func (c *CouponCache) Get() ([]models.Coupon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.coupons == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.coupons, true
}

func (c *CouponCache) Set(coupons []models.Coupon) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coupons = coupons
	c.fetchedAt = time.Now()
}

func (c *CouponCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coupons = nil
}
