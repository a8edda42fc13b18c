package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/cache"
	"github.com/pricewise/pricewise/internal/coupon"
	"github.com/pricewise/pricewise/internal/models"
	"github.com/pricewise/pricewise/internal/pricing"
)

type CouponHandler struct {
	coupons  CouponStore
	products ProductStore
	cache    *cache.CouponCache
}

func NewCouponHandler(coupons CouponStore, products ProductStore, c *cache.CouponCache) *CouponHandler {
	return &CouponHandler{coupons: coupons, products: products, cache: c}
}

// List handles GET /coupons.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, ok := h.cache.Get()
	if !ok {
		var err error
		coupons, err = h.coupons.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		h.cache.Set(coupons)
	}

	now := time.Now().UTC()
	resp := make([]CouponResponse, len(coupons))
	for i, c := range coupons {
		resp[i] = toCouponResponse(c, now)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /coupons.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	c, err := couponFromRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.coupons.Create(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	writeJSON(w, http.StatusCreated, toCouponResponse(created, time.Now().UTC()))
}

// Apply handles POST /coupons/apply: the final price of one product with a
// coupon on top of its own discount.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}
	if models.NormalizeCode(req.CouponCode) == "" {
		writeError(w, &models.ValidationError{Field: "couponCode", Reason: "required"})
		return
	}

	product, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.coupons.GetByCode(r.Context(), req.CouponCode)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, fmt.Errorf("coupon %q: unknown code: %w", req.CouponCode, models.ErrInvalidCoupon))
			return
		}
		writeError(w, err)
		return
	}
	if st := coupon.Classify(c, time.Now().UTC()); !st.Applicable() {
		writeError(w, fmt.Errorf("coupon %q: %s: %w", c.Code, st, models.ErrInvalidCoupon))
		return
	}

	d := c.Discount()
	final := pricing.FinalPrice(pricing.EffectivePrice(product), &d)
	writeJSON(w, http.StatusOK, ApplyCouponResponse{FinalPrice: displayFloat(final)})
}

func couponFromRequest(req CouponRequest) (models.Coupon, error) {
	validFrom, err := time.Parse(time.RFC3339, req.ValidFrom)
	if err != nil {
		return models.Coupon{}, &models.ValidationError{Field: "validFrom", Reason: "must be RFC3339"}
	}
	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return models.Coupon{}, &models.ValidationError{Field: "validUntil", Reason: "must be RFC3339"}
	}

	c := models.Coupon{
		Code:       req.Code,
		Kind:       models.DiscountKind(req.Type),
		Value:      decimal.NewFromFloat(req.Value),
		OneShot:    req.OneShot,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
	if err := c.Validate(); err != nil {
		return models.Coupon{}, err
	}
	return c, nil
}
