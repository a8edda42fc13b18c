package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pricewise/pricewise/internal/cache"
	"github.com/pricewise/pricewise/internal/models"
	"github.com/pricewise/pricewise/internal/pricing"
)

type OrderHandler struct {
	products ProductStore
	coupons  CouponStore
	orders   OrderStore
	cache    *cache.CouponCache
}

func NewOrderHandler(products ProductStore, coupons CouponStore, orders OrderStore, c *cache.CouponCache) *OrderHandler {
	return &OrderHandler{products: products, coupons: coupons, orders: orders, cache: c}
}

// Create handles POST /orders: prices the cart, validates the coupon and
// persists the order with its stock decrement in one transaction.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}
	if len(req.Items) == 0 {
		writeError(w, &models.ValidationError{Field: "items", Reason: "at least one item is required"})
		return
	}

	ctx := r.Context()

	// Unit prices are snapshotted at the product's current effective price,
	// so the quote and the stored order agree even if the catalog changes
	// mid-checkout.
	var cart models.Cart
	for _, item := range req.Items {
		if item.Quantity < 1 {
			writeError(w, &models.ValidationError{Field: "quantity", Reason: "must be at least 1"})
			return
		}
		product, err := h.products.Get(ctx, item.ProductID)
		if err != nil {
			writeError(w, err)
			return
		}
		cart.SetLine(product.ID, item.Quantity, pricing.EffectivePrice(product))
	}
	cart.CouponCode = req.CouponCode

	coupons, ok := h.cache.Get()
	if !ok {
		var err error
		coupons, err = h.coupons.List(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		h.cache.Set(coupons)
	}

	quote, err := pricing.Quote(cart, coupons, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Create(ctx, models.Order{
		Lines:          cart.Lines,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.DiscountAmount,
		Total:          quote.Total,
		CouponCode:     quote.CouponCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rounded := quote.Round()
	writeJSON(w, http.StatusCreated, OrderResponse{
		OrderID:         order.ID,
		Subtotal:        rounded.Subtotal.InexactFloat64(),
		DiscountApplied: rounded.DiscountAmount.InexactFloat64(),
		TotalFinal:      rounded.Total.InexactFloat64(),
		CouponCode:      order.CouponCode,
	})
}
