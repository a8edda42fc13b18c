package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/coupon"
	"github.com/pricewise/pricewise/internal/models"
	"github.com/pricewise/pricewise/internal/pricing"
)

// Wire shapes. Prices cross the wire as plain JSON numbers, rounded to cents
// here and nowhere earlier.

type DiscountDTO struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type ProductResponse struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price"`
	Stock         int          `json:"stock"`
	Discount      *DiscountDTO `json:"discount,omitempty"`
	DiscountPrice *float64     `json:"discountPrice,omitempty"`
}

type ProductPageResponse struct {
	Data       []ProductResponse `json:"data"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
}

type CouponRequest struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	OneShot    bool    `json:"oneShot"`
	ValidFrom  string  `json:"validFrom"`
	ValidUntil string  `json:"validUntil"`
}

type CouponResponse struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	OneShot    bool      `json:"oneShot"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	Status     string    `json:"status"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type OrderRequest struct {
	Items      []OrderItemRequest `json:"items"`
	CouponCode string             `json:"couponCode,omitempty"`
}

type OrderResponse struct {
	OrderID         string  `json:"orderId"`
	Subtotal        float64 `json:"subtotal"`
	DiscountApplied float64 `json:"discountApplied"`
	TotalFinal      float64 `json:"totalFinal"`
	CouponCode      string  `json:"couponCode,omitempty"`
}

type ApplyCouponRequest struct {
	ProductID  int64  `json:"productId"`
	CouponCode string `json:"couponCode"`
}

type ApplyCouponResponse struct {
	FinalPrice float64 `json:"finalPrice"`
}

func displayFloat(d decimal.Decimal) float64 {
	return pricing.DisplayPrice(d).InexactFloat64()
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       displayFloat(p.Price),
		Stock:       p.Stock,
	}
	if p.Discount != nil {
		resp.Discount = &DiscountDTO{
			Type:  string(p.Discount.Kind),
			Value: p.Discount.Value.InexactFloat64(),
		}
		dp := displayFloat(pricing.EffectivePrice(p))
		resp.DiscountPrice = &dp
	}
	return resp
}

func toCouponResponse(c models.Coupon, now time.Time) CouponResponse {
	return CouponResponse{
		ID:         c.ID,
		Code:       c.Code,
		Type:       string(c.Kind),
		Value:      c.Value.InexactFloat64(),
		OneShot:    c.OneShot,
		ValidFrom:  c.ValidFrom,
		ValidUntil: c.ValidUntil,
		Status:     coupon.Classify(c, now).Display(),
	}
}
