package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/pricewise/pricewise/internal/models"
)

type httpResult struct {
	status int
	body   []byte
}

// HTTPClient talks to the storefront REST API. All requests pass through a
// circuit breaker so a flapping backend fails fast instead of piling up
// timeouts.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[httpResult]
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[httpResult](gobreaker.Settings{
			Name:    "storefront-api",
			Timeout: 15 * time.Second,
		}),
	}
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body, out any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.breaker.Execute(func() (httpResult, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return httpResult{}, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return httpResult{}, err
		}
		// 5xx trips the breaker; 4xx is a caller problem, not a backend one.
		if resp.StatusCode >= http.StatusInternalServerError {
			return httpResult{}, fmt.Errorf("server error: %s", resp.Status)
		}
		return httpResult{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}

	if res.status >= http.StatusOK && res.status < http.StatusMultipleChoices && out != nil {
		if err := json.Unmarshal(res.body, out); err != nil {
			return 0, nil, &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return res.status, res.body, nil
}

func remoteMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return "request rejected"
}

// Wire shapes, mirroring the REST surface.

type discountDTO struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type productDTO struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Stock       int          `json:"stock"`
	Discount    *discountDTO `json:"discount"`
}

type productPageDTO struct {
	Data       []productDTO `json:"data"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

type couponDTO struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	OneShot    bool      `json:"oneShot"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
}

func (d productDTO) toModel() models.Product {
	p := models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       decimal.NewFromFloat(d.Price),
		Stock:       d.Stock,
	}
	if d.Discount != nil {
		p.Discount = &models.Discount{
			Kind:  models.DiscountKind(d.Discount.Type),
			Value: decimal.NewFromFloat(d.Discount.Value),
		}
	}
	return p
}

func (d couponDTO) toModel() models.Coupon {
	return models.Coupon{
		ID:         d.ID,
		Code:       d.Code,
		Kind:       models.DiscountKind(d.Type),
		Value:      decimal.NewFromFloat(d.Value),
		OneShot:    d.OneShot,
		ValidFrom:  d.ValidFrom,
		ValidUntil: d.ValidUntil,
	}
}

func (c *HTTPClient) ListProducts(ctx context.Context, spec models.FilterSpec) (models.ProductPage, error) {
	if err := spec.Validate(); err != nil {
		return models.ProductPage{}, err
	}

	q := url.Values{}
	if spec.Search != "" {
		q.Set("search", spec.Search)
	}
	if spec.MinPrice != nil {
		q.Set("minPrice", spec.MinPrice.String())
	}
	if spec.MaxPrice != nil {
		q.Set("maxPrice", spec.MaxPrice.String())
	}
	if spec.HasDiscount {
		q.Set("hasDiscount", "true")
	}
	q.Set("page", strconv.Itoa(spec.Page))
	q.Set("limit", strconv.Itoa(spec.PageSize))

	var page productPageDTO
	status, body, err := c.do(ctx, "list products", http.MethodGet, "/api/v1/products?"+q.Encode(), nil, &page)
	if err != nil {
		return models.ProductPage{}, err
	}
	if status != http.StatusOK {
		return models.ProductPage{}, &models.ValidationError{Field: "filter", Reason: remoteMessage(body)}
	}

	items := make([]models.Product, len(page.Data))
	for i, d := range page.Data {
		items[i] = d.toModel()
	}
	return models.ProductPage{Items: items, TotalItems: page.TotalItems, TotalPages: page.TotalPages}, nil
}

func (c *HTTPClient) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var dtos []couponDTO
	status, body, err := c.do(ctx, "list coupons", http.MethodGet, "/api/v1/coupons", nil, &dtos)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "list coupons", Err: errors.New(remoteMessage(body))}
	}

	coupons := make([]models.Coupon, len(dtos))
	for i, d := range dtos {
		coupons[i] = d.toModel()
	}
	return coupons, nil
}

func (c *HTTPClient) CreateCoupon(ctx context.Context, coupon models.Coupon) (models.Coupon, error) {
	if err := coupon.Validate(); err != nil {
		return models.Coupon{}, err
	}

	req := map[string]any{
		"code":       coupon.Code,
		"type":       string(coupon.Kind),
		"value":      coupon.Value.InexactFloat64(),
		"oneShot":    coupon.OneShot,
		"validFrom":  coupon.ValidFrom.Format(time.RFC3339),
		"validUntil": coupon.ValidUntil.Format(time.RFC3339),
	}
	var created couponDTO
	status, body, err := c.do(ctx, "create coupon", http.MethodPost, "/api/v1/coupons", req, &created)
	if err != nil {
		return models.Coupon{}, err
	}
	switch status {
	case http.StatusCreated:
		return created.toModel(), nil
	case http.StatusConflict:
		return models.Coupon{}, fmt.Errorf("coupon %q: %w", coupon.Code, models.ErrDuplicateCode)
	default:
		return models.Coupon{}, &models.ValidationError{Field: "coupon", Reason: remoteMessage(body)}
	}
}

func (c *HTTPClient) CreateOrder(ctx context.Context, cart models.Cart) (models.OrderConfirmation, error) {
	if len(cart.Lines) == 0 {
		return models.OrderConfirmation{}, &models.ValidationError{Field: "items", Reason: "cart is empty"}
	}

	type itemDTO struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	items := make([]itemDTO, len(cart.Lines))
	for i, l := range cart.Lines {
		items[i] = itemDTO{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	req := map[string]any{"items": items, "couponCode": cart.CouponCode}

	var resp struct {
		OrderID         string  `json:"orderId"`
		Subtotal        float64 `json:"subtotal"`
		DiscountApplied float64 `json:"discountApplied"`
		TotalFinal      float64 `json:"totalFinal"`
		CouponCode      string  `json:"couponCode"`
	}
	status, body, err := c.do(ctx, "create order", http.MethodPost, "/api/v1/orders", req, &resp)
	if err != nil {
		return models.OrderConfirmation{}, err
	}
	switch status {
	case http.StatusCreated:
		return models.OrderConfirmation{
			OrderID:        resp.OrderID,
			Subtotal:       decimal.NewFromFloat(resp.Subtotal),
			DiscountAmount: decimal.NewFromFloat(resp.DiscountApplied),
			TotalFinal:     decimal.NewFromFloat(resp.TotalFinal),
			CouponCode:     resp.CouponCode,
		}, nil
	case http.StatusUnprocessableEntity:
		return models.OrderConfirmation{}, fmt.Errorf("%s: %w", remoteMessage(body), models.ErrInvalidCoupon)
	case http.StatusConflict:
		return models.OrderConfirmation{}, fmt.Errorf("%s: %w", remoteMessage(body), models.ErrOutOfStock)
	case http.StatusNotFound:
		return models.OrderConfirmation{}, fmt.Errorf("%s: %w", remoteMessage(body), models.ErrNotFound)
	default:
		return models.OrderConfirmation{}, &models.ValidationError{Field: "order", Reason: remoteMessage(body)}
	}
}

func (c *HTTPClient) RemoveProductDiscount(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/v1/products/%d/discount", productID)
	status, body, err := c.do(ctx, "remove product discount", http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("product %d: %w", productID, models.ErrNotFound)
	default:
		return &models.ValidationError{Field: "productId", Reason: remoteMessage(body)}
	}
}

func (c *HTTPClient) ApplyCouponToProduct(ctx context.Context, productID int64, code string) (decimal.Decimal, error) {
	req := map[string]any{"productId": productID, "couponCode": code}
	var resp struct {
		FinalPrice float64 `json:"finalPrice"`
	}
	status, body, err := c.do(ctx, "apply coupon", http.MethodPost, "/api/v1/coupons/apply", req, &resp)
	if err != nil {
		return decimal.Zero, err
	}
	switch status {
	case http.StatusOK:
		return decimal.NewFromFloat(resp.FinalPrice), nil
	case http.StatusUnprocessableEntity:
		return decimal.Zero, fmt.Errorf("%s: %w", remoteMessage(body), models.ErrInvalidCoupon)
	case http.StatusNotFound:
		return decimal.Zero, fmt.Errorf("%s: %w", remoteMessage(body), models.ErrNotFound)
	default:
		return decimal.Zero, &models.ValidationError{Field: "couponCode", Reason: remoteMessage(body)}
	}
}
