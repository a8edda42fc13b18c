package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/pricewise/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestHTTPClient_ListProducts(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/products", r.URL.Path)
		gotQuery = map[string]string{
			"search":   r.URL.Query().Get("search"),
			"minPrice": r.URL.Query().Get("minPrice"),
			"page":     r.URL.Query().Get("page"),
			"limit":    r.URL.Query().Get("limit"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "name": "Pen", "price": 10.5, "stock": 3},
				{"id": 2, "name": "Marker", "price": 20.0, "stock": 1,
					"discount": map[string]any{"type": "percent", "value": 25.0}},
			},
			"totalPages": 1,
			"totalItems": 2,
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	page, err := client.ListProducts(context.Background(), models.FilterSpec{
		Search:   "pen",
		MinPrice: decPtr("5"),
		Page:     1,
		PageSize: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, "pen", gotQuery["search"])
	assert.Equal(t, "5", gotQuery["minPrice"])
	assert.Equal(t, "1", gotQuery["page"])
	assert.Equal(t, "9", gotQuery["limit"])

	assert.Equal(t, 2, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Pen", page.Items[0].Name)
	assert.True(t, page.Items[0].Price.Equal(dec("10.5")))
	require.NotNil(t, page.Items[1].Discount)
	assert.Equal(t, models.DiscountPercent, page.Items[1].Discount.Kind)
}

func TestHTTPClient_ListProducts_RejectsInvalidSpec(t *testing.T) {
	client := NewHTTPClient("http://unused")
	_, err := client.ListProducts(context.Background(), models.FilterSpec{Page: 0, PageSize: 10})

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestHTTPClient_CreateCoupon_DuplicateCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "coupon code already exists"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.CreateCoupon(context.Background(), models.Coupon{
		Code:       "PROMO10",
		Kind:       models.DiscountPercent,
		Value:      dec("10"),
		ValidFrom:  time.Now().UTC(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrDuplicateCode)
}

func TestHTTPClient_CreateCoupon_ValidatesBeforeSending(t *testing.T) {
	client := NewHTTPClient("http://unused")
	_, err := client.CreateCoupon(context.Background(), models.Coupon{Code: ""})

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func newOrderCart() models.Cart {
	var cart models.Cart
	cart.SetLine(1, 2, dec("10.00"))
	cart.CouponCode = "PROMO10"
	return cart
}

func TestHTTPClient_CreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Items []struct {
				ProductID int64 `json:"productId"`
				Quantity  int   `json:"quantity"`
			} `json:"items"`
			CouponCode string `json:"couponCode"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "PROMO10", body.CouponCode)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"orderId": "abc-123", "subtotal": 20.0, "discountApplied": 2.0,
			"totalFinal": 18.0, "couponCode": "promo10",
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	conf, err := client.CreateOrder(context.Background(), newOrderCart())
	require.NoError(t, err)

	assert.Equal(t, "abc-123", conf.OrderID)
	assert.True(t, conf.TotalFinal.Equal(dec("18")))
}

func TestHTTPClient_CreateOrder_InvalidCoupon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": `coupon "NOPE": unknown code`})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.CreateOrder(context.Background(), newOrderCart())
	assert.ErrorIs(t, err, models.ErrInvalidCoupon)
}

func TestHTTPClient_CreateOrder_OutOfStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "product 1: insufficient stock"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.CreateOrder(context.Background(), newOrderCart())
	assert.ErrorIs(t, err, models.ErrOutOfStock)
}

func TestHTTPClient_CreateOrder_EmptyCart(t *testing.T) {
	client := NewHTTPClient("http://unused")
	_, err := client.CreateOrder(context.Background(), models.Cart{})

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestHTTPClient_ApplyCouponToProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"finalPrice": 45.0})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	final, err := client.ApplyCouponToProduct(context.Background(), 1, "PROMO10")
	require.NoError(t, err)
	assert.True(t, final.Equal(dec("45")))
}

func TestHTTPClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewHTTPClient(srv.URL)
	_, err := client.ListCoupons(context.Background())
	require.Error(t, err)

	var ne *NetworkError
	assert.ErrorAs(t, err, &ne)
}

func TestHTTPClient_ServerErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.ListCoupons(context.Background())

	var ne *NetworkError
	assert.ErrorAs(t, err, &ne)
}

func TestHTTPClient_RemoveProductDiscount_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/products/42/discount", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	err := client.RemoveProductDiscount(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
