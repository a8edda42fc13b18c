package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pricewise/pricewise/internal/models"
)

// Stores required by the handlers (interfaces to allow mocking).

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	RemoveDiscount(ctx context.Context, id int64) error
}

type CouponStore interface {
	List(ctx context.Context) ([]models.Coupon, error)
	GetByCode(ctx context.Context, code string) (models.Coupon, error)
	Create(ctx context.Context, c models.Coupon) (models.Coupon, error)
}

type OrderStore interface {
	Create(ctx context.Context, o models.Order) (models.Order, error)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses. Unknown errors stay
// opaque to the client.
func writeError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.Is(err, models.ErrInvalidCoupon):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrDuplicateCode):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrOutOfStock):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
