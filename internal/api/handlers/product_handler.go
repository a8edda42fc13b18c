package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/catalog"
	"github.com/pricewise/pricewise/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 9
)

type ProductHandler struct {
	products ProductStore
}

func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /products. Filtering and paging run over the full catalog
// via the catalog package.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := catalog.Filter(products, spec)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]ProductResponse, len(page.Items))
	for i, p := range page.Items {
		data[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, ProductPageResponse{
		Data:       data,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	})
}

// RemoveDiscount handles DELETE /products/{id}/discount.
func (h *ProductHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, &models.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}
	if err := h.products.RemoveDiscount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "discount removed"})
}

func parseFilterSpec(r *http.Request) (models.FilterSpec, error) {
	q := r.URL.Query()
	spec := models.FilterSpec{
		Search:      q.Get("search"),
		HasDiscount: q.Get("hasDiscount") == "true",
		Page:        defaultPage,
		PageSize:    defaultPageSize,
	}

	if v := q.Get("minPrice"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			return models.FilterSpec{}, &models.ValidationError{Field: "minPrice", Reason: "must be a number"}
		}
		spec.MinPrice = &min
	}
	if v := q.Get("maxPrice"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil {
			return models.FilterSpec{}, &models.ValidationError{Field: "maxPrice", Reason: "must be a number"}
		}
		spec.MaxPrice = &max
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return models.FilterSpec{}, &models.ValidationError{Field: "page", Reason: "must be an integer"}
		}
		spec.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return models.FilterSpec{}, &models.ValidationError{Field: "limit", Reason: "must be an integer"}
		}
		spec.PageSize = limit
	}
	return spec, nil
}
