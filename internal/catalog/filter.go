// Package catalog turns a filter spec into a deterministic, ordered, paged
// view of a product collection. It runs the same way on either side of the
// gateway.
package catalog

import (
	"strings"

	"github.com/pricewise/pricewise/internal/models"
	"github.com/pricewise/pricewise/internal/pricing"
)

// Filter narrows products to those matching the spec and returns the
// requested page. Input order is preserved; no re-sort happens. A page past
// the end yields an empty page, not an error.
func Filter(products []models.Product, spec models.FilterSpec) (models.ProductPage, error) {
	if err := spec.Validate(); err != nil {
		return models.ProductPage{}, err
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec) {
			matched = append(matched, p)
		}
	}

	totalItems := len(matched)
	totalPages := (totalItems + spec.PageSize - 1) / spec.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (spec.Page - 1) * spec.PageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + spec.PageSize
	if end > totalItems {
		end = totalItems
	}

	return models.ProductPage{
		Items:      matched[start:end],
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// matches ANDs the spec's predicates. Price bounds apply to the effective
// price, so a discounted product is judged by what the customer would pay.
func matches(p models.Product, spec models.FilterSpec) bool {
	if s := strings.TrimSpace(spec.Search); s != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(s)) {
			return false
		}
	}
	price := pricing.EffectivePrice(p)
	if spec.MinPrice != nil && price.LessThan(*spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && price.GreaterThan(*spec.MaxPrice) {
		return false
	}
	if spec.HasDiscount && p.Discount == nil {
		return false
	}
	return true
}
