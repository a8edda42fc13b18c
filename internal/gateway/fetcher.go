package gateway

import (
	"context"
	"sync"

	"github.com/pricewise/pricewise/internal/models"
)

// ProductFetcher serializes catalog fetches under a latest-request-wins
// policy: when filters change faster than responses arrive, the result of a
// superseded fetch is discarded instead of overwriting newer data.
type ProductFetcher struct {
	client Client

	mu  sync.Mutex
	seq uint64
}

func NewProductFetcher(client Client) *ProductFetcher {
	return &ProductFetcher{client: client}
}

// Fetch runs ListProducts. If a newer Fetch was issued before this one
// returned, the result is dropped and ErrStaleResponse comes back instead.
func (f *ProductFetcher) Fetch(ctx context.Context, spec models.FilterSpec) (models.ProductPage, error) {
	f.mu.Lock()
	f.seq++
	id := f.seq
	f.mu.Unlock()

	page, err := f.client.ListProducts(ctx, spec)

	f.mu.Lock()
	latest := f.seq
	f.mu.Unlock()
	if id != latest {
		return models.ProductPage{}, ErrStaleResponse
	}
	return page, err
}
