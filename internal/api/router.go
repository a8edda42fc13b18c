package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pricewise/pricewise/internal/api/handlers"
	"github.com/pricewise/pricewise/internal/cache"
	"github.com/pricewise/pricewise/internal/repository"
)

// NewRouter builds the HTTP router for the storefront service.
func NewRouter(db *sql.DB, couponCacheTTL time.Duration) http.Handler {
	productRepo := repository.NewProductRepo(db)
	couponRepo := repository.NewCouponRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	couponCache := cache.NewCouponCache(couponCacheTTL)

	productHandler := handlers.NewProductHandler(productRepo)
	couponHandler := handlers.NewCouponHandler(couponRepo, productRepo, couponCache)
	orderHandler := handlers.NewOrderHandler(productRepo, couponRepo, orderRepo, couponCache)

	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Delete("/{id}/discount", productHandler.RemoveDiscount)
		})
		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", couponHandler.List)
			r.Post("/", couponHandler.Create)
			r.Post("/apply", couponHandler.Apply)
		})
		r.Post("/orders", orderHandler.Create)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
