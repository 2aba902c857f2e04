package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/health"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/middleware"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/service"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	catalogService *service.CatalogService,
	storeLocations []domain.StoreLocation,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(cartService, catalogService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	storeHandler := NewStoreHandler(storeLocations, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", catalogHandler.ListProducts)
		r.Post("/", catalogHandler.CreateProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/brands", catalogHandler.ListBrands)
		r.Get("/{id}", catalogHandler.GetProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Get("/quote", cartHandler.GetQuote)
		r.Post("/promo", cartHandler.ApplyPromo)

		r.Post("/items", cartHandler.AddItem)
		r.Patch("/items/{productId}", cartHandler.UpdateItemQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", storeHandler.ListStores)
		r.Get("/nearest", storeHandler.NearestStores)
	})

	return r
}
