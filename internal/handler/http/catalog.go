package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/httputil"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/validator"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/catalog"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/service"
)

// CatalogHandler handles HTTP requests for product catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
	now     func() time.Time
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateProductRequest is the JSON request body for adding a catalog product.
type CreateProductRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=500"`
	Price    int64    `json:"price" validate:"required,gte=0"`
	Category string   `json:"category" validate:"required"`
	Brand    string   `json:"brand" validate:"required"`
	Material string   `json:"material"`
	Sizes    []string `json:"sizes"`
	ImageURL string   `json:"image_url" validate:"omitempty,url"`
}

// ListProducts handles GET /api/v1/products
//
// Query parameters: category, q (name substring), brand, sort (asc|desc),
// recent (true to window to recently added products).
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := catalog.ViewParams{
		Category:   q.Get("category"),
		Query:      q.Get("q"),
		Brand:      q.Get("brand"),
		Direction:  domain.SortAscending,
		RecentOnly: q.Get("recent") == "true",
	}
	if params.Category == "" {
		params.Category = domain.CategoryAll
	}
	if sort := q.Get("sort"); sort != "" {
		if !domain.IsValidSortDirection(sort) {
			httputil.WriteError(w, r, apperrors.InvalidInput("sort must be asc or desc"), h.logger)
			return
		}
		params.Direction = domain.SortDirection(sort)
	}

	products := h.catalog.View(params, h.now().UTC())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"products": products,
		"count":    len(products),
	}})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), service.CreateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Brand:    req.Brand,
		Material: req.Material,
		Sizes:    req.Sizes,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// ListCategories handles GET /api/v1/products/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"categories": h.catalog.Categories(),
	}})
}

// ListBrands handles GET /api/v1/products/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"brands": h.catalog.Brands(),
	}})
}
