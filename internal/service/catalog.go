package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/catalog"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/event"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/repository"
)

// CreateProductInput holds the parameters for adding a product to the catalog.
type CreateProductInput struct {
	Name     string   `json:"name" validate:"required"`
	Price    int64    `json:"price" validate:"required,gte=0"`
	Category string   `json:"category" validate:"required"`
	Brand    string   `json:"brand" validate:"required"`
	Material string   `json:"material"`
	Sizes    []string `json:"sizes"`
	ImageURL string   `json:"image_url"`
}

// CatalogService serves read views over the product catalog. The catalog is
// loaded from the store once at startup and held in memory; reads never
// touch the database. Product creation writes through to the store and to
// the in-memory copy.
type CatalogService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger

	mu       sync.RWMutex
	products []domain.Product
}

// NewCatalogService creates a new catalog service. Call Load before serving.
func NewCatalogService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		products: []domain.Product{},
	}
}

// Load reads the full catalog from the store. Unreadable catalog data
// degrades to an empty catalog so the storefront can still serve; other
// store failures are surfaced.
func (s *CatalogService) Load(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrMalformed) {
			s.logger.WarnContext(ctx, "persisted catalog is malformed, starting empty",
				slog.String("error", err.Error()),
			)
			products = []domain.Product{}
		} else {
			return apperrors.Unavailable("load catalog", err)
		}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.Int("products", len(products)),
	)

	return nil
}

// Products returns a copy of the full catalog in load order.
func (s *CatalogService) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// View returns the catalog filtered, windowed and sorted per params. The
// clock is an explicit parameter so views stay deterministic.
func (s *CatalogService) View(params catalog.ViewParams, now time.Time) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.ComposeView(s.products, params, now)
}

// Categories returns the distinct catalog categories, starting with the
// wildcard category.
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.Categories(s.products)
}

// Brands returns the distinct catalog brands.
func (s *CatalogService) Brands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.Brands(s.products)
}

// GetProduct returns the catalog product with the given ID.
func (s *CatalogService) GetProduct(id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

// AddProduct creates a new catalog product, persisting it and making it
// visible to subsequent views.
func (s *CatalogService) AddProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Category == "" || input.Category == domain.CategoryAll {
		return nil, apperrors.InvalidInput("a concrete category is required")
	}

	product := &domain.Product{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Price:     input.Price,
		Category:  input.Category,
		Brand:     input.Brand,
		Material:  input.Material,
		Sizes:     input.Sizes,
		ImageURL:  input.ImageURL,
		DateAdded: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.mu.Lock()
	s.products = append(s.products, *product)
	s.mu.Unlock()

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product added to catalog",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}
