package repository

import (
	"context"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by the session ID.
	Delete(ctx context.Context, sessionID string) error
}

// ProductRepository defines the interface for catalog persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products in the catalog, oldest first.
	List(ctx context.Context) ([]domain.Product, error)
}
