package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/database"
	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	sizesJSON, err := json.Marshal(p.Sizes)
	if err != nil {
		return fmt.Errorf("marshal sizes: %w", err)
	}

	query := `
		INSERT INTO products (id, name, price, category, brand, material, sizes, image_url, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Price,
		p.Category,
		p.Brand,
		p.Material,
		sizesJSON,
		p.ImageURL,
		p.DateAdded,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, price, category, brand, material, sizes, image_url, date_added
		FROM products
		WHERE id = $1`

	var (
		p         domain.Product
		sizesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Category,
		&p.Brand,
		&p.Material,
		&sizesJSON,
		&p.ImageURL,
		&p.DateAdded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if sizesJSON != nil {
		if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
			return nil, apperrors.Malformed("product", err)
		}
	}

	return &p, nil
}

// List returns all products in the catalog, oldest first. The catalog is
// small and immutable within a session, so no pagination is applied.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, category, brand, material, sizes, image_url, date_added
		FROM products
		ORDER BY date_added ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p         domain.Product
			sizesJSON []byte
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Category,
			&p.Brand,
			&p.Material,
			&sizesJSON,
			&p.ImageURL,
			&p.DateAdded,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		if sizesJSON != nil {
			if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
				return nil, apperrors.Malformed("product", err)
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
