package domain

import (
	"time"
)

// CategoryAll is the wildcard category: filtering by it returns the
// catalog unchanged.
const CategoryAll = "All"

// Product represents a product in the storefront catalog. Records are
// immutable once loaded; prices are stored in minor units (cents).
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	Material  string    `json:"material"`
	Sizes     []string  `json:"sizes,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	DateAdded time.Time `json:"date_added"`
}

// SortDirection controls price ordering in catalog views.
type SortDirection string

// Sort direction constants.
const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// IsValidSortDirection checks whether the given string is a valid sort direction.
func IsValidSortDirection(direction string) bool {
	switch SortDirection(direction) {
	case SortAscending, SortDescending:
		return true
	}
	return false
}
