// Package catalog provides pure, stateless view functions over an immutable
// product list: filtering, stable price sorting and recency windowing. None
// of the functions mutate their input; each returns a fresh slice.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

// RecencyWindow is the trailing interval used to classify products as recent.
const RecencyWindow = 30 * 24 * time.Hour

// FilterByCategory returns the products whose category exactly matches the
// given category. CategoryAll is the identity filter.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == domain.CategoryAll {
		return clone(products)
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterByName returns the products whose name contains the query,
// case-insensitively. An empty query is the identity filter.
func FilterByName(products []domain.Product, query string) []domain.Product {
	if query == "" {
		return clone(products)
	}
	q := strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByBrand returns the products of the given brand. An empty brand is
// the identity filter.
func FilterByBrand(products []domain.Product, brand string) []domain.Product {
	if brand == "" {
		return clone(products)
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Brand == brand {
			out = append(out, p)
		}
	}
	return out
}

// SortByPrice returns the products ordered by price in the given direction.
// The sort is stable: equal-price products keep their input order.
func SortByPrice(products []domain.Product, direction domain.SortDirection) []domain.Product {
	out := clone(products)
	if direction == domain.SortDescending {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}
	return out
}

// WindowByRecency returns the products added within the recency window
// ending at now. The window boundary is inclusive: a product dated exactly
// now-RecencyWindow is kept. The clock is an explicit parameter so callers
// stay deterministic.
func WindowByRecency(products []domain.Product, now time.Time) []domain.Product {
	cutoff := now.Add(-RecencyWindow)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.DateAdded.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// ViewParams describes a composed catalog view.
type ViewParams struct {
	Category   string
	Query      string
	Brand      string
	Direction  domain.SortDirection
	RecentOnly bool
}

// ComposeView applies the category filter, then the name filter, then the
// brand filter, then (optionally) the recency window, then the price sort,
// in that fixed order.
func ComposeView(products []domain.Product, params ViewParams, now time.Time) []domain.Product {
	view := FilterByCategory(products, params.Category)
	view = FilterByName(view, params.Query)
	view = FilterByBrand(view, params.Brand)
	if params.RecentOnly {
		view = WindowByRecency(view, now)
	}
	return SortByPrice(view, params.Direction)
}

// Categories returns the distinct categories present in the catalog, in
// first-seen order, prefixed with CategoryAll.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{domain.CategoryAll}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Brands returns the distinct brands present in the catalog, in first-seen
// order.
func Brands(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	return out
}

func clone(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
