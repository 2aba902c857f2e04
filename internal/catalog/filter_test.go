package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

func sampleCatalog() []domain.Product {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "p1", Name: "Leather Jacket", Price: 12000, Category: "Jackets", Brand: "Nova", DateAdded: base},
		{ID: "p2", Name: "Denim Jacket", Price: 8000, Category: "Jackets", Brand: "Urban", DateAdded: base.AddDate(0, 0, -45)},
		{ID: "p3", Name: "Silk Scarf", Price: 3500, Category: "Accessories", Brand: "Nova", DateAdded: base.AddDate(0, 0, -10)},
		{ID: "p4", Name: "Wool Scarf", Price: 3500, Category: "Accessories", Brand: "Urban", DateAdded: base.AddDate(0, 0, -60)},
	}
}

// ============================================================================
// FilterByCategory Tests
// ============================================================================

func TestFilterByCategory_Match(t *testing.T) {
	got := FilterByCategory(sampleCatalog(), "Jackets")
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "Jackets", p.Category)
	}
}

func TestFilterByCategory_All(t *testing.T) {
	catalog := sampleCatalog()
	got := FilterByCategory(catalog, domain.CategoryAll)
	assert.Equal(t, catalog, got)
}

func TestFilterByCategory_UnknownYieldsEmpty(t *testing.T) {
	got := FilterByCategory(sampleCatalog(), "Shoes")
	assert.Empty(t, got)
}

func TestFilterByCategory_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	_ = FilterByCategory(catalog, "Jackets")
	assert.Equal(t, sampleCatalog(), catalog)
}

// ============================================================================
// FilterByName Tests
// ============================================================================

func TestFilterByName_CaseInsensitive(t *testing.T) {
	got := FilterByName(sampleCatalog(), "SCARF")
	assert.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "p4", got[1].ID)
}

func TestFilterByName_EmptyQueryIsIdentity(t *testing.T) {
	catalog := sampleCatalog()
	assert.Equal(t, catalog, FilterByName(catalog, ""))
}

func TestFilterByName_NoMatch(t *testing.T) {
	assert.Empty(t, FilterByName(sampleCatalog(), "boots"))
}

// ============================================================================
// FilterByBrand Tests
// ============================================================================

func TestFilterByBrand(t *testing.T) {
	got := FilterByBrand(sampleCatalog(), "Nova")
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestFilterByBrand_EmptyIsIdentity(t *testing.T) {
	catalog := sampleCatalog()
	assert.Equal(t, catalog, FilterByBrand(catalog, ""))
}

// ============================================================================
// SortByPrice Tests
// ============================================================================

func TestSortByPrice_Ascending(t *testing.T) {
	got := SortByPrice(sampleCatalog(), domain.SortAscending)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortByPrice_Descending(t *testing.T) {
	got := SortByPrice(sampleCatalog(), domain.SortDescending)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortByPrice_StableOnTies(t *testing.T) {
	// p3 and p4 share a price; their input order must survive both sorts.
	asc := SortByPrice(sampleCatalog(), domain.SortAscending)
	assert.Equal(t, "p3", asc[0].ID)
	assert.Equal(t, "p4", asc[1].ID)

	desc := SortByPrice(sampleCatalog(), domain.SortDescending)
	assert.Equal(t, "p3", desc[2].ID)
	assert.Equal(t, "p4", desc[3].ID)
}

// ============================================================================
// WindowByRecency Tests
// ============================================================================

func TestWindowByRecency(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	got := WindowByRecency(sampleCatalog(), now)
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestWindowByRecency_BoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "edge", DateAdded: now.Add(-RecencyWindow)},
		{ID: "stale", DateAdded: now.Add(-RecencyWindow - time.Second)},
	}
	got := WindowByRecency(products, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "edge", got[0].ID)
}

// ============================================================================
// ComposeView Tests
// ============================================================================

func TestComposeView_FiltersBeforeSort(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	got := ComposeView(sampleCatalog(), ViewParams{
		Category:  "Jackets",
		Direction: domain.SortAscending,
	}, now)
	assert.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
}

func TestComposeView_RecentOnly(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	got := ComposeView(sampleCatalog(), ViewParams{
		Category:   domain.CategoryAll,
		RecentOnly: true,
		Direction:  domain.SortDescending,
	}, now)
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestComposeView_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	params := ViewParams{Category: domain.CategoryAll, Query: "a", Direction: domain.SortAscending, RecentOnly: true}
	first := ComposeView(sampleCatalog(), params, now)
	second := ComposeView(sampleCatalog(), params, now)
	assert.Equal(t, first, second)
}

// ============================================================================
// Categories / Brands Tests
// ============================================================================

func TestCategories(t *testing.T) {
	got := Categories(sampleCatalog())
	assert.Equal(t, []string{domain.CategoryAll, "Jackets", "Accessories"}, got)
}

func TestCategories_EmptyCatalog(t *testing.T) {
	assert.Equal(t, []string{domain.CategoryAll}, Categories(nil))
}

func TestBrands(t *testing.T) {
	got := Brands(sampleCatalog())
	assert.Equal(t, []string{"Nova", "Urban"}, got)
}

func TestBrands_SkipsEmpty(t *testing.T) {
	products := []domain.Product{{ID: "p1", Brand: ""}, {ID: "p2", Brand: "Nova"}}
	assert.Equal(t, []string{"Nova"}, Brands(products))
}
