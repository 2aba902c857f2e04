package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"
	pkgkafka "github.com/chedi-ouerghi/shop-mobilenative/pkg/kafka"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/catalog"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/event"
)

// --- Mock Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func newTestCatalogService(repo *mockProductRepository) *CatalogService {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
	return NewCatalogService(repo, producer, logger)
}

func testCatalog() []domain.Product {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "p1", Name: "Leather Jacket", Price: 12000, Category: "Jackets", Brand: "Nova", DateAdded: base},
		{ID: "p2", Name: "Denim Jacket", Price: 8000, Category: "Jackets", Brand: "Urban", DateAdded: base.AddDate(0, 0, -45)},
		{ID: "p3", Name: "Silk Scarf", Price: 3500, Category: "Accessories", Brand: "Nova", DateAdded: base.AddDate(0, 0, -10)},
	}
}

// --- Load ---

func TestCatalogLoad_Success(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)

	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()

	require.NoError(t, svc.Load(context.Background()))
	assert.Len(t, svc.Products(), 3)
	repo.AssertExpectations(t)
}

func TestCatalogLoad_MalformedDegradestoEmpty(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)

	repo.On("List", mock.Anything).
		Return(nil, apperrors.Malformed("product", errors.New("invalid character"))).Once()

	require.NoError(t, svc.Load(context.Background()))
	assert.Empty(t, svc.Products())
	repo.AssertExpectations(t)
}

func TestCatalogLoad_StoreFailureSurfaces(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)

	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	err := svc.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

// --- Views ---

func TestCatalogView(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	view := svc.View(catalog.ViewParams{
		Category:  "Jackets",
		Direction: domain.SortAscending,
	}, now)

	require.Len(t, view, 2)
	assert.Equal(t, "p2", view[0].ID)
	assert.Equal(t, "p1", view[1].ID)
}

func TestCatalogCategoriesAndBrands(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, []string{domain.CategoryAll, "Jackets", "Accessories"}, svc.Categories())
	assert.Equal(t, []string{"Nova", "Urban"}, svc.Brands())
}

func TestCatalogGetProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	p, err := svc.GetProduct("p2")
	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", p.Name)

	p, err = svc.GetProduct("ghost")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogProducts_ReturnsCopy(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	first := svc.Products()
	first[0].Name = "mutated"

	second := svc.Products()
	assert.Equal(t, "Leather Jacket", second[0].Name)
}

// --- AddProduct ---

func TestAddProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)
	repo.On("List", mock.Anything).Return(testCatalog(), nil).Once()
	require.NoError(t, svc.Load(context.Background()))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Wool Coat" && p.ID != "" && !p.DateAdded.IsZero()
	})).Return(nil).Once()

	p, err := svc.AddProduct(context.Background(), CreateProductInput{
		Name:     "Wool Coat",
		Price:    15000,
		Category: "Coats",
		Brand:    "Nova",
		Material: "Wool",
		Sizes:    []string{"M", "L"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	// The new product is visible to subsequent views.
	assert.Len(t, svc.Products(), 4)
	assert.Contains(t, svc.Categories(), "Coats")
	repo.AssertExpectations(t)
}

func TestAddProduct_Validation(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)

	tests := []CreateProductInput{
		{Name: "", Price: 100, Category: "Coats", Brand: "Nova"},
		{Name: "Coat", Price: -1, Category: "Coats", Brand: "Nova"},
		{Name: "Coat", Price: 100, Category: "", Brand: "Nova"},
		{Name: "Coat", Price: 100, Category: domain.CategoryAll, Brand: "Nova"},
	}
	for _, input := range tests {
		p, err := svc.AddProduct(context.Background(), input)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddProduct_StoreFailure(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestCatalogService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	p, err := svc.AddProduct(context.Background(), CreateProductInput{
		Name:     "Wool Coat",
		Price:    15000,
		Category: "Coats",
		Brand:    "Nova",
	})
	assert.Nil(t, p)
	require.Error(t, err)

	// Nothing appended on failure.
	assert.Empty(t, svc.Products())
	repo.AssertExpectations(t)
}
