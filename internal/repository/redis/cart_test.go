package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		SessionID: "sess-001",
		Items: []domain.LineItem{
			{
				ProductID:     "prod-1",
				Name:          "Leather Jacket",
				PriceSnapshot: 12000,
				Quantity:      2,
				ImageURL:      "https://img.example.com/jacket.jpg",
			},
		},
		Currency:  "TND",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)

	// Set data directly in miniredis.
	require.NoError(t, mr.Set("cart:"+cart.SessionID, string(data)))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.SessionID, got.SessionID)
	assert.Equal(t, cart.Currency, got.Currency)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "prod-1", got.Items[0].ProductID)
	assert.Equal(t, "Leather Jacket", got.Items[0].Name)
	assert.Equal(t, int64(12000), got.Items[0].PriceSnapshot)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "nonexistent-session")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_MalformedJSON(t *testing.T) {
	repo, mr := setupTestRedis(t)

	// Set corrupted JSON data.
	require.NoError(t, mr.Set("cart:sess-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "sess-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformed)
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestCartRepository_Save_RoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart, got)
}

func TestCartRepository_Save_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	ttl := mr.TTL("cart:" + cart.SessionID)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestCartRepository_Save_Overwrites(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, cart))

	cart.Items[0].Quantity = 5
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Items[0].Quantity)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.Delete(ctx, cart.SessionID))

	got, err := repo.Get(ctx, cart.SessionID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Delete_MissingKeyIsNoop(t *testing.T) {
	repo, _ := setupTestRedis(t)

	assert.NoError(t, repo.Delete(context.Background(), "never-saved"))
}
