package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/httpclient"
)

func TestNoDiscountResolver(t *testing.T) {
	var r NoDiscountResolver

	discount, err := r.Resolve(context.Background(), "ANYCODE", 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), discount)
}

func newTestPromoResolver(t *testing.T, baseURL string) *HTTPPromoResolver {
	t.Helper()
	client := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("promo-test-"+t.Name()), newTestLogger())
	return NewHTTPPromoResolver(cb, baseURL, newTestLogger())
}

func TestHTTPPromoResolver_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/promos/resolve", r.URL.Path)

		var req promoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SUMMER26", req.Code)
		assert.Equal(t, int64(4000), req.Total)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(promoResponse{Discount: 500})
	}))
	defer srv.Close()

	resolver := newTestPromoResolver(t, srv.URL)
	discount, err := resolver.Resolve(context.Background(), "SUMMER26", 4000)

	require.NoError(t, err)
	assert.Equal(t, int64(500), discount)
}

func TestHTTPPromoResolver_ClampsDiscountToTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(promoResponse{Discount: 99999})
	}))
	defer srv.Close()

	resolver := newTestPromoResolver(t, srv.URL)
	discount, err := resolver.Resolve(context.Background(), "BIG", 4000)

	require.NoError(t, err)
	assert.Equal(t, int64(4000), discount)
}

func TestHTTPPromoResolver_UnreachableDegradesToZero(t *testing.T) {
	resolver := newTestPromoResolver(t, "http://127.0.0.1:1")

	discount, err := resolver.Resolve(context.Background(), "SUMMER26", 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), discount)
}
