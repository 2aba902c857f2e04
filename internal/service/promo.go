package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/httpclient"
)

// PromoResolver resolves a promo code into a discount amount in cents for
// the given cart total.
type PromoResolver interface {
	Resolve(ctx context.Context, code string, total int64) (int64, error)
}

// NoDiscountResolver accepts every code and grants no discount. It is the
// default policy while no promo backend is configured, and keeps the
// total/discount/final-total breakdown well-defined.
type NoDiscountResolver struct{}

// Resolve always returns a zero discount.
func (NoDiscountResolver) Resolve(_ context.Context, _ string, _ int64) (int64, error) {
	return 0, nil
}

// HTTPPromoResolver resolves promo codes against a remote promo service,
// guarded by a circuit breaker. When the service is unreachable or the
// breaker is open it degrades to a zero discount instead of failing the
// quote.
type HTTPPromoResolver struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewHTTPPromoResolver creates a resolver backed by the promo service at baseURL.
func NewHTTPPromoResolver(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *HTTPPromoResolver {
	return &HTTPPromoResolver{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

type promoRequest struct {
	Code  string `json:"code"`
	Total int64  `json:"total"`
}

type promoResponse struct {
	Discount int64 `json:"discount"`
}

// Resolve asks the promo service for the discount granted by code.
func (r *HTTPPromoResolver) Resolve(ctx context.Context, code string, total int64) (int64, error) {
	body, err := json.Marshal(promoRequest{Code: code, Total: total})
	if err != nil {
		return 0, fmt.Errorf("marshal promo request: %w", err)
	}

	resp, err := r.client.Post(ctx, r.baseURL+"/v1/promos/resolve", "application/json", bytes.NewReader(body))
	if err != nil {
		r.logger.WarnContext(ctx, "promo service unreachable, granting no discount",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
		return 0, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if err := httpclient.ParseResponseError(resp, "promo"); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("promo service returned status %d", resp.StatusCode)
	}

	var out promoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode promo response: %w", err)
	}

	if out.Discount < 0 {
		out.Discount = 0
	}
	if out.Discount > total {
		out.Discount = total
	}

	return out.Discount, nil
}
