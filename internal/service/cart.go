package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/event"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/repository"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single line item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct items allowed in a cart.
	MaxItemsPerCart = 50
)

// DefaultCurrency is the currency assigned to new carts.
const DefaultCurrency = "TND"

// CartQuote is the three-line total breakdown for a cart: the item total,
// the promo discount, and the final amount. FinalTotal is always
// Total - Discount.
type CartQuote struct {
	Code       string `json:"code,omitempty"`
	Total      int64  `json:"total"`
	Discount   int64  `json:"discount"`
	FinalTotal int64  `json:"final_total"`
}

// CartService owns the authoritative in-memory cart state per session and
// keeps it synchronized with the persistence store. Every mutation persists
// before returning; a persist failure is reported to the caller but the
// in-memory mutation is kept, so the UI stays responsive and the caller
// decides whether to retry.
//
// Operations on the same session are serialized through a per-session lock,
// so mutation order equals persisted-write order.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	promo    PromoResolver
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	mu   sync.Mutex
	cart *domain.Cart
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, promo PromoResolver, logger *slog.Logger) *CartService {
	if promo == nil {
		promo = NoDiscountResolver{}
	}
	return &CartService{
		repo:     repo,
		producer: producer,
		promo:    promo,
		logger:   logger,
		sessions: make(map[string]*sessionState),
	}
}

// GetCart returns a snapshot of the session's cart, restoring it from the
// store on first access. Absent or unreadable persisted data yields an empty
// cart rather than an error.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	state := s.session(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.ensureLoaded(ctx, state, sessionID); err != nil {
		return nil, err
	}

	return snapshot(state.cart), nil
}

// AddItem adds the given quantity of a product to the session's cart. If a
// line item for the product already exists its quantity is incremented and
// its price snapshot is left untouched; otherwise a new line item is
// inserted with the product's current price as the snapshot.
func (s *CartService) AddItem(ctx context.Context, sessionID string, product *domain.Product, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if product == nil || product.ID == "" {
		return nil, apperrors.InvalidInput("product is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	state := s.session(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.ensureLoaded(ctx, state, sessionID); err != nil {
		return nil, err
	}

	cart := state.cart
	if i := cart.FindItemIndex(product.ID); i >= 0 {
		newQty := cart.Items[i].Quantity + quantity
		if newQty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[i].Quantity = newQty
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.LineItem{
			ProductID:     product.ID,
			Name:          product.Name,
			PriceSnapshot: product.Price,
			Quantity:      quantity,
			ImageURL:      product.ImageURL,
		})
	}
	cart.UpdatedAt = time.Now().UTC()

	persistErr := s.persist(ctx, cart)

	s.publishUpdated(ctx, cart)
	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	return snapshot(cart), persistErr
}

// RemoveItem deletes the line item for the given product. Removing a product
// that is not in the cart is a no-op, so the operation is idempotent.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	state := s.session(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.ensureLoaded(ctx, state, sessionID); err != nil {
		return nil, err
	}

	cart := state.cart
	i := cart.FindItemIndex(productID)
	if i < 0 {
		return snapshot(cart), nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	persistErr := s.persist(ctx, cart)

	s.publishUpdated(ctx, cart)
	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return snapshot(cart), persistErr
}

// UpdateQuantity adjusts a line item's quantity by delta. A delta that would
// take the quantity below 1 is rejected and the cart is left unchanged;
// removal is only ever explicit via RemoveItem.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	state := s.session(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.ensureLoaded(ctx, state, sessionID); err != nil {
		return nil, err
	}

	cart := state.cart
	i := cart.FindItemIndex(productID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}

	newQty := cart.Items[i].Quantity + delta
	if newQty < 1 {
		return nil, apperrors.InvalidInput("quantity cannot go below 1")
	}
	if newQty > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart.Items[i].Quantity = newQty
	cart.UpdatedAt = time.Now().UTC()

	persistErr := s.persist(ctx, cart)

	s.publishUpdated(ctx, cart)
	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("quantity", newQty),
	)

	return snapshot(cart), persistErr
}

// ApplyPromoCode resolves a promo code against the session's current cart
// total and returns the quote. The cart itself is not mutated; discounts
// apply at quote time only.
func (s *CartService) ApplyPromoCode(ctx context.Context, sessionID, code string) (*CartQuote, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if code == "" {
		return nil, apperrors.InvalidInput("promo code is required")
	}

	state := s.session(sessionID)
	state.mu.Lock()
	if err := s.ensureLoaded(ctx, state, sessionID); err != nil {
		state.mu.Unlock()
		return nil, err
	}
	total := state.cart.TotalAmount()
	state.mu.Unlock()

	discount, err := s.promo.Resolve(ctx, code, total)
	if err != nil {
		return nil, fmt.Errorf("resolve promo code: %w", err)
	}
	if discount < 0 || discount > total {
		return nil, apperrors.Internal(fmt.Errorf("resolver returned discount %d for total %d", discount, total))
	}

	return &CartQuote{
		Code:       code,
		Total:      total,
		Discount:   discount,
		FinalTotal: total - discount,
	}, nil
}

// Quote returns the three-line total breakdown for the session's cart with
// no promo applied.
func (s *CartService) Quote(ctx context.Context, sessionID string) (*CartQuote, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total := cart.TotalAmount()
	return &CartQuote{Total: total, Discount: 0, FinalTotal: total}, nil
}

// Clear empties the session's cart and removes it from the store. Used after
// checkout completes.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	state := s.session(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()

	state.cart = newEmptyCart(sessionID)

	var persistErr error
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		persistErr = apperrors.Unavailable("delete cart", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return persistErr
}

// session returns the state holder for a session, creating it on first use.
func (s *CartService) session(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		state = &sessionState{}
		s.sessions[sessionID] = state
	}
	return state
}

// ensureLoaded restores the cart from the store on first access. A missing
// or malformed blob degrades to an empty cart; an empty cart is always a
// valid state, so this is resilience rather than data loss. Other read
// failures are surfaced. Caller must hold state.mu.
func (s *CartService) ensureLoaded(ctx context.Context, state *sessionState, sessionID string) error {
	if state.cart != nil {
		return nil
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			state.cart = newEmptyCart(sessionID)
			return nil
		}
		if errors.Is(err, apperrors.ErrMalformed) {
			s.logger.WarnContext(ctx, "persisted cart is malformed, starting empty",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
			state.cart = newEmptyCart(sessionID)
			return nil
		}
		return apperrors.Unavailable("load cart", err)
	}

	state.cart = cart
	return nil
}

// persist writes the cart through to the store. Failures are surfaced to the
// caller but never roll back the in-memory mutation.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
		return apperrors.Unavailable("save cart", err)
	}
	return nil
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.LineItem{},
		Currency:  DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// snapshot returns a deep copy so callers never alias the authoritative
// in-memory state.
func snapshot(cart *domain.Cart) *domain.Cart {
	out := *cart
	out.Items = make([]domain.LineItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out
}
