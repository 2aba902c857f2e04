package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/chedi-ouerghi/shop-mobilenative/pkg/kafka"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

// Kafka topics for storefront domain events.
var (
	TopicCartUpdated    = pkgkafka.Topic("cart", "updated")
	TopicCartCleared    = pkgkafka.Topic("cart", "cleared")
	TopicProductCreated = pkgkafka.Topic("product", "created")
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID   string         `json:"session_id"`
	Items       []LineItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
	Currency    string         `json:"currency"`
}

// LineItemData is the item payload within cart events.
type LineItemData struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceSnapshot int64  `json:"price_snapshot"`
	Quantity      int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]LineItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = LineItemData{
			ProductID:     item.ProductID,
			Name:          item.Name,
			PriceSnapshot: item.PriceSnapshot,
			Quantity:      item.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID:   cart.SessionID,
		Items:       items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
		Currency:    cart.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		Brand:     product.Brand,
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}
