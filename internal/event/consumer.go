package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/EcommerceSearch/pkg/kafka"

	"github.com/utafrali/EcommerceSearch/internal/domain"
	"github.com/utafrali/EcommerceSearch/internal/service"
)

// Kafka topics for product domain events consumed by the search service.
// The catalog service publishes these strictly after its transaction commits,
// so by the time a message arrives here the authoritative store has already
// accepted the mutation.
const (
	TopicProductCreated = "ecommerce.product.created"
	TopicProductUpdated = "ecommerce.product.updated"
	TopicProductDeleted = "ecommerce.product.deleted"
)

// ProductEventData is the payload of product.created and product.updated
// events. Brand name arrives denormalized so indexing needs no catalog
// round-trip.
type ProductEventData struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description"`
	SKU              string  `json:"sku"`
	CategoryID       *string `json:"category_id,omitempty"`
	BrandID          *string `json:"brand_id,omitempty"`
	BrandName        string  `json:"brand_name,omitempty"`
	BasePrice        int64   `json:"base_price"`
	DiscountPrice    *int64  `json:"discount_price,omitempty"`
	Currency         string  `json:"currency"`
	IsActive         bool    `json:"is_active"`
	IsFeatured       bool    `json:"is_featured"`
}

// ProductDeletedData is the payload of a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// Consumer translates product domain events into search index mutations.
// Index failures are absorbed by the service's Sync methods: the catalog
// write has already succeeded, so the index is allowed to lag but the event
// is never treated as failed because of an engine outage.
type Consumer struct {
	searchService *service.SearchService
	logger        *slog.Logger
}

// NewConsumer creates a new event consumer for the search service.
func NewConsumer(searchService *service.SearchService, logger *slog.Logger) *Consumer {
	return &Consumer{
		searchService: searchService,
		logger:        logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductCreated, TopicProductUpdated:
		return c.handleProductUpserted(ctx, event)
	case TopicProductDeleted:
		return c.handleProductDeleted(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleProductUpserted indexes a created or updated product. Both event
// types carry the full record and the index operation is a full-document
// overwrite, so they share one path.
func (c *Consumer) handleProductUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	c.searchService.SyncIndex(ctx, productFromEvent(&data))

	c.logger.DebugContext(ctx, "processed product event",
		slog.String("event_type", event.EventType),
		slog.String("product_id", data.ID),
	)

	return nil
}

// handleProductDeleted removes a deleted product from the index.
func (c *Consumer) handleProductDeleted(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductDeletedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal product.deleted data: %w", err)
	}

	c.searchService.SyncDelete(ctx, data.ID)

	c.logger.DebugContext(ctx, "processed product.deleted event",
		slog.String("product_id", data.ID),
	)

	return nil
}

// productFromEvent converts an event payload into the catalog record shape.
func productFromEvent(data *ProductEventData) *domain.Product {
	p := &domain.Product{
		ID:               data.ID,
		Name:             data.Name,
		Slug:             data.Slug,
		Description:      data.Description,
		ShortDescription: data.ShortDescription,
		SKU:              data.SKU,
		BasePrice:        data.BasePrice,
		DiscountPrice:    data.DiscountPrice,
		Currency:         data.Currency,
		CategoryID:       data.CategoryID,
		IsActive:         data.IsActive,
		IsFeatured:       data.IsFeatured,
	}

	if data.BrandID != nil {
		p.Brand = &domain.BrandRef{ID: *data.BrandID, Name: data.BrandName}
	}

	return p
}
