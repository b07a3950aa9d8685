package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/utafrali/EcommerceSearch/pkg/kafka"

	"github.com/utafrali/EcommerceSearch/internal/domain"
	"github.com/utafrali/EcommerceSearch/internal/engine/memory"
	"github.com/utafrali/EcommerceSearch/internal/engine/noop"
	"github.com/utafrali/EcommerceSearch/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func productEvent(t *testing.T, eventType string, data any) *pkgkafka.Event {
	t.Helper()
	event, err := pkgkafka.NewEvent(eventType, "p1", "product", "product-service", data)
	require.NoError(t, err)
	return event
}

func eventData(id, name string) ProductEventData {
	categoryID := "elektronik"
	brandID := "samsung"
	return ProductEventData{
		ID:         id,
		Name:       name,
		Slug:       "galaxy-s24",
		SKU:        "GS24-128",
		CategoryID: &categoryID,
		BrandID:    &brandID,
		BrandName:  "Samsung",
		BasePrice:  42999,
		Currency:   "TRY",
		IsActive:   true,
	}
}

func TestHandle_ProductCreated(t *testing.T) {
	ctx := context.Background()
	eng := memory.New()
	svc := service.NewSearchService(eng, testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	event := productEvent(t, TopicProductCreated, eventData("p1", "Galaxy S24"))
	require.NoError(t, consumer.Handle(ctx, event))

	result, err := eng.Search(ctx, &domain.SearchQuery{Query: "galaxy", Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "samsung", result.Products[0].BrandID)
	assert.Equal(t, "Samsung", result.Products[0].BrandName)
	assert.Equal(t, "elektronik", result.Products[0].CategoryID)
}

func TestHandle_ProductUpdatedOverwritesDocument(t *testing.T) {
	ctx := context.Background()
	eng := memory.New()
	svc := service.NewSearchService(eng, testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	created := eventData("p1", "Galaxy S24")
	created.Description = "original description"
	require.NoError(t, consumer.Handle(ctx, productEvent(t, TopicProductCreated, created)))

	updated := eventData("p1", "Galaxy S24 FE")
	require.NoError(t, consumer.Handle(ctx, productEvent(t, TopicProductUpdated, updated)))

	result, err := eng.Search(ctx, &domain.SearchQuery{Query: "galaxy", Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Galaxy S24 FE", result.Products[0].Name)
	assert.Empty(t, result.Products[0].Description)
}

func TestHandle_ProductDeleted(t *testing.T) {
	ctx := context.Background()
	eng := memory.New()
	svc := service.NewSearchService(eng, testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	require.NoError(t, consumer.Handle(ctx, productEvent(t, TopicProductCreated, eventData("p1", "Galaxy S24"))))
	require.NoError(t, consumer.Handle(ctx, productEvent(t, TopicProductDeleted, ProductDeletedData{ID: "p1"})))

	result, err := eng.Search(ctx, &domain.SearchQuery{Query: "galaxy", Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	// Deleting again is fine: deletes are idempotent end to end.
	require.NoError(t, consumer.Handle(ctx, productEvent(t, TopicProductDeleted, ProductDeletedData{ID: "p1"})))
}

func TestHandle_UnknownEventType(t *testing.T) {
	svc := service.NewSearchService(memory.New(), testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	event := productEvent(t, "ecommerce.order.created", map[string]string{"id": "o1"})
	assert.NoError(t, consumer.Handle(context.Background(), event))
}

func TestHandle_MalformedPayload(t *testing.T) {
	svc := service.NewSearchService(memory.New(), testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	event := &pkgkafka.Event{
		EventID:   "e1",
		EventType: TopicProductCreated,
		Data:      json.RawMessage(`{"id": 42`),
	}
	err := consumer.Handle(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestHandle_EngineOutageDoesNotFailEvent(t *testing.T) {
	// With search degraded the event must still be acknowledged: the catalog
	// committed before publishing, so retrying would never help.
	svc := service.NewSearchService(noop.New(), testLogger(), "")
	consumer := NewConsumer(svc, testLogger())

	assert.NoError(t, consumer.Handle(context.Background(), productEvent(t, TopicProductCreated, eventData("p1", "Galaxy S24"))))
	assert.NoError(t, consumer.Handle(context.Background(), productEvent(t, TopicProductDeleted, ProductDeletedData{ID: "p1"})))
}
