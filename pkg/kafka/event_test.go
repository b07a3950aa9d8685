package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("ecommerce.product.created", "p1", "product", "product-service", productPayload{ID: "p1", Name: "Galaxy S24"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "ecommerce.product.created", event.EventType)
	assert.Equal(t, "p1", event.AggregateID)
	assert.Equal(t, "product", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "product-service", event.Source)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Minute)
}

func TestEvent_RoundTrip(t *testing.T) {
	event, err := NewEvent("ecommerce.product.created", "p1", "product", "product-service", productPayload{ID: "p1", Name: "Galaxy S24"})
	require.NoError(t, err)
	event.WithCorrelationID("abc-123")

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "abc-123", decoded.CorrelationID)

	var payload productPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "Galaxy S24", payload.Name)
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{"event_id":`))
	assert.Error(t, err)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "ecommerce.product.created", Topic("product", "created"))
}
