package publisher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProducer struct {
	key   string
	value []byte
}

func (p *captureProducer) Publish(_ context.Context, key string, value []byte) error {
	p.key, p.value = key, value
	return nil
}

func TestOrderPublisher_OrderPlaced(t *testing.T) {
	producer := &captureProducer{}
	o := &model.Order{BaseModel: model.BaseModel{ID: "o-1"}, ShopID: "s-1", Status: model.OrderStatusPending}

	require.NoError(t, NewOrderPublisher(producer).OrderPlaced(context.Background(), o))
	assert.Equal(t, "s-1", producer.key)

	var event dto.OrderEvent
	require.NoError(t, json.Unmarshal(producer.value, &event))
	assert.Equal(t, dto.EventOrderPlaced, event.EventType)
	assert.NotEmpty(t, event.EventID)

	var payload model.Order
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "o-1", payload.ID)
}
