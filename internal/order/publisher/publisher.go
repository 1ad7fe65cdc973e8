package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/google/uuid"
)

type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// OrderPublisher writes OrderPlaced events keyed by shop so one shop's events stay ordered.
type OrderPublisher struct {
	producer Producer
}

func NewOrderPublisher(producer Producer) *OrderPublisher {
	return &OrderPublisher{producer: producer}
}

func (p *OrderPublisher) OrderPlaced(ctx context.Context, o *model.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}
	event := dto.OrderEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventOrderPlaced,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, o.ShopID, value)
}
