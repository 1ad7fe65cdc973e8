package listener

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanConsumer hands out queued messages, then blocks until ctx is done.
type chanConsumer struct {
	msgs chan kafka.Message
}

func (c *chanConsumer) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-c.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

type recordingUseCase struct {
	order.UseCase
	mu     sync.Mutex
	events []string
	done   chan struct{}
	want   int
}

func (u *recordingUseCase) HandleEvent(_ context.Context, e *dto.OrderEvent) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = append(u.events, e.EventType)
	if len(u.events) == u.want {
		close(u.done)
	}
	if e.EventType == "Unknown" {
		return order.ErrUnknownEventType
	}
	return nil
}

func message(t *testing.T, eventType string) kafka.Message {
	t.Helper()
	value, err := json.Marshal(dto.OrderEvent{EventID: "e", EventType: eventType, Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestOrderListener_Start(t *testing.T) {
	consumer := &chanConsumer{msgs: make(chan kafka.Message, 4)}
	consumer.msgs <- message(t, dto.EventOrderStatusChanged)
	consumer.msgs <- kafka.Message{Value: []byte("not json")}
	consumer.msgs <- message(t, "Unknown")
	consumer.msgs <- message(t, dto.EventDeliveryStatusChanged)

	uc := &recordingUseCase{done: make(chan struct{}), want: 3}
	l := NewOrderListener(consumer, uc, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not handled")
	}
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Equal(t, []string{dto.EventOrderStatusChanged, "Unknown", dto.EventDeliveryStatusChanged}, uc.events)
}
