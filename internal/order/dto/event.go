package dto

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced           = "OrderPlaced"
	EventOrderStatusChanged    = "OrderStatusChanged"
	EventDeliveryStatusChanged = "DeliveryStatusChanged"
)

// OrderEvent is the envelope for every order message on the bus.
type OrderEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// OrderChange is the payload of status and delivery events coming from the backend.
type OrderChange struct {
	OrderID        string  `json:"order_id"`
	ShopID         string  `json:"shop_id"`
	Status         string  `json:"status,omitempty"`
	ConsignmentID  *string `json:"consignment_id,omitempty"`
	DeliveryStatus string  `json:"delivery_status,omitempty"`
}
