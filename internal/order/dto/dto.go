package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type OrderFilters struct {
	Status *model.OrderStatus
}

type DeliveryActions struct {
	CanCreate bool `json:"can_create"`
	CanCancel bool `json:"can_cancel"`
}

// OrderView is an order with its delivery actions computed for the viewing shop.
type OrderView struct {
	*model.Order
	Actions DeliveryActions `json:"delivery_actions"`
}
