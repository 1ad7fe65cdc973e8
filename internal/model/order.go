package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentQR     PaymentMethod = "QR"
	PaymentEsewa  PaymentMethod = "ESEWA"
	PaymentKhalti PaymentMethod = "KHALTI"
)

type OrderItem struct {
	Size     string `json:"size" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type Order struct {
	BaseModel
	ShopID                string          `json:"shop_id"`
	ProductID             string          `json:"product_id"`
	RecipientName         string          `json:"recipient_name"`
	RecipientPhone        string          `json:"recipient_phone"`
	Address               string          `json:"address"`
	District              string          `json:"district"`
	CityID                int64           `json:"city_id"`
	ZoneID                int64           `json:"zone_id"`
	AreaID                *int64          `json:"area_id,omitempty"`
	Items                 []OrderItem     `json:"items"`
	ItemDescription       string          `json:"item_description"`
	AmountToCollect       decimal.Decimal `json:"amount_to_collect"`
	PaymentMethod         PaymentMethod   `json:"payment_method"`
	Status                OrderStatus     `json:"status"`
	DeliveryConsignmentID *string         `json:"delivery_consignment_id"`
}

func (o *Order) TotalQuantity() int {
	return TotalQuantity(o.Items)
}

func (o *Order) HasConsignment() bool {
	return o.DeliveryConsignmentID != nil && *o.DeliveryConsignmentID != ""
}

func TotalQuantity(items []OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
