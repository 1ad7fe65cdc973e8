package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	ShopID          string              `json:"shop_id"`
	ProductID       string              `json:"product_id"`
	RecipientName   string              `json:"recipient_name"`
	RecipientPhone  string              `json:"recipient_phone"`
	Address         string              `json:"address"`
	District        string              `json:"district"`
	CityID          int64               `json:"city_id"`
	ZoneID          int64               `json:"zone_id"`
	AreaID          *int64              `json:"area_id,omitempty"`
	Items           []model.OrderItem   `json:"items"`
	ItemDescription string              `json:"item_description"`
	TotalQuantity   int                 `json:"item_quantity"`
	AmountToCollect decimal.Decimal     `json:"amount_to_collect"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
}

// UpdateOrderRequest is a partial update; nil fields are omitted from the PATCH body.
type UpdateOrderRequest struct {
	Status          *model.OrderStatus `json:"status,omitempty"`
	RecipientName   *string            `json:"recipient_name,omitempty"`
	RecipientPhone  *string            `json:"recipient_phone,omitempty"`
	Address         *string            `json:"address,omitempty"`
	District        *string            `json:"district,omitempty"`
	CityID          *int64             `json:"city_id,omitempty"`
	ZoneID          *int64             `json:"zone_id,omitempty"`
	AreaID          *int64             `json:"area_id,omitempty"`
	AmountToCollect *decimal.Decimal   `json:"amount_to_collect,omitempty"`
	// ClearArea sends an explicit null area_id when AreaID is nil, dropping an
	// area that was picked under the previous zone.
	ClearArea bool `json:"-"`
}

func (r UpdateOrderRequest) MarshalJSON() ([]byte, error) {
	type plain UpdateOrderRequest
	if !r.ClearArea || r.AreaID != nil {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		AreaID *int64 `json:"area_id"`
	}{plain: plain(r)})
}

type deliveryRequest struct {
	OrderID       string `json:"order_id"`
	ConsignmentID string `json:"consignment_id,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, in *CreateOrderRequest) (*model.Order, error) {
	var out model.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", "/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, in *UpdateOrderRequest) (*model.Order, error) {
	var out model.Order
	if _, err := c.do(ctx, http.MethodPatch, "/orders/:id", "/orders/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ShopOrders(ctx context.Context, shopID string) ([]model.Order, error) {
	var out []model.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/shop/:shopId", "/orders/shop/"+url.PathEscape(shopID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var out model.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/:id", "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/orders/:id", "/orders/"+url.PathEscape(id), nil, nil)
	return err
}

// RequestDelivery asks the backend to create a courier consignment for the order.
func (c *Client) RequestDelivery(ctx context.Context, orderID string) (*model.Order, error) {
	var out model.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders/request-delivery", "/orders/request-delivery", &deliveryRequest{OrderID: orderID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelDelivery(ctx context.Context, orderID, consignmentID string) (*model.Order, error) {
	var out model.Order
	body := &deliveryRequest{OrderID: orderID, ConsignmentID: consignmentID}
	if _, err := c.do(ctx, http.MethodPut, "/orders/delivery/cancel", "/orders/delivery/cancel", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
