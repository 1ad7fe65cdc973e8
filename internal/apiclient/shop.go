package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// ShopInput is used for both create and partial update; nil fields are left untouched.
type ShopInput struct {
	Name         *string `json:"name,omitempty"`
	LogoURL      *string `json:"logo,omitempty"`
	Category     *string `json:"category,omitempty"`
	CourierID    *string `json:"courier_id,omitempty"`
	AutoDispatch *bool   `json:"auto_dispatch,omitempty"`
}

func (c *Client) MyShops(ctx context.Context) ([]model.Shop, error) {
	var out []model.Shop
	if _, err := c.do(ctx, http.MethodGet, "/shops/mine", "/shops/mine", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateShop(ctx context.Context, in *ShopInput) (*model.Shop, error) {
	var out model.Shop
	if _, err := c.do(ctx, http.MethodPost, "/shops", "/shops", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShop(ctx context.Context, id string, in *ShopInput) (*model.Shop, error) {
	var out model.Shop
	if _, err := c.do(ctx, http.MethodPatch, "/shops/:id", "/shops/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
