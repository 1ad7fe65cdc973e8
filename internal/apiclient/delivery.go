package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

func (c *Client) Cities(ctx context.Context) ([]model.City, error) {
	var out []model.City
	if _, err := c.do(ctx, http.MethodGet, "/delivery/pathao/city-list", "/delivery/pathao/city-list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Zones(ctx context.Context, cityID int64) ([]model.Zone, error) {
	var out []model.Zone
	path := "/delivery/pathao/zone-list/" + strconv.FormatInt(cityID, 10)
	if _, err := c.do(ctx, http.MethodGet, "/delivery/pathao/zone-list/:cityId", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Areas(ctx context.Context, zoneID int64) ([]model.Area, error) {
	var out []model.Area
	path := "/delivery/pathao/area-list/" + strconv.FormatInt(zoneID, 10)
	if _, err := c.do(ctx, http.MethodGet, "/delivery/pathao/area-list/:zoneId", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
