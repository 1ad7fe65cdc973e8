package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	ShopID       string                 `json:"shop_id,omitempty"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Price        decimal.Decimal        `json:"price"`
	DisplayPrice *decimal.Decimal       `json:"display_price,omitempty"`
	Images       []model.ProductImage   `json:"images"`
	Variants     []model.ProductVariant `json:"variants"`
}

func (c *Client) ShopProducts(ctx context.Context, shopID string) ([]model.Product, error) {
	var out []model.Product
	if _, err := c.do(ctx, http.MethodGet, "/shops/my-shop/:shopId", "/shops/my-shop/"+url.PathEscape(shopID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if _, err := c.do(ctx, http.MethodGet, "/product/:id", "/product/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in *ProductInput) (*model.Product, error) {
	var out model.Product
	if _, err := c.do(ctx, http.MethodPost, "/product", "/product", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in *ProductInput) (*model.Product, error) {
	var out model.Product
	if _, err := c.do(ctx, http.MethodPatch, "/product/:id", "/product/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/product/:id", "/product/"+url.PathEscape(id), nil, nil)
	return err
}

// UploadImage posts one file as multipart form data and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/product/upload-image", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if _, err := c.send(req, "/product/upload-image", &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload %s: backend returned no url", filename)
	}
	return out.URL, nil
}
