package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/upload"
	"github.com/shopspring/decimal"
)

type DraftView struct {
	ID           string                 `json:"id"`
	ProductID    string                 `json:"product_id,omitempty"`
	ShopID       string                 `json:"shop_id"`
	Step         int                    `json:"step"`
	StepName     string                 `json:"step_name"`
	TotalSteps   int                    `json:"total_steps"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Price        decimal.Decimal        `json:"price"`
	DisplayPrice *decimal.Decimal       `json:"display_price,omitempty"`
	Sizes        []string               `json:"sizes"`
	Colors       []string               `json:"colors"`
	Variants     []model.ProductVariant `json:"variants"`
	Images       []upload.Image         `json:"images"`
	// Blocked explains why submit is currently refused, if it is.
	Blocked string `json:"blocked,omitempty"`
}

// ProductDocument is the search index shape of a product.
type ProductDocument struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	CoverURL    string          `json:"cover_url,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
