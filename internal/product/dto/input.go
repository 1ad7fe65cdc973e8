package dto

import (
	"github.com/shopspring/decimal"
)

type StartDraftInput struct {
	// ProductID switches the wizard to editing an existing product.
	ProductID string `json:"product_id"`
}

type DetailsInput struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	DisplayPrice      *decimal.Decimal `json:"display_price"`
	ClearDisplayPrice bool             `json:"clear_display_price"`
}

const (
	TagSize  = "size"
	TagColor = "color"
)

type TagInput struct {
	Kind  string `json:"kind" binding:"required,oneof=size color"`
	Value string `json:"value" binding:"required"`
}

type GenerateInput struct {
	Stock int `json:"stock" binding:"gte=0"`
	// Confirm must be set to replace a non-empty variant list.
	Confirm bool `json:"confirm"`
}

type VariantInput struct {
	Stock *int    `json:"stock" binding:"omitempty,gte=0"`
	SKU   *string `json:"sku"`
}

type ImageInput struct {
	Filename string
	Data     []byte
	Color    *string
}
