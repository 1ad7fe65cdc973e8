package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	ShopID       string           `json:"shop_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	DisplayPrice *decimal.Decimal `json:"display_price,omitempty"` // higher "was" price
	Images       []ProductImage   `json:"images"`
	Variants     []ProductVariant `json:"variants"`
}

type ProductVariant struct {
	Size  string  `json:"size" validate:"required"`
	Color string  `json:"color" validate:"required"`
	Stock int     `json:"stock" validate:"gte=0"`
	SKU   *string `json:"sku,omitempty"`
}

type ProductImage struct {
	URL      string  `json:"url"`
	Position int     `json:"position"`
	Color    *string `json:"color,omitempty"`
}

// Cover returns the image at position 0.
func (p *Product) Cover() *ProductImage {
	for i := range p.Images {
		if p.Images[i].Position == 0 {
			return &p.Images[i]
		}
	}
	return nil
}

// SortedImages returns the images in display order.
func (p *Product) SortedImages() []ProductImage {
	out := make([]ProductImage, len(p.Images))
	copy(out, p.Images)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Variant finds the variant for a (size, color) pair. The first match wins since
// duplicates are not prevented upstream.
func (p *Product) Variant(size, color string) *ProductVariant {
	return FindVariant(p.Variants, size, color)
}

func FindVariant(variants []ProductVariant, size, color string) *ProductVariant {
	for i := range variants {
		if variants[i].Size == size && variants[i].Color == color {
			return &variants[i]
		}
	}
	return nil
}
