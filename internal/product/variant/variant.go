// Package variant builds a product's variant list as the cartesian product of
// size and color tags.
package variant

import (
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/gosimple/slug"
)

const (
	DefaultSize  = "Free Size"
	DefaultColor = "Standard"
)

var (
	ErrReplaceNotConfirmed = errors.New("this replaces the existing variants; confirm to continue")
	ErrNegativeStock       = errors.New("stock cannot be negative")
)

// TagList is an ordered set of free-form tags.
type TagList []string

// Add splits input on commas and appends each trimmed value not already present.
func (t TagList) Add(input string) TagList {
	for _, raw := range strings.Split(input, ",") {
		v := strings.TrimSpace(raw)
		if v == "" || t.Contains(v) {
			continue
		}
		t = append(t, v)
	}
	return t
}

func (t TagList) Remove(value string) TagList {
	out := t[:0]
	for _, v := range t {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func (t TagList) Contains(value string) bool {
	for _, v := range t {
		if v == value {
			return true
		}
	}
	return false
}

// Generate emits one variant per (size, color), sizes outer and colors inner.
// Empty lists fall back to DefaultSize and DefaultColor.
func Generate(sizes, colors TagList, stock int) ([]model.ProductVariant, error) {
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if len(sizes) == 0 {
		sizes = TagList{DefaultSize}
	}
	if len(colors) == 0 {
		colors = TagList{DefaultColor}
	}

	out := make([]model.ProductVariant, 0, len(sizes)*len(colors))
	for _, size := range sizes {
		for _, color := range colors {
			out = append(out, model.ProductVariant{Size: size, Color: color, Stock: stock})
		}
	}
	return out, nil
}

// Replace swaps the variant list wholesale. A non-empty list is only replaced
// once the seller has confirmed.
func Replace(existing, generated []model.ProductVariant, confirmed bool) ([]model.ProductVariant, error) {
	if len(existing) > 0 && !confirmed {
		return existing, ErrReplaceNotConfirmed
	}
	return generated, nil
}

// AssignSKUs fills in missing SKUs as "<product>-<size>-<color>" slugs.
func AssignSKUs(productName string, variants []model.ProductVariant) {
	base := slug.Make(productName)
	for i := range variants {
		if variants[i].SKU != nil && *variants[i].SKU != "" {
			continue
		}
		sku := strings.ToUpper(slug.Make(strings.Join([]string{base, variants[i].Size, variants[i].Color}, " ")))
		variants[i].SKU = &sku
	}
}

// Tags recovers the size and color tag lists from an existing variant list.
func Tags(variants []model.ProductVariant) (sizes, colors TagList) {
	for _, v := range variants {
		sizes = sizes.Add(strings.ReplaceAll(v.Size, ",", " "))
		colors = colors.Add(strings.ReplaceAll(v.Color, ",", " "))
	}
	return sizes, colors
}
