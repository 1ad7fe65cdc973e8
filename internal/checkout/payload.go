package checkout

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

// DescribeItems renders the courier-facing summary, e.g. "M / Red x 2, L / Red x 1".
func DescribeItems(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s / %s x %d", it.Size, it.Color, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

// AmountToCollect is the unit price times the total quantity across all lines.
func AmountToCollect(price decimal.Decimal, items []model.OrderItem) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(model.TotalQuantity(items))))
}

func BuildOrderRequest(s *model.CheckoutSession) *apiclient.CreateOrderRequest {
	f := s.Form
	req := &apiclient.CreateOrderRequest{
		ShopID:          s.ShopID,
		ProductID:       s.ProductID,
		RecipientName:   strings.TrimSpace(f.FullName),
		RecipientPhone:  f.Phone,
		Address:         strings.TrimSpace(f.Address),
		District:        f.District,
		CityID:          f.CityID,
		ZoneID:          f.ZoneID,
		Items:           f.Items,
		ItemDescription: DescribeItems(f.Items),
		TotalQuantity:   model.TotalQuantity(f.Items),
		AmountToCollect: AmountToCollect(s.Product.Price, f.Items),
		PaymentMethod:   f.PaymentMethod,
	}
	if f.AreaID != 0 {
		area := f.AreaID
		req.AreaID = &area
	}
	return req
}
