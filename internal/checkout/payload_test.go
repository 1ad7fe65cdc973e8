package checkout

import (
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeItems(t *testing.T) {
	items := []model.OrderItem{
		{Size: "M", Color: "Red", Quantity: 2},
		{Size: "L", Color: "Red", Quantity: 1},
	}
	assert.Equal(t, "M / Red x 2, L / Red x 1", DescribeItems(items))
	assert.Equal(t, "", DescribeItems(nil))
}

func TestAmountToCollect(t *testing.T) {
	items := []model.OrderItem{
		{Size: "M", Color: "Red", Quantity: 2},
		{Size: "L", Color: "Red", Quantity: 1},
	}
	got := AmountToCollect(decimal.NewFromInt(500), items)
	assert.True(t, got.Equal(decimal.NewFromInt(1500)), got.String())
}

func TestBuildOrderRequest(t *testing.T) {
	s := &model.CheckoutSession{
		ProductID: "p-1",
		ShopID:    "s-1",
		Product:   model.ProductSnapshot{Name: "Kurta", Price: decimal.RequireFromString("499.50")},
		Form: model.CheckoutForm{
			Items:         []model.OrderItem{{Size: "M", Color: "Red", Quantity: 2}},
			FullName:      "  Sita Sharma ",
			Phone:         "9812345678",
			District:      "Kathmandu",
			Address:       " Baneshwor ",
			CityID:        1,
			ZoneID:        10,
			PaymentMethod: model.PaymentCOD,
		},
	}

	req := BuildOrderRequest(s)
	assert.Equal(t, "Sita Sharma", req.RecipientName)
	assert.Equal(t, "Baneshwor", req.Address)
	assert.Nil(t, req.AreaID)
	assert.Equal(t, 2, req.TotalQuantity)
	assert.Equal(t, "M / Red x 2", req.ItemDescription)
	assert.True(t, req.AmountToCollect.Equal(decimal.NewFromInt(999)))

	s.Form.AreaID = 100
	req = BuildOrderRequest(s)
	require.NotNil(t, req.AreaID)
	assert.Equal(t, int64(100), *req.AreaID)
}
