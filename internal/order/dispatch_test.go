package order

import (
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestActions(t *testing.T) {
	courier, empty, consignment := "pathao-1", "", "CN-1"
	withCourier := &model.Shop{CourierID: &courier}
	blankCourier := &model.Shop{CourierID: &empty}
	noCourier := &model.Shop{}

	tests := []struct {
		name       string
		shop       *model.Shop
		order      *model.Order
		wantCreate bool
		wantCancel bool
	}{
		{"courier and no consignment", withCourier, &model.Order{}, true, false},
		{"courier and consignment", withCourier, &model.Order{DeliveryConsignmentID: &consignment}, false, true},
		{"no courier", noCourier, &model.Order{}, false, false},
		{"blank courier id", blankCourier, &model.Order{}, false, false},
		{"consignment without courier can still cancel", noCourier, &model.Order{DeliveryConsignmentID: &consignment}, false, true},
		{"empty consignment id", withCourier, &model.Order{DeliveryConsignmentID: &empty}, true, false},
		{"no shop", nil, &model.Order{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Actions(tt.shop, tt.order)
			assert.Equal(t, tt.wantCreate, got.CanCreate)
			assert.Equal(t, tt.wantCancel, got.CanCancel)
		})
	}
}
