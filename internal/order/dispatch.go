package order

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
)

// Actions says which courier actions an order offers. It is derived from the
// shop and order on every read and never stored.
func Actions(shop *model.Shop, o *model.Order) dto.DeliveryActions {
	return dto.DeliveryActions{
		CanCreate: shop != nil && shop.HasCourier() && !o.HasConsignment(),
		CanCancel: o.HasConsignment(),
	}
}

func View(shop *model.Shop, o *model.Order) dto.OrderView {
	return dto.OrderView{Order: o, Actions: Actions(shop, o)}
}
