package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
)

type UseCase interface {
	ListOrders(ctx context.Context, shop *model.Shop, filters *dto.OrderFilters) ([]dto.OrderView, error)
	GetOrder(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error)
	UpdateOrder(ctx context.Context, shop *model.Shop, id string, input *dto.UpdateOrderInput) (*dto.OrderView, error)
	DeleteOrder(ctx context.Context, shop *model.Shop, id string) error
	RequestDelivery(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error)
	CancelDelivery(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error)
	HandleEvent(ctx context.Context, event *dto.OrderEvent) error
}
