package shop

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/shop/dto"
)

type UseCase interface {
	MyShops(ctx context.Context, st *appstate.State) ([]model.Shop, error)
	CreateShop(ctx context.Context, st *appstate.State, input *dto.CreateShopInput) (*model.Shop, error)
	UpdateShop(ctx context.Context, st *appstate.State, id string, input *dto.UpdateShopInput) (*model.Shop, error)
	SelectShop(ctx context.Context, st *appstate.State, id string) (*model.Shop, error)
}
