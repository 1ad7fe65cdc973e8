package usecase

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/internal/shop"
	"github.com/fekuna/omnipos-storefront/internal/shop/dto"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Backend interface {
	MyShops(ctx context.Context) ([]model.Shop, error)
	CreateShop(ctx context.Context, in *apiclient.ShopInput) (*model.Shop, error)
	UpdateShop(ctx context.Context, id string, in *apiclient.ShopInput) (*model.Shop, error)
}

type shopUseCase struct {
	backend  Backend
	store    *appstate.Store
	cache    *querycache.Cache
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewShopUseCase(backend Backend, store *appstate.Store, cache *querycache.Cache, log logger.ZapLogger) shop.UseCase {
	return &shopUseCase{
		backend:  backend,
		store:    store,
		cache:    cache,
		validate: wizard.NewValidator(),
		logger:   log,
	}
}

func (uc *shopUseCase) MyShops(ctx context.Context, st *appstate.State) ([]model.Shop, error) {
	return querycache.Fetch(ctx, uc.cache, querycache.UserShopsKey(st.User.ID), uc.backend.MyShops)
}

// CreateShop also selects the new shop when the seller had none selected.
func (uc *shopUseCase) CreateShop(ctx context.Context, st *appstate.State, input *dto.CreateShopInput) (*model.Shop, error) {
	if err := uc.validate.StructCtx(ctx, input); err != nil {
		return nil, err
	}

	req := &apiclient.ShopInput{
		Name:         &input.Name,
		CourierID:    input.CourierID,
		AutoDispatch: &input.AutoDispatch,
	}
	if input.LogoURL != "" {
		req.LogoURL = &input.LogoURL
	}
	if input.Category != "" {
		req.Category = &input.Category
	}

	s, err := uc.backend.CreateShop(ctx, req)
	if err != nil {
		uc.logger.Error("failed to create shop", zap.String("user_id", st.User.ID), zap.Error(err))
		return nil, err
	}
	uc.cache.Invalidate(ctx, querycache.MutationShopCreate, querycache.Scope{UserID: st.User.ID, ShopID: s.ID})

	if st.CurrentShop == nil {
		if err := uc.store.Dispatch(ctx, st, appstate.ShopSelected{Shop: *s}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (uc *shopUseCase) UpdateShop(ctx context.Context, st *appstate.State, id string, input *dto.UpdateShopInput) (*model.Shop, error) {
	if err := uc.validate.StructCtx(ctx, input); err != nil {
		return nil, err
	}
	if _, err := uc.mine(ctx, st, id); err != nil {
		return nil, err
	}

	s, err := uc.backend.UpdateShop(ctx, id, &apiclient.ShopInput{
		Name:         input.Name,
		LogoURL:      input.LogoURL,
		Category:     input.Category,
		CourierID:    input.CourierID,
		AutoDispatch: input.AutoDispatch,
	})
	if err != nil {
		uc.logger.Error("failed to update shop", zap.String("shop_id", id), zap.Error(err))
		return nil, err
	}
	uc.cache.Invalidate(ctx, querycache.MutationShopUpdate, querycache.Scope{UserID: st.User.ID, ShopID: id})

	// delivery gating reads the courier id from the current shop
	if err := uc.store.Dispatch(ctx, st, appstate.ShopUpdated{Shop: *s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *shopUseCase) SelectShop(ctx context.Context, st *appstate.State, id string) (*model.Shop, error) {
	s, err := uc.mine(ctx, st, id)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Dispatch(ctx, st, appstate.ShopSelected{Shop: *s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *shopUseCase) mine(ctx context.Context, st *appstate.State, id string) (*model.Shop, error) {
	shops, err := uc.MyShops(ctx, st)
	if err != nil {
		return nil, err
	}
	for i := range shops {
		if shops[i].ID == id {
			return &shops[i], nil
		}
	}
	return nil, shop.ErrShopNotFound
}
