package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Backend interface {
	ShopOrders(ctx context.Context, shopID string) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, in *apiclient.UpdateOrderRequest) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	RequestDelivery(ctx context.Context, orderID string) (*model.Order, error)
	CancelDelivery(ctx context.Context, orderID, consignmentID string) (*model.Order, error)
}

type LocationChecker interface {
	ZoneInCity(ctx context.Context, cityID, zoneID int64) (bool, error)
	AreaInZone(ctx context.Context, zoneID, areaID int64) (bool, error)
}

type orderUseCase struct {
	backend  Backend
	zones    LocationChecker
	cache    *querycache.Cache
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewOrderUseCase(backend Backend, zones LocationChecker, cache *querycache.Cache, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		backend:  backend,
		zones:    zones,
		cache:    cache,
		validate: wizard.NewValidator(),
		logger:   log,
	}
}

func (uc *orderUseCase) ListOrders(ctx context.Context, shop *model.Shop, filters *dto.OrderFilters) ([]dto.OrderView, error) {
	orders, err := querycache.Fetch(ctx, uc.cache, querycache.ShopOrdersKey(shop.ID), func(ctx context.Context) ([]model.Order, error) {
		return uc.backend.ShopOrders(ctx, shop.ID)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	views := make([]dto.OrderView, 0, len(orders))
	for i := range orders {
		if filters != nil && filters.Status != nil && orders[i].Status != *filters.Status {
			continue
		}
		views = append(views, order.View(shop, &orders[i]))
	}
	return views, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error) {
	o, err := uc.find(ctx, shop, id)
	if err != nil {
		return nil, err
	}
	v := order.View(shop, o)
	return &v, nil
}

// find loads an order and hides orders of other shops.
func (uc *orderUseCase) find(ctx context.Context, shop *model.Shop, id string) (*model.Order, error) {
	o, err := querycache.Fetch(ctx, uc.cache, querycache.OrderKey(id), func(ctx context.Context) (*model.Order, error) {
		return uc.backend.GetOrder(ctx, id)
	})
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	if o == nil || o.ShopID != shop.ID {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (uc *orderUseCase) invalidate(ctx context.Context, m querycache.Mutation, shopID, orderID string) {
	uc.cache.Invalidate(ctx, m, querycache.Scope{ShopID: shopID, OrderID: orderID})
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, shop *model.Shop, id string, input *dto.UpdateOrderInput) (*dto.OrderView, error) {
	if err := uc.validate.StructCtx(ctx, input); err != nil {
		return nil, err
	}
	if input.AmountToCollect != nil && input.AmountToCollect.IsNegative() {
		return nil, order.ErrNegativeAmount
	}

	o, err := uc.find(ctx, shop, id)
	if err != nil {
		return nil, err
	}
	clearArea, err := uc.checkLocation(ctx, o, input)
	if err != nil {
		return nil, err
	}

	req := &apiclient.UpdateOrderRequest{
		RecipientName:   input.RecipientName,
		RecipientPhone:  input.RecipientPhone,
		Address:         input.Address,
		District:        input.District,
		CityID:          input.CityID,
		ZoneID:          input.ZoneID,
		AreaID:          input.AreaID,
		AmountToCollect: input.AmountToCollect,
		ClearArea:       clearArea,
	}
	if input.Status != nil {
		status, err := model.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		req.Status = &status
	}

	updated, err := uc.backend.UpdateOrder(ctx, id, req)
	if err != nil {
		uc.logger.Error("failed to update order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, querycache.MutationOrderUpdate, shop.ID, id)

	v := order.View(shop, updated)
	return &v, nil
}

// checkLocation applies the cascade rules to an address edit: a new city needs a
// new zone, the zone must belong to the resulting city and the area to the
// resulting zone. It reports whether the stored area has to be dropped because
// the zone moved under it.
func (uc *orderUseCase) checkLocation(ctx context.Context, o *model.Order, input *dto.UpdateOrderInput) (bool, error) {
	cityID := o.CityID
	if input.CityID != nil {
		cityID = *input.CityID
		if cityID != o.CityID && input.ZoneID == nil {
			return false, location.ErrZoneRequired
		}
	}

	zoneID := o.ZoneID
	if input.ZoneID != nil {
		zoneID = *input.ZoneID
		ok, err := uc.zones.ZoneInCity(ctx, cityID, zoneID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, location.ErrUnknownZone
		}
	}

	if input.AreaID != nil {
		ok, err := uc.zones.AreaInZone(ctx, zoneID, *input.AreaID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, location.ErrUnknownArea
		}
		return false, nil
	}
	return zoneID != o.ZoneID && o.AreaID != nil, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, shop *model.Shop, id string) error {
	if _, err := uc.find(ctx, shop, id); err != nil {
		return err
	}
	if err := uc.backend.DeleteOrder(ctx, id); err != nil {
		uc.logger.Error("failed to delete order", zap.String("order_id", id), zap.Error(err))
		return err
	}
	uc.invalidate(ctx, querycache.MutationOrderDelete, shop.ID, id)
	return nil
}

func (uc *orderUseCase) RequestDelivery(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error) {
	o, err := uc.find(ctx, shop, id)
	if err != nil {
		return nil, err
	}
	if !order.Actions(shop, o).CanCreate {
		if !shop.HasCourier() {
			return nil, order.ErrNoCourier
		}
		return nil, order.ErrConsignmentExists
	}

	updated, err := uc.backend.RequestDelivery(ctx, id)
	if err != nil {
		uc.logger.Error("failed to request delivery", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, querycache.MutationDeliveryRequest, shop.ID, id)
	uc.logger.Info("delivery requested", zap.String("order_id", id))

	v := order.View(shop, updated)
	return &v, nil
}

func (uc *orderUseCase) CancelDelivery(ctx context.Context, shop *model.Shop, id string) (*dto.OrderView, error) {
	o, err := uc.find(ctx, shop, id)
	if err != nil {
		return nil, err
	}
	if !order.Actions(shop, o).CanCancel {
		return nil, order.ErrNoConsignment
	}

	updated, err := uc.backend.CancelDelivery(ctx, id, *o.DeliveryConsignmentID)
	if err != nil {
		uc.logger.Error("failed to cancel delivery", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, querycache.MutationDeliveryCancel, shop.ID, id)
	uc.logger.Info("delivery cancelled", zap.String("order_id", id))

	v := order.View(shop, updated)
	return &v, nil
}

// HandleEvent reacts to order changes made outside this service.
func (uc *orderUseCase) HandleEvent(ctx context.Context, event *dto.OrderEvent) error {
	switch event.EventType {
	case dto.EventOrderStatusChanged, dto.EventDeliveryStatusChanged:
	case dto.EventOrderPlaced:
		// our own announcement, already reflected locally
		return nil
	default:
		return fmt.Errorf("%w: %s", order.ErrUnknownEventType, event.EventType)
	}

	var change dto.OrderChange
	if err := json.Unmarshal(event.Payload, &change); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.EventType, err)
	}
	if change.OrderID == "" {
		return fmt.Errorf("%s event %s has no order id", event.EventType, event.EventID)
	}

	uc.invalidate(ctx, querycache.MutationOrderExternal, change.ShopID, change.OrderID)
	uc.logger.Debug("order changed externally",
		zap.String("event_type", event.EventType),
		zap.String("order_id", change.OrderID),
		zap.String("status", change.Status),
	)
	return nil
}
