package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/internal/shop"
	"github.com/fekuna/omnipos-storefront/internal/shop/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (p *memPersister) Load(_ context.Context, id string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.data[id]
	return b, ok, nil
}

func (p *memPersister) Save(_ context.Context, id string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[id] = data
	return nil
}

func (p *memPersister) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, id)
	return nil
}

type fakeBackend struct {
	shops     []model.Shop
	listCalls int
}

func (b *fakeBackend) MyShops(context.Context) ([]model.Shop, error) {
	b.listCalls++
	return append([]model.Shop(nil), b.shops...), nil
}

func (b *fakeBackend) CreateShop(_ context.Context, in *apiclient.ShopInput) (*model.Shop, error) {
	s := model.Shop{BaseModel: model.BaseModel{ID: "s-new"}, Name: *in.Name, CourierID: in.CourierID}
	b.shops = append(b.shops, s)
	return &s, nil
}

func (b *fakeBackend) UpdateShop(_ context.Context, id string, in *apiclient.ShopInput) (*model.Shop, error) {
	for i := range b.shops {
		if b.shops[i].ID != id {
			continue
		}
		if in.Name != nil {
			b.shops[i].Name = *in.Name
		}
		if in.CourierID != nil {
			b.shops[i].CourierID = in.CourierID
		}
		s := b.shops[i]
		return &s, nil
	}
	return nil, &apiclient.APIError{StatusCode: 404}
}

func newHarness(shops ...model.Shop) (shop.UseCase, *fakeBackend, *appstate.Store) {
	b := &fakeBackend{shops: shops}
	store := appstate.NewStore(&memPersister{data: map[string][]byte{}}, logger.NewNop())
	cache := querycache.New(querycache.NewMemoryStore(time.Minute), time.Minute, logger.NewNop())
	return NewShopUseCase(b, store, cache, logger.NewNop()), b, store
}

func signedIn() *appstate.State {
	return &appstate.State{SessionID: "b-1", User: &model.User{ID: "u-1"}, BackendCookie: "sid=abc"}
}

func TestCreateShop(t *testing.T) {
	ctx := context.Background()
	uc, b, store := newHarness()
	st := signedIn()

	_, err := uc.CreateShop(ctx, st, &dto.CreateShopInput{Name: "A"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	shops, err := uc.MyShops(ctx, st)
	require.NoError(t, err)
	assert.Empty(t, shops)

	s, err := uc.CreateShop(ctx, st, &dto.CreateShopInput{Name: "Himal Threads"})
	require.NoError(t, err)
	require.NotNil(t, st.CurrentShop)
	assert.Equal(t, s.ID, st.CurrentShop.ID)

	persisted, err := store.Hydrate(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, persisted.CurrentShop.ID)

	shops, err = uc.MyShops(ctx, st)
	require.NoError(t, err)
	assert.Len(t, shops, 1)
	assert.Equal(t, 2, b.listCalls)
}

func TestUpdateShop_RefreshesCurrentShop(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newHarness(model.Shop{BaseModel: model.BaseModel{ID: "s-1"}, Name: "Himal Threads"})
	st := signedIn()

	_, err := uc.SelectShop(ctx, st, "s-1")
	require.NoError(t, err)
	assert.False(t, st.CurrentShop.HasCourier())

	courier := "pathao-77"
	_, err = uc.UpdateShop(ctx, st, "s-1", &dto.UpdateShopInput{CourierID: &courier})
	require.NoError(t, err)
	assert.True(t, st.CurrentShop.HasCourier())
}

func TestSelectShop_NotMine(t *testing.T) {
	uc, _, _ := newHarness(model.Shop{BaseModel: model.BaseModel{ID: "s-1"}})
	_, err := uc.SelectShop(context.Background(), signedIn(), "s-9")
	assert.ErrorIs(t, err, shop.ErrShopNotFound)
}
