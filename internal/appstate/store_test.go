package appstate

import (
	"context"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemPersister() *memPersister {
	return &memPersister{data: map[string][]byte{}}
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

func courierShop(id string) model.Shop {
	courier := "c-" + id
	return model.Shop{BaseModel: model.BaseModel{ID: id}, Name: "Shop " + id, CourierID: &courier}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	store := NewStore(p, logger.NewNop())

	st, err := store.Hydrate(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, st.SignedIn())

	require.NoError(t, store.Dispatch(ctx, st, SignedIn{User: model.User{ID: "u-1"}, Cookie: "sid=abc"}))
	require.NoError(t, store.Dispatch(ctx, st, ShopSelected{Shop: courierShop("s-1")}))

	again, err := store.Hydrate(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, again.SignedIn())
	require.NotNil(t, again.CurrentShop)
	assert.Equal(t, "s-1", again.CurrentShop.ID)

	require.NoError(t, store.Dispatch(ctx, again, Resumed{}))
	assert.True(t, again.Restoring)

	require.NoError(t, store.Dispatch(ctx, again, LoggedOut{}))
	assert.Equal(t, State{SessionID: "sess-1"}, *again)
	_, ok, _ := p.Load(ctx, "sess-1")
	assert.False(t, ok)
}

func TestStore_HydrateUnreadable(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	require.NoError(t, p.Save(ctx, "sess-1", []byte("{not json")))

	st, err := NewStore(p, logger.NewNop()).Hydrate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", st.SessionID)
	assert.Nil(t, st.User)
}

func TestActions(t *testing.T) {
	t.Run("signing in clears the previous shop", func(t *testing.T) {
		sh := courierShop("old")
		st := &State{CurrentShop: &sh, Restoring: true}
		SignedIn{User: model.User{ID: "u"}, Cookie: "c"}.Apply(st)
		assert.Nil(t, st.CurrentShop)
		assert.False(t, st.Restoring)
	})

	t.Run("resume without credential is not restoring", func(t *testing.T) {
		st := &State{}
		Resumed{}.Apply(st)
		assert.False(t, st.Restoring)
	})

	t.Run("restore failure drops credential", func(t *testing.T) {
		sh := courierShop("s")
		st := &State{User: &model.User{ID: "u"}, CurrentShop: &sh, BackendCookie: "c", Restoring: true}
		RestoreFailed{}.Apply(st)
		assert.False(t, st.SignedIn())
		assert.Nil(t, st.CurrentShop)
		assert.False(t, st.Restoring)
	})

	t.Run("shop update only touches the current shop", func(t *testing.T) {
		sh := courierShop("s-1")
		st := &State{CurrentShop: &sh}

		other := courierShop("s-2")
		other.Name = "Renamed"
		ShopUpdated{Shop: other}.Apply(st)
		assert.Equal(t, "Shop s-1", st.CurrentShop.Name)

		same := courierShop("s-1")
		same.Name = "Renamed"
		ShopUpdated{Shop: same}.Apply(st)
		assert.Equal(t, "Renamed", st.CurrentShop.Name)
	})
}
