package querycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func newTestCache() *Cache {
	return New(NewMemoryStore(time.Minute), time.Minute, logger.NewNop())
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	calls := 0
	load := func(context.Context) ([]cachedOrder, error) {
		calls++
		return []cachedOrder{{ID: "o-1", Status: "pending"}}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := Fetch(ctx, c, ShopOrdersKey("s-1"), load)
		require.NoError(t, err)
		assert.Equal(t, "o-1", got[0].ID)
	}
	assert.Equal(t, 1, calls)

	c.Invalidate(ctx, MutationOrderDelete, Scope{ShopID: "s-1", OrderID: "o-1"})
	_, err := Fetch(ctx, c, ShopOrdersKey("s-1"), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	boom := errors.New("boom")

	_, err := Fetch(ctx, c, OrderKey("o-1"), func(context.Context) (*cachedOrder, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	got, err := Fetch(ctx, c, OrderKey("o-1"), func(context.Context) (*cachedOrder, error) {
		return &cachedOrder{ID: "o-1"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.ID)
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name  string
		m     Mutation
		scope Scope
		want  []string
	}{
		{"order create", MutationOrderCreate, Scope{ShopID: "s"}, []string{"shop:s:orders"}},
		{"order update", MutationOrderUpdate, Scope{ShopID: "s", OrderID: "o"}, []string{"shop:s:orders", "order:o"}},
		{"delivery without order id", MutationDeliveryRequest, Scope{ShopID: "s"}, []string{"shop:s:orders"}},
		{"product update", MutationProductUpdate, Scope{ShopID: "s", ProductID: "p"}, []string{"shop:s:products", "product:p"}},
		{"logout", MutationLogout, Scope{UserID: "u"}, []string{"user:u:shops"}},
		{"empty scope", MutationShopCreate, Scope{}, nil},
		{"unknown mutation", Mutation("nope"), Scope{ShopID: "s"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keys(DefaultRules, tt.m, tt.scope))
		})
	}
}

func TestInvalidate_LeavesOtherShops(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	c := New(store, time.Minute, logger.NewNop())

	require.NoError(t, store.Set(ctx, ShopProductsKey("a"), []byte(`[]`), time.Minute))
	require.NoError(t, store.Set(ctx, ShopProductsKey("b"), []byte(`[]`), time.Minute))

	c.Invalidate(ctx, MutationProductCreate, Scope{ShopID: "a"})

	_, ok, _ := store.Get(ctx, ShopProductsKey("a"))
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, ShopProductsKey("b"))
	assert.True(t, ok)
}
