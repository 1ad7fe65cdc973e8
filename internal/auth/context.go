package auth

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/appstate"
)

type ctxKey int

const stateKey ctxKey = iota

func WithState(ctx context.Context, st *appstate.State) context.Context {
	return context.WithValue(ctx, stateKey, st)
}

// StateFromContext returns the hydrated session state, or nil outside an
// authenticated request.
func StateFromContext(ctx context.Context) *appstate.State {
	if st, ok := ctx.Value(stateKey).(*appstate.State); ok {
		return st
	}
	return nil
}

func GetSessionID(ctx context.Context) string {
	if st := StateFromContext(ctx); st != nil {
		return st.SessionID
	}
	return ""
}

// GetShopID returns the shop the seller is currently working on.
func GetShopID(ctx context.Context) string {
	if st := StateFromContext(ctx); st != nil && st.CurrentShop != nil {
		return st.CurrentShop.ID
	}
	return ""
}
