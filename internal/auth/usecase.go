package auth

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/auth/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	StartSession(ctx context.Context) (*dto.SessionToken, error)
	RefreshSession(ctx context.Context, st *appstate.State) (*dto.SessionToken, error)
	SignIn(ctx context.Context, st *appstate.State, input *dto.SignInInput) (*model.User, error)
	SignUp(ctx context.Context, st *appstate.State, input *dto.SignUpInput) (*model.User, error)
	Me(ctx context.Context, st *appstate.State) (*model.User, error)
	Logout(ctx context.Context, st *appstate.State) error
}

