package usecase

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/auth/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the slice of the API client the auth flow talks to.
type Backend interface {
	SignIn(ctx context.Context, req *apiclient.SignInRequest) (*model.User, string, error)
	SignUp(ctx context.Context, req *apiclient.SignUpRequest) (*model.User, string, error)
	Me(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
}

type authUseCase struct {
	backend Backend
	issuer  *auth.TokenIssuer
	store   *appstate.Store
	cache   *querycache.Cache
	logger  logger.ZapLogger
}

func NewAuthUseCase(backend Backend, issuer *auth.TokenIssuer, store *appstate.Store, cache *querycache.Cache, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		backend: backend,
		issuer:  issuer,
		store:   store,
		cache:   cache,
		logger:  log,
	}
}

func (uc *authUseCase) StartSession(ctx context.Context) (*dto.SessionToken, error) {
	return uc.issue(uuid.New().String())
}

// RefreshSession reissues a token for a returning browser. Any stored backend
// credential is re-verified on the next request.
func (uc *authUseCase) RefreshSession(ctx context.Context, st *appstate.State) (*dto.SessionToken, error) {
	if err := uc.store.Dispatch(ctx, st, appstate.Resumed{}); err != nil {
		return nil, err
	}
	return uc.issue(st.SessionID)
}

func (uc *authUseCase) issue(sessionID string) (*dto.SessionToken, error) {
	token, exp, err := uc.issuer.Issue(sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionToken{Token: token, ExpiresAt: exp, SessionID: sessionID}, nil
}

func (uc *authUseCase) SignIn(ctx context.Context, st *appstate.State, input *dto.SignInInput) (*model.User, error) {
	user, cookie, err := uc.backend.SignIn(ctx, &apiclient.SignInRequest{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return uc.signedIn(ctx, st, user, cookie)
}

func (uc *authUseCase) SignUp(ctx context.Context, st *appstate.State, input *dto.SignUpInput) (*model.User, error) {
	user, cookie, err := uc.backend.SignUp(ctx, &apiclient.SignUpRequest{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return uc.signedIn(ctx, st, user, cookie)
}

func (uc *authUseCase) signedIn(ctx context.Context, st *appstate.State, user *model.User, cookie string) (*model.User, error) {
	if err := uc.store.Dispatch(ctx, st, appstate.SignedIn{User: *user, Cookie: cookie}); err != nil {
		return nil, err
	}
	uc.logger.Info("user signed in", zap.String("user_id", user.ID), zap.String("session_id", st.SessionID))
	return user, nil
}

func (uc *authUseCase) Me(ctx context.Context, st *appstate.State) (*model.User, error) {
	if !st.SignedIn() {
		return nil, nil
	}
	return st.User, nil
}

// Logout tears local state down even when the backend call fails.
func (uc *authUseCase) Logout(ctx context.Context, st *appstate.State) error {
	var userID string
	if st.User != nil {
		userID = st.User.ID
	}

	if st.BackendCookie != "" {
		if err := uc.backend.Logout(apiclient.WithCookie(ctx, st.BackendCookie)); err != nil {
			uc.logger.Warn("backend logout failed", zap.String("session_id", st.SessionID), zap.Error(err))
		}
	}

	uc.cache.Invalidate(ctx, querycache.MutationLogout, querycache.Scope{UserID: userID})
	return uc.store.Dispatch(ctx, st, appstate.LoggedOut{})
}
