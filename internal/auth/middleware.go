package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Verifier confirms a stored backend credential is still accepted.
type Verifier interface {
	Me(ctx context.Context) (*model.User, error)
}

// Middleware resolves the bearer token to a hydrated session state and puts it,
// along with the backend cookie, on the request context.
func Middleware(issuer *TokenIssuer, store *appstate.Store, verifier Verifier, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}

		sessionID, err := issuer.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		st, err := store.Hydrate(ctx, sessionID)
		if err != nil {
			log.Error("failed to hydrate session", zap.String("session_id", sessionID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": apiclient.FallbackMessage})
			return
		}

		if st.Restoring {
			restore(ctx, st, store, verifier, log)
		}

		ctx = WithState(ctx, st)
		ctx = apiclient.WithCookie(ctx, st.BackendCookie)
		if lang := c.GetHeader("Accept-Language"); lang != "" {
			ctx = i18n.WithLanguages(ctx, lang)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func restore(ctx context.Context, st *appstate.State, store *appstate.Store, verifier Verifier, log logger.ZapLogger) {
	user, err := verifier.Me(apiclient.WithCookie(ctx, st.BackendCookie))
	var action appstate.Action
	switch {
	case err == nil:
		action = appstate.Restored{User: *user}
	case apiclient.IsUnauthorized(err):
		action = appstate.RestoreFailed{}
	default:
		// backend unreachable; keep the credential and try again on the next request
		log.Warn("session restore deferred", zap.String("session_id", st.SessionID), zap.Error(err))
		return
	}
	if err := store.Dispatch(ctx, st, action); err != nil {
		log.Error("failed to persist restored session", zap.String("session_id", st.SessionID), zap.Error(err))
	}
}

// RequireUser rejects requests from sessions that are not signed in.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := StateFromContext(c.Request.Context())
		if st == nil || !st.SignedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to continue"})
			return
		}
		c.Next()
	}
}

// RequireShop rejects seller requests made before a shop was selected.
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetShopID(c.Request.Context()) == "" {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Select a shop first"})
			return
		}
		c.Next()
	}
}
