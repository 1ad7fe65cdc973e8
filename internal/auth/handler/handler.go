package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/auth/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: log}
}

// StartSession is the only unauthenticated route: it hands a new browser its token.
func (h *AuthHandler) StartSession(c *gin.Context) {
	token, err := h.uc.StartSession(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

func (h *AuthHandler) RefreshSession(c *gin.Context) {
	ctx := c.Request.Context()
	token, err := h.uc.RefreshSession(ctx, auth.StateFromContext(ctx))
	if err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.uc.SignIn(ctx, auth.StateFromContext(ctx), &req)
	if err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.uc.SignUp(ctx, auth.StateFromContext(ctx), &req)
	if err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	st := auth.StateFromContext(ctx)
	user, err := h.uc.Me(ctx, st)
	if err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"current_shop": st.CurrentShop,
		"restoring":    st.Restoring,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.uc.Logout(ctx, auth.StateFromContext(ctx)); err != nil {
		httpx.Fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
