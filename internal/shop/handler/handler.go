package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/shop"
	"github.com/fekuna/omnipos-storefront/internal/shop/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

var sentinels = []httpx.Sentinel{
	{Err: shop.ErrShopNotFound, Status: http.StatusNotFound},
}

type ShopHandler struct {
	uc     shop.UseCase
	logger logger.ZapLogger
}

func NewShopHandler(uc shop.UseCase, log logger.ZapLogger) *ShopHandler {
	return &ShopHandler{uc: uc, logger: log}
}

func (h *ShopHandler) MyShops(c *gin.Context) {
	ctx := c.Request.Context()
	shops, err := h.uc.MyShops(ctx, auth.StateFromContext(ctx))
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req dto.CreateShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	s, err := h.uc.CreateShop(ctx, auth.StateFromContext(ctx), &req)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req dto.UpdateShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	s, err := h.uc.UpdateShop(ctx, auth.StateFromContext(ctx), c.Param("id"), &req)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ShopHandler) SelectShop(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.uc.SelectShop(ctx, auth.StateFromContext(ctx), c.Param("id"))
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_shop": s})
}

// RegisterRoutes expects rg to already require a signed-in user.
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/shops")
	g.GET("", h.MyShops)
	g.POST("", h.CreateShop)
	g.PATCH("/:id", h.UpdateShop)
	g.POST("/:id/select", h.SelectShop)
}
