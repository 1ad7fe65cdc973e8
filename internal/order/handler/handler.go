package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

var sentinels = []httpx.Sentinel{
	{Err: order.ErrOrderNotFound, Status: http.StatusNotFound},
	{Err: order.ErrNoCourier, Status: http.StatusConflict},
	{Err: order.ErrConsignmentExists, Status: http.StatusConflict},
	{Err: order.ErrNoConsignment, Status: http.StatusConflict},
	{Err: order.ErrNegativeAmount, Status: http.StatusUnprocessableEntity},
	{Err: location.ErrZoneRequired, Status: http.StatusUnprocessableEntity},
	{Err: location.ErrUnknownZone, Status: http.StatusUnprocessableEntity},
	{Err: location.ErrUnknownArea, Status: http.StatusUnprocessableEntity},
}

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func currentShop(c *gin.Context) *model.Shop {
	return auth.StateFromContext(c.Request.Context()).CurrentShop
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := &dto.OrderFilters{}
	if s := c.Query("status"); s != "" {
		status, err := model.ParseOrderStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filters.Status = &status
	}

	orders, err := h.uc.ListOrders(c.Request.Context(), currentShop(c), filters)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.uc.GetOrder(c.Request.Context(), currentShop(c), c.Param("id"))
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	o, err := h.uc.UpdateOrder(c.Request.Context(), currentShop(c), c.Param("id"), &req)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), currentShop(c), c.Param("id")); err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) RequestDelivery(c *gin.Context) {
	o, err := h.uc.RequestDelivery(c.Request.Context(), currentShop(c), c.Param("id"))
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) CancelDelivery(c *gin.Context) {
	o, err := h.uc.CancelDelivery(c.Request.Context(), currentShop(c), c.Param("id"))
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, o)
}

// RegisterRoutes expects rg to already require a signed-in user with a shop selected.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.GET("", h.ListOrders)
	g.GET("/:id", h.GetOrder)
	g.PATCH("/:id", h.UpdateOrder)
	g.DELETE("/:id", h.DeleteOrder)
	g.POST("/:id/delivery", h.RequestDelivery)
	g.DELETE("/:id/delivery", h.CancelDelivery)
}
