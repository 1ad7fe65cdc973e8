package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

var sentinels = []httpx.Sentinel{
	{Err: checkout.ErrSessionNotFound, Status: http.StatusNotFound},
	{Err: checkout.ErrNoVariants, Status: http.StatusConflict},
	{Err: checkout.ErrNotAtVerification, Status: http.StatusConflict},
	{Err: checkout.ErrNotAtPayment, Status: http.StatusConflict},
	{Err: checkout.ErrSubmitInProgress, Status: http.StatusConflict},
	{Err: wizard.ErrTerminalStep, Status: http.StatusConflict},
	{Err: location.ErrCityRequired, Status: http.StatusConflict},
	{Err: location.ErrZoneRequired, Status: http.StatusConflict},
	{Err: location.ErrUnknownCity, Status: http.StatusUnprocessableEntity},
	{Err: location.ErrUnknownZone, Status: http.StatusUnprocessableEntity},
	{Err: location.ErrUnknownArea, Status: http.StatusUnprocessableEntity},
}

type CheckoutHandler struct {
	uc     checkout.UseCase
	logger logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: log}
}

func (h *CheckoutHandler) fail(c *gin.Context, err error) {
	var cooldown *checkout.OTPCooldownError
	if errors.As(err, &cooldown) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     cooldown.Error(),
			"resend_in": checkout.Seconds(cooldown.Remaining),
		})
		return
	}
	httpx.Fail(c, h.logger, err, sentinels...)
}

func (h *CheckoutHandler) Start(c *gin.Context) {
	var req dto.StartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	view, err := h.uc.Start(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	view, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) UpdateForm(c *gin.Context) {
	var req dto.UpdateFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	view, err := h.uc.UpdateForm(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectLocation handles PUT /checkout/:id/location/:level for city, zone and area.
func (h *CheckoutHandler) SelectLocation(c *gin.Context) {
	var req dto.SelectLocationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	ctx, id := c.Request.Context(), c.Param("id")
	var (
		view *dto.SessionView
		err  error
	)
	switch c.Param("level") {
	case "city":
		view, err = h.uc.SelectCity(ctx, id, req.ID)
	case "zone":
		view, err = h.uc.SelectZone(ctx, id, req.ID)
	case "area":
		view, err = h.uc.SelectArea(ctx, id, req.ID)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown location level"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Next(c *gin.Context) {
	view, err := h.uc.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Back(c *gin.Context) {
	view, err := h.uc.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SendOTP(c *gin.Context) {
	status, err := h.uc.SendOTP(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, status)
}

func (h *CheckoutHandler) Submit(c *gin.Context) {
	conf, err := h.uc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, conf)
}

func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/checkout")
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.UpdateForm)
	g.PUT("/:id/location/:level", h.SelectLocation)
	g.POST("/:id/next", h.Next)
	g.POST("/:id/back", h.Back)
	g.POST("/:id/otp", h.SendOTP)
	g.POST("/:id/submit", h.Submit)
}
