package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

var sentinels = []httpx.Sentinel{
	{Err: location.ErrCityRequired, Status: http.StatusBadRequest},
	{Err: location.ErrZoneRequired, Status: http.StatusBadRequest},
}

type LocationHandler struct {
	uc     *location.UseCase
	logger logger.ZapLogger
}

func NewLocationHandler(uc *location.UseCase, log logger.ZapLogger) *LocationHandler {
	return &LocationHandler{uc: uc, logger: log}
}

func (h *LocationHandler) Cities(c *gin.Context) {
	cities, err := h.uc.Cities(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *LocationHandler) Zones(c *gin.Context) {
	cityID, _ := strconv.ParseInt(c.Param("cityId"), 10, 64)
	zones, err := h.uc.Zones(c.Request.Context(), cityID)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

func (h *LocationHandler) Areas(c *gin.Context) {
	zoneID, _ := strconv.ParseInt(c.Param("zoneId"), 10, 64)
	areas, err := h.uc.Areas(c.Request.Context(), zoneID)
	if err != nil {
		httpx.Fail(c, h.logger, err, sentinels...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/locations")
	g.GET("/cities", h.Cities)
	g.GET("/cities/:cityId/zones", h.Zones)
	g.GET("/zones/:zoneId/areas", h.Areas)
}
