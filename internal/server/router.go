// Package server assembles the HTTP surface of the storefront.
package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	authH "github.com/fekuna/omnipos-storefront/internal/auth/handler"
	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	locationH "github.com/fekuna/omnipos-storefront/internal/location/handler"
	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	productH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	shopH "github.com/fekuna/omnipos-storefront/internal/shop/handler"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Release        bool
	AllowedOrigins []string
}

// Deps are the collaborators the router mounts.
type Deps struct {
	Issuer   *auth.TokenIssuer
	Store    *appstate.Store
	Verifier auth.Verifier
	Auth     *authH.AuthHandler
	Shops    *shopH.ShopHandler
	Products *productH.ProductHandler
	Orders   *orderH.OrderHandler
	Checkout *checkoutH.CheckoutHandler
	Location *locationH.LocationHandler
}

func NewRouter(opts Options, deps Deps, log logger.ZapLogger) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestLogger(log), recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/sessions", deps.Auth.StartSession)
	deps.Products.RegisterPublicRoutes(v1)
	deps.Location.RegisterRoutes(v1)

	// everything below needs a session token
	session := v1.Group("", auth.Middleware(deps.Issuer, deps.Store, deps.Verifier, log))
	session.POST("/sessions/refresh", deps.Auth.RefreshSession)
	session.POST("/auth/signin", deps.Auth.SignIn)
	session.POST("/auth/signup", deps.Auth.SignUp)
	session.GET("/auth/me", deps.Auth.Me)
	session.POST("/auth/logout", deps.Auth.Logout)
	deps.Checkout.RegisterRoutes(session)

	seller := session.Group("", auth.RequireUser())
	deps.Shops.RegisterRoutes(seller)

	shop := seller.Group("", auth.RequireShop())
	deps.Products.RegisterRoutes(shop)
	deps.Orders.RegisterRoutes(shop)

	return r
}

func requestLogger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Debug("request", fields...)
		}
	}
}

func recovery(log logger.ZapLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", zap.Any("panic", recovered), zap.String("route", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apiclient.FallbackMessage})
	})
}
