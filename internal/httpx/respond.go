// Package httpx maps use-case errors onto JSON HTTP responses.
package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const invalidMessage = "Please correct the highlighted fields."

// Sentinel pairs a package error with the status it is reported as.
type Sentinel struct {
	Err    error
	Status int
}

// Fail writes err as a JSON error body. Unknown errors are logged and hidden
// behind the generic fallback message.
func Fail(c *gin.Context, log logger.ZapLogger, err error, sentinels ...Sentinel) {
	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  invalidMessage,
			"step":   vErr.Step,
			"fields": vErr.Fields,
		})
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  invalidMessage,
			"fields": wizard.Translate(c.Request.Context(), verrs),
		})
		return
	}

	for _, s := range sentinels {
		if errors.Is(err, s.Err) {
			c.JSON(s.Status, gin.H{"error": s.Err.Error()})
			return
		}
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
			log.Error("backend error", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": apiclient.UserMessage(err)})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": apiclient.FallbackMessage})
		return
	}

	log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": apiclient.FallbackMessage})
}

// BadRequest reports a body that could not be bound.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
}
