package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("thing is gone")

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"sentinel", fmt.Errorf("load: %w", errGone), http.StatusNotFound, "thing is gone"},
		{"validation", &wizard.ValidationError{Step: 2, Fields: wizard.FieldErrors{"phone": "Phone is required"}}, http.StatusUnprocessableEntity, invalidMessage},
		{"backend client error", &apiclient.APIError{StatusCode: http.StatusConflict, Message: "Email already registered"}, http.StatusConflict, "Email already registered"},
		{"backend server error", &apiclient.APIError{StatusCode: http.StatusServiceUnavailable}, http.StatusBadGateway, apiclient.FallbackMessage},
		{"timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, apiclient.FallbackMessage},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, apiclient.FallbackMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Fail(c, logger.NewNop(), tt.err, Sentinel{Err: errGone, Status: http.StatusNotFound})

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}
