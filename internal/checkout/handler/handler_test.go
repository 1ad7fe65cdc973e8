package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	checkout.UseCase
	err       error
	lastLevel string
	lastID    int64
}

func (s *stubUseCase) view(id string) (*dto.SessionView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionView{CheckoutSession: &model.CheckoutSession{BaseModel: model.BaseModel{ID: id}}}, nil
}

func (s *stubUseCase) Next(_ context.Context, id string) (*dto.SessionView, error) {
	return s.view(id)
}

func (s *stubUseCase) SelectCity(_ context.Context, id string, cityID int64) (*dto.SessionView, error) {
	s.lastLevel, s.lastID = "city", cityID
	return s.view(id)
}

func (s *stubUseCase) SelectZone(_ context.Context, id string, zoneID int64) (*dto.SessionView, error) {
	s.lastLevel, s.lastID = "zone", zoneID
	return s.view(id)
}

func (s *stubUseCase) SendOTP(context.Context, string) (*dto.OTPStatus, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OTPStatus{SentTo: "******5678", ResendIn: 60}, nil
}

func (s *stubUseCase) Submit(context.Context, string) (*dto.Confirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.Confirmation{OrderID: "o-1", Redirect: "/order-confirmation/o-1"}, nil
}

func newRouter(uc checkout.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCheckoutHandler(uc, logger.NewNop()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing session", checkout.ErrSessionNotFound, http.StatusNotFound},
		{"last step", wizard.ErrTerminalStep, http.StatusConflict},
		{"invalid step", &wizard.ValidationError{Step: 1, Fields: wizard.FieldErrors{"items": "Items must be at least 1"}}, http.StatusUnprocessableEntity},
		{"zone mismatch", location.ErrUnknownZone, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(&stubUseCase{err: tt.err}), http.MethodPost, "/api/v1/checkout/c-1/next", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCheckoutHandler_OTPCooldown(t *testing.T) {
	r := newRouter(&stubUseCase{err: &checkout.OTPCooldownError{Remaining: 41500 * time.Millisecond}})
	w := do(r, http.MethodPost, "/api/v1/checkout/c-1/otp", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		ResendIn int `json:"resend_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 42, body.ResendIn)
}

func TestCheckoutHandler_SelectLocation(t *testing.T) {
	uc := &stubUseCase{}
	r := newRouter(uc)

	w := do(r, http.MethodPut, "/api/v1/checkout/c-1/location/zone", map[string]int64{"id": 12})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "zone", uc.lastLevel)
	assert.Equal(t, int64(12), uc.lastID)

	w = do(r, http.MethodPut, "/api/v1/checkout/c-1/location/street", map[string]int64{"id": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/api/v1/checkout/c-1/location/city", map[string]int64{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_Submit(t *testing.T) {
	w := do(newRouter(&stubUseCase{}), http.MethodPost, "/api/v1/checkout/c-1/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var conf dto.Confirmation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conf))
	assert.Equal(t, "/order-confirmation/o-1", conf.Redirect)
}
