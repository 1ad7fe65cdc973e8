package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/", Timeout: 5 * time.Second}, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, logger.NewNop())
	assert.Error(t, err)
}

func TestClient_SignInCapturesCookie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/signin", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc"})
		http.SetCookie(w, &http.Cookie{Name: "csrf", Value: "xyz"})
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Sita","email":"sita@example.com"}}`))
	})

	user, cookie, err := c.SignIn(context.Background(), &SignInRequest{Email: "sita@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "sid=abc; csrf=xyz", cookie)
}

func TestClient_ForwardsCookie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "sid=abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not signed in"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u-1"}}`))
	})

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Not signed in", UserMessage(err))

	user, err := c.Me(WithCookie(context.Background(), "sid=abc"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestClient_DataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/shop/s-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"o-1","status":"pending"},{"id":"o-2","status":"shipped"}]}`))
	})

	orders, err := c.ShopOrders(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o-2", orders[1].ID)
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, FallbackMessage, UserMessage(err))
}

func TestClient_UploadImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "front.jpg", hdr.Filename)
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/front.jpg"}`))
	})

	url, err := c.UploadImage(context.Background(), "front.jpg", []byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/front.jpg", url)
}

func TestUserMessage_TransportError(t *testing.T) {
	assert.Equal(t, FallbackMessage, UserMessage(errors.New("dial tcp: connection refused")))
}
