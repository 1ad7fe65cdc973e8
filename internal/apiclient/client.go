package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"go.uber.org/zap"
)

// apiPrefix is the versioned root of every backend route.
const apiPrefix = "/api/v1"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thin JSON-over-HTTP wrapper around the remote commerce API.
// Credentials are the backend session cookie carried in the request context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.ZapLogger
}

func New(cfg Config, log logger.ZapLogger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     log,
	}, nil
}

type cookieKey struct{}

// WithCookie attaches the backend session cookie to ctx.
func WithCookie(ctx context.Context, cookie string) context.Context {
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey{}, cookie)
}

func CookieFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(cookieKey{}).(string); ok {
		return v
	}
	return ""
}

// do sends a JSON request. route is the path template used as the metrics label.
func (c *Client) do(ctx context.Context, method, route, path string, body, out interface{}) (http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, route, err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, route, out)
}

func (c *Client) send(req *http.Request, route string, out interface{}) (http.Header, error) {
	req.Header.Set("Accept", "application/json")
	if cookie := CookieFromContext(req.Context()); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(req.Method, route, "error").Observe(time.Since(start).Seconds())
		c.logger.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("route", route),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", req.Method, route, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(req.Method, route, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", req.Method, route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Header, parseErrorResponse(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := decodeBody(respBody, out); err != nil {
			return resp.Header, fmt.Errorf("decode %s %s: %w", req.Method, route, err)
		}
	}
	return resp.Header, nil
}

// decodeBody accepts both a bare payload and one wrapped in {"data": ...}.
func decodeBody(body []byte, out interface{}) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}

// cookieHeader folds Set-Cookie values into a single Cookie request header.
func cookieHeader(h http.Header) string {
	cookies := (&http.Response{Header: h}).Cookies()
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}
