package apiclient

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	User model.User `json:"user"`
}

// SignIn returns the user and the session cookie the backend set.
func (c *Client) SignIn(ctx context.Context, req *SignInRequest) (*model.User, string, error) {
	var out authResponse
	h, err := c.do(ctx, http.MethodPost, "/auth/signin", "/auth/signin", req, &out)
	if err != nil {
		return nil, "", err
	}
	return &out.User, cookieHeader(h), nil
}

func (c *Client) SignUp(ctx context.Context, req *SignUpRequest) (*model.User, string, error) {
	var out authResponse
	h, err := c.do(ctx, http.MethodPost, "/auth/signup", "/auth/signup", req, &out)
	if err != nil {
		return nil, "", err
	}
	return &out.User, cookieHeader(h), nil
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out authResponse
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", "/auth/logout", nil, nil)
	return err
}
