package api

import (
	"context"
	"net/http"

	"ticked/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse is the session grant returned by login and register.
type AuthResponse struct {
	AccessToken string     `json:"accessToken"`
	User        model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentialsRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, email, password, name string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", credentialsRequest{Email: email, Password: password, Name: name}, &out)
	return out, err
}

// DeleteAccount permanently removes the authenticated account server-side.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/account", nil, nil)
}
