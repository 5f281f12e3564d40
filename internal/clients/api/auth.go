package api

import (
	"context"
	"net/http"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

func (c *Client) Login(ctx context.Context, credentials Credentials) (models.User, error) {
	var user models.User
	err := c.send(ctx, call{name: "login", method: http.MethodPost, path: loginPath, payload: credentials}, &user)
	return user, err
}

func (c *Client) Register(ctx context.Context, registration Registration) (models.User, error) {
	var user models.User
	err := c.send(ctx, call{name: "register", method: http.MethodPost, path: registerPath, payload: registration}, &user)
	return user, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, call{name: "logout", method: http.MethodPost, path: "/auth/logout/"}, nil)
}

// Refresh exchanges the refresh_token cookie for a new access_token cookie.
func (c *Client) Refresh(ctx context.Context) error {
	return c.send(ctx, call{name: "refresh", method: http.MethodPost, path: refreshPath}, nil)
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.send(ctx, call{name: "me", method: http.MethodGet, path: "/auth/me/"}, &user)
	return user, err
}
