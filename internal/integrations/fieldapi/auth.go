package fieldapi

import (
	"context"
	"fmt"
	"net/http"
)

// Login авторизует пользователя и возвращает токен
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", "/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrInvalidResponse)
	}
	c.log.Info("fieldapi: user %s logged in, user_id=%d", username, resp.UserID)
	return &resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", "/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
