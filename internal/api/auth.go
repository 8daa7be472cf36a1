package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// ErrNoToken is returned when a login response carries no token.
var ErrNoToken = errors.New("login response did not include a token")

// Login posts the credentials and returns the bearer token, read from
// either "token" or "accessToken".
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, "login failed")
	if err != nil {
		return "", err
	}

	var resp struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.Token != "" {
		return resp.Token, nil
	}
	if resp.AccessToken != "" {
		return resp.AccessToken, nil
	}
	return "", ErrNoToken
}

// Me returns the user of the current token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/api/auth/me", nil, "could not load profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
