package api

import (
	"context"
	"fmt"
	"net/http"

	"house-portal/models"
)

// UserClient consumes the user service.
type UserClient struct {
	*Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{Client: c}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a token and user record.
func (c *UserClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	body := map[string]string{"username": username, "password": password}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// UpdateUser sends a partial profile change and returns the updated record.
func (c *UserClient) UpdateUser(ctx context.Context, token string, id int64, patch models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.doAuthorizedJSON(ctx, http.MethodPut, path, token, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword sets a new password for the user.
func (c *UserClient) ChangePassword(ctx context.Context, token string, id int64, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	path := fmt.Sprintf("/api/users/%d/change-password", id)
	return c.doAuthorizedJSON(ctx, http.MethodPost, path, token, body, nil)
}

// doAuthorizedJSON is doJSON with a bearer token attached.
func (c *UserClient) doAuthorizedJSON(ctx context.Context, method, path, token string, body, out any) error {
	return c.doJSONWithHeader(ctx, method, path, body, out, "Authorization", "Bearer "+token)
}
