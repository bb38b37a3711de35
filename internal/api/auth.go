package api

import (
	"context"
	"net/http"

	"github.com/jparker/inkwell/internal/model"
)

// Credentials is the result of a successful login.
type Credentials struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	payload := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/login", payload, &creds)
	return creds, err
}

// Signup registers a new account. The backend validates username, email
// and password rules and reports violations in the error message.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/auth/signup", payload, nil)
}

// Logout revokes the current token server-side. Local teardown should
// proceed even when this call fails.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	payload := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	err := c.do(ctx, http.MethodPut, "/change-password", payload, &resp)
	return resp.Message, err
}
