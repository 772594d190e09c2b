package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mvribeiro/talpha/internal/models"
)

// Login exchanges credentials for a bearer token. The token is returned to
// the caller; storing it is the caller's decision, so a failed login can
// never leave a credential behind.
func (c *Client) Login(ctx context.Context, taxNumber, password string) (string, error) {
	payload := map[string]string{
		"taxNumber": taxNumber,
		"password":  password,
	}

	var data struct {
		Token string `json:"token"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &data); err != nil {
		return "", err
	}

	if data.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}

	return data.Token, nil
}

// Register creates a new account. Registration does not authenticate: the API
// issues no token and the caller stays signed out.
func (c *Client) Register(ctx context.Context, input models.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", input, nil)
}
