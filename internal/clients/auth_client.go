package clients

import (
	"context"
	"net/http"

	"transitpay/internal/models"
)

// AuthClient calls the login and registration endpoints.
type AuthClient struct {
	base *BaseClient
}

// NewAuthClient returns client.
func NewAuthClient(base *BaseClient) *AuthClient {
	return &AuthClient{base: base}
}

// Login exchanges credentials for a token and the user record.
func (c *AuthClient) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	return doData[models.AuthResult](ctx, c.base, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.LoginRequest{Email: email, Password: password},
	})
}

// Register creates an account. The backend answers {user} without a token.
func (c *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	return doData[models.AuthResult](ctx, c.base, Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   req,
	})
}
