package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"transitpay/internal/models"
)

// UserClient calls the profile endpoints.
type UserClient struct {
	base *BaseClient
}

// NewUserClient returns client.
func NewUserClient(base *BaseClient) *UserClient {
	return &UserClient{base: base}
}

func userPath(userID int64, suffix string) string {
	return "/users/" + strconv.FormatInt(userID, 10) + suffix
}

// Profile fetches the user.
func (c *UserClient) Profile(ctx context.Context, userID int64) (models.User, error) {
	return doData[models.User](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   userPath(userID, ""),
		Route:  "/users/{id}",
	})
}

// UpdateProfile replaces the editable profile fields and returns the stored user.
func (c *UserClient) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	return doData[models.User](ctx, c.base, Request{
		Method: http.MethodPut,
		Path:   userPath(userID, ""),
		Route:  "/users/{id}",
		Body:   update,
	})
}

// AddBalance tops up the balance by amount.
func (c *UserClient) AddBalance(ctx context.Context, userID int64, amount float64) error {
	return c.base.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   userPath(userID, "/balance/add"),
		Route:  "/users/{id}/balance/add",
		Query:  url.Values{"amount": {strconv.FormatFloat(amount, 'f', -1, 64)}},
	}, nil)
}

// ChangePassword replaces the password.
func (c *UserClient) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return c.base.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   userPath(userID, "/password"),
		Route:  "/users/{id}/password",
		Body:   models.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword},
	}, nil)
}
