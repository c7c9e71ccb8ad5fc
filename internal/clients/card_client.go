package clients

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"transitpay/internal/models"
)

// ErrNotSupported marks operations the backend does not implement.
var ErrNotSupported = errors.New("operation not supported by the backend")

// CardClient calls the card endpoints.
type CardClient struct {
	base *BaseClient
}

// NewCardClient returns client.
func NewCardClient(base *BaseClient) *CardClient {
	return &CardClient{base: base}
}

// ListByUser fetches every card of the user.
func (c *CardClient) ListByUser(ctx context.Context, userID int64) ([]models.Card, error) {
	return doData[[]models.Card](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   "/cards/user/" + strconv.FormatInt(userID, 10),
		Route:  "/cards/user/{id}",
	})
}

// Add registers a new card.
func (c *CardClient) Add(ctx context.Context, userID int64, req models.CardRequest) (models.Card, error) {
	return doData[models.Card](ctx, c.base, Request{
		Method: http.MethodPost,
		Path:   "/cards/user/" + strconv.FormatInt(userID, 10),
		Route:  "/cards/user/{id}",
		Body:   req,
	})
}

// SetDefault marks the card as the default payment method.
func (c *CardClient) SetDefault(ctx context.Context, cardID int64) error {
	return c.base.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   "/cards/" + strconv.FormatInt(cardID, 10) + "/set-default",
		Route:  "/cards/{id}/set-default",
	}, nil)
}

// Delete removes the card.
func (c *CardClient) Delete(ctx context.Context, cardID int64) error {
	return c.base.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/cards/" + strconv.FormatInt(cardID, 10),
		Route:  "/cards/{id}",
	}, nil)
}

// Block is not exposed by the backend yet; it never issues a request.
func (c *CardClient) Block(_ context.Context, _ int64) error {
	return ErrNotSupported
}
