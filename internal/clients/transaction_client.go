package clients

import (
	"context"
	"net/http"
	"strconv"

	"transitpay/internal/models"
)

// TransactionClient calls the transaction history endpoint.
type TransactionClient struct {
	base *BaseClient
}

// NewTransactionClient returns client.
func NewTransactionClient(base *BaseClient) *TransactionClient {
	return &TransactionClient{base: base}
}

// ListByUser fetches the transaction history of the user.
func (c *TransactionClient) ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return doData[[]models.Transaction](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   "/transactions/user/" + strconv.FormatInt(userID, 10),
		Route:  "/transactions/user/{id}",
	})
}
