package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"transitpay/internal/filter"
	"transitpay/internal/models"
)

// JourneyClient calls the journey endpoints.
type JourneyClient struct {
	base *BaseClient
}

// NewJourneyClient returns client.
func NewJourneyClient(base *BaseClient) *JourneyClient {
	return &JourneyClient{base: base}
}

// ListByUser fetches the journey history of the user, in backend order.
func (c *JourneyClient) ListByUser(ctx context.Context, userID int64) ([]models.Journey, error) {
	return doData[[]models.Journey](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   "/journeys/user/" + strconv.FormatInt(userID, 10),
		Route:  "/journeys/user/{id}",
	})
}

// TapIn starts a journey.
func (c *JourneyClient) TapIn(ctx context.Context, req models.TapInRequest) (models.Journey, error) {
	return doData[models.Journey](ctx, c.base, Request{
		Method: http.MethodPost,
		Path:   "/journeys/tap-in",
		Body:   req,
	})
}

// TapOut completes a journey at the exit station.
func (c *JourneyClient) TapOut(ctx context.Context, journeyID, exitStationID int64) (models.Journey, error) {
	return doData[models.Journey](ctx, c.base, Request{
		Method: http.MethodPut,
		Path:   "/journeys/" + strconv.FormatInt(journeyID, 10) + "/tap-out",
		Route:  "/journeys/{id}/tap-out",
		Query:  url.Values{"exitStationId": {strconv.FormatInt(exitStationID, 10)}},
	})
}

// Active returns the user's in-progress journey, or nil when there is none or the history
// could not be fetched.
func (c *JourneyClient) Active(ctx context.Context, userID int64) *models.Journey {
	journeys, err := c.ListByUser(ctx, userID)
	if err != nil {
		c.base.logger.Debug("active journey lookup suppressed error", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	return filter.ActiveJourney(journeys)
}
