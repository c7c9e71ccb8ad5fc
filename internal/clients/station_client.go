package clients

import (
	"context"
	"net/http"
	"strconv"

	"transitpay/internal/models"
)

// StationClient fetches station reference data.
type StationClient struct {
	base *BaseClient
}

// NewStationClient returns client.
func NewStationClient(base *BaseClient) *StationClient {
	return &StationClient{base: base}
}

// List fetches every station.
func (c *StationClient) List(ctx context.Context) ([]models.Station, error) {
	return doData[[]models.Station](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   "/stations",
	})
}

// Get fetches one station.
func (c *StationClient) Get(ctx context.Context, stationID int64) (models.Station, error) {
	return doData[models.Station](ctx, c.base, Request{
		Method: http.MethodGet,
		Path:   "/stations/" + strconv.FormatInt(stationID, 10),
		Route:  "/stations/{id}",
	})
}
