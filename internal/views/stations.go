package views

import (
	"context"
	"fmt"

	"transitpay/internal/notice"
)

// StationsController lists the reference station data used for tap-in and tap-out.
type StationsController struct {
	Deps
}

// NewStationsController returns the controller.
func NewStationsController(d Deps) *StationsController {
	return &StationsController{Deps: d}
}

// List renders every station.
func (c *StationsController) List(ctx context.Context) error {
	stations, err := c.API.Stations.List(ctx)
	if err != nil {
		return c.loadFailed("stations", err)
	}
	if len(stations) == 0 {
		c.printf("No stations\n")
		return nil
	}
	tw := newTable(c.Out)
	fmt.Fprintln(tw, "ID\tNAME\tZONE")
	for _, s := range stations {
		fmt.Fprintf(tw, "%d\t%s\tZone %d\n", s.ID, s.Name, s.Zone)
	}
	return tw.Flush()
}

// Show renders one station.
func (c *StationsController) Show(ctx context.Context, stationID int64) error {
	station, err := c.API.Stations.Get(ctx, stationID)
	if err != nil {
		c.notify(notice.Danger, "Failed to load station: "+err.Error())
		return err
	}
	c.printf("#%d %s (Zone %d)\n", station.ID, station.Name, station.Zone)
	return nil
}
