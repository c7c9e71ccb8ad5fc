package views

import (
	"context"
	"fmt"

	"transitpay/internal/filter"
	"transitpay/internal/format"
	"transitpay/internal/models"
)

// JourneysController owns one snapshot of the journey history. Filters run against the
// snapshot and never call the backend.
type JourneysController struct {
	Deps
	journeys []models.Journey
	loaded   bool
}

// NewJourneysController returns the controller.
func NewJourneysController(d Deps) *JourneysController {
	return &JourneysController{Deps: d}
}

// Load fetches the history once. Later calls are no-ops.
func (c *JourneysController) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	journeys, err := c.API.Journeys.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	c.journeys = journeys
	c.loaded = true
	return nil
}

// Snapshot returns the loaded journeys.
func (c *JourneysController) Snapshot() []models.Journey {
	return c.journeys
}

// Show loads the history and renders it through f.
func (c *JourneysController) Show(ctx context.Context, f filter.JourneyFilter) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	if err := c.Load(ctx); err != nil {
		return c.loadFailed("journeys", err)
	}
	c.Apply(f)
	return nil
}

// Apply renders the journeys matching f with stats recomputed from exactly those rows.
func (c *JourneysController) Apply(f filter.JourneyFilter) filter.JourneyStats {
	visible := filter.Journeys(c.journeys, f)
	stats := filter.SummarizeJourneys(visible)

	if len(visible) == 0 {
		c.printf("No journeys found\n")
	} else {
		tw := newTable(c.Out)
		fmt.Fprintln(tw, "ID\tTAP IN\tFROM\tTO\tDURATION\tFARE\tSTATUS")
		for _, j := range visible {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				j.ID, format.DateTime(j.TapInTime.Time), format.StationName(j.EntryStation),
				format.StationName(j.ExitStation), format.Duration(j.TapInTime.Time, j.TapOutTime.Time),
				format.Fare(j), c.badge(string(j.Status)))
		}
		tw.Flush()
	}

	c.printf("\nTotal: %d  Completed: %d  In progress: %d  Cancelled: %d  Spent: %s\n",
		stats.Total, stats.Completed, stats.InProgress, stats.Cancelled, format.Currency(stats.TotalSpent))
	return stats
}
