package views

import (
	"context"
	"fmt"
	"math"

	"transitpay/internal/filter"
	"transitpay/internal/format"
	"transitpay/internal/models"
	"transitpay/internal/notice"
)

// RecentJourneys is how many journeys the dashboard lists.
const RecentJourneys = 5

// DashboardController shows balance, the active journey and recent activity, and runs top-up
// and tap-in/tap-out.
type DashboardController struct {
	Deps
}

// NewDashboardController returns the controller.
func NewDashboardController(d Deps) *DashboardController {
	return &DashboardController{Deps: d}
}

// Show renders the dashboard. Each section fails on its own.
func (c *DashboardController) Show(ctx context.Context) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}

	profile, err := c.API.Users.Profile(ctx, userID)
	if err != nil {
		if err := c.loadFailed("balance", err); err != nil {
			return err
		}
	} else {
		c.printf("%s\nBalance: %s\n\n", profile.FullName(), format.Currency(profile.Balance))
	}

	journeys, err := c.API.Journeys.ListByUser(ctx, userID)
	if err != nil {
		return c.loadFailed("journeys", err)
	}

	if active := filter.ActiveJourney(journeys); active != nil {
		c.printf("Active journey #%d from %s since %s (%s)\n\n",
			active.ID, format.StationName(active.EntryStation),
			format.DateTime(active.TapInTime.Time), format.Relative(active.TapInTime.Time, c.now()))
	}

	c.printf("Recent journeys\n")
	recent := filter.Recent(journeys, RecentJourneys)
	if len(recent) == 0 {
		c.printf("No journeys yet\n")
	} else {
		c.renderJourneys(recent)
	}

	month := filter.SummarizeJourneys(filter.SameMonth(journeys, c.now()))
	c.printf("\nThis month: %d journeys, %s spent\n", month.Total, format.Currency(month.TotalSpent))
	return nil
}

func (c *DashboardController) renderJourneys(journeys []models.Journey) {
	tw := newTable(c.Out)
	fmt.Fprintln(tw, "ID\tTAP IN\tFROM\tTO\tFARE\tSTATUS")
	for _, j := range journeys {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, format.DateTime(j.TapInTime.Time), format.StationName(j.EntryStation),
			format.StationName(j.ExitStation), format.Fare(j), c.badge(string(j.Status)))
	}
	tw.Flush()
}

// TopUp adds amount to the balance and reloads the dashboard.
func (c *DashboardController) TopUp(ctx context.Context, amount float64) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return c.actionFailed("top up balance", invalid("amount", "Please enter a valid amount"))
	}
	if err := c.API.Users.AddBalance(ctx, userID, amount); err != nil {
		return c.actionFailed("top up balance", err)
	}
	c.notify(notice.Success, fmt.Sprintf("Successfully added %s to your balance!", format.Currency(amount)))
	return c.Show(ctx)
}

// TapIn starts a journey at stationID. A zero cardID picks the default active card.
func (c *DashboardController) TapIn(ctx context.Context, stationID, cardID int64) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	if stationID <= 0 {
		return c.actionFailed("tap in", invalid("station", "Please select a station"))
	}
	if cardID <= 0 {
		cards, err := c.API.Cards.ListByUser(ctx, userID)
		if err != nil {
			return c.actionFailed("tap in", err)
		}
		card, ok := filter.DefaultCard(cards)
		if !ok {
			return c.actionFailed("tap in", invalid("card", "No active default card, please select a card"))
		}
		cardID = card.ID
	}

	journey, err := c.API.Journeys.TapIn(ctx, models.TapInRequest{
		UserID:         userID,
		CardID:         cardID,
		EntryStationID: stationID,
	})
	if err != nil {
		return c.actionFailed("tap in", err)
	}
	c.notify(notice.Success, "Tapped in successfully at "+format.StationName(journey.EntryStation)+"!")
	return c.Show(ctx)
}

// TapOut ends the active journey at stationID.
func (c *DashboardController) TapOut(ctx context.Context, stationID int64) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	if stationID <= 0 {
		return c.actionFailed("tap out", invalid("station", "Please select a station"))
	}
	active := c.API.Journeys.Active(ctx, userID)
	if active == nil {
		c.notify(notice.Warning, "No active journey found")
		return ErrNoActiveJourney
	}
	return c.tapOut(ctx, active.ID, stationID)
}

// QuickTapOut ends a specific journey, as listed on the dashboard.
func (c *DashboardController) QuickTapOut(ctx context.Context, journeyID, stationID int64) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	if stationID <= 0 {
		return c.actionFailed("tap out", invalid("station", "Please select a station"))
	}
	return c.tapOut(ctx, journeyID, stationID)
}

func (c *DashboardController) tapOut(ctx context.Context, journeyID, stationID int64) error {
	journey, err := c.API.Journeys.TapOut(ctx, journeyID, stationID)
	if err != nil {
		return c.actionFailed("tap out", err)
	}
	msg := "Tapped out successfully!"
	if journey.Fare != nil {
		msg = fmt.Sprintf("Tapped out successfully! Fare: %s", format.Fare(journey))
	}
	c.notify(notice.Success, msg)
	return c.Show(ctx)
}
