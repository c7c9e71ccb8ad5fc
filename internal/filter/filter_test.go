package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpay/internal/models"
)

func at(y int, m time.Month, d, hh, mm, ss, ms int) models.Timestamp {
	return models.NewTimestamp(time.Date(y, m, d, hh, mm, ss, ms*int(time.Millisecond), time.Local))
}

func fare(v float64) *float64 { return &v }

func sampleJourneys() []models.Journey {
	return []models.Journey{
		{ID: 1, Status: models.JourneyCompleted, TapInTime: at(2024, 5, 1, 8, 0, 0, 0), Fare: fare(2.5)},
		{ID: 2, Status: models.JourneyCompleted, TapInTime: at(2024, 5, 3, 23, 59, 59, 0), Fare: fare(3)},
		{ID: 3, Status: models.JourneyInProgress, TapInTime: at(2024, 5, 4, 0, 0, 0, 1)},
		{ID: 4, Status: models.JourneyCancelled, TapInTime: at(2024, 4, 30, 12, 0, 0, 0)},
		{ID: 5, Status: models.JourneyCompleted, TapInTime: at(2024, 5, 2, 9, 30, 0, 0), Fare: fare(1.75)},
	}
}

func ids(js []models.Journey) []int64 {
	out := make([]int64, 0, len(js))
	for _, j := range js {
		out = append(out, j.ID)
	}
	return out
}

func TestDateRangeEndOfDayBoundary(t *testing.T) {
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local)
	r := DateRange{To: day}

	assert.True(t, r.Contains(at(2024, 5, 3, 23, 59, 59, 0).Time))
	assert.True(t, r.Contains(at(2024, 5, 3, 23, 59, 59, 999).Time))
	assert.False(t, r.Contains(at(2024, 5, 4, 0, 0, 0, 1).Time))
}

func TestDateRangeSameDayIncludesWholeDay(t *testing.T) {
	day := time.Date(2024, 5, 3, 15, 0, 0, 0, time.Local)
	r := DateRange{From: day, To: day}

	assert.True(t, r.Contains(at(2024, 5, 3, 0, 0, 0, 0).Time))
	assert.True(t, r.Contains(at(2024, 5, 3, 12, 0, 0, 0).Time))
	assert.False(t, r.Contains(at(2024, 5, 2, 23, 59, 59, 999).Time))
	assert.False(t, r.Contains(time.Time{}))
	assert.True(t, DateRange{}.Contains(time.Time{}))
}

func TestJourneysFilterByStatusAndRange(t *testing.T) {
	all := sampleJourneys()
	f := JourneyFilter{
		Status: models.JourneyCompleted,
		Range: DateRange{
			From: time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local),
			To:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local),
		},
	}
	assert.Equal(t, []int64{2, 5}, ids(Journeys(all, f)))
	assert.Len(t, all, 5, "input untouched")
}

func TestJourneyFiltersCommute(t *testing.T) {
	all := sampleJourneys()
	status := JourneyFilter{Status: models.JourneyCompleted}
	dates := JourneyFilter{Range: DateRange{
		From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
		To:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local),
	}}

	statusFirst := Journeys(Journeys(all, status), dates)
	datesFirst := Journeys(Journeys(all, dates), status)
	assert.Equal(t, ids(statusFirst), ids(datesFirst))

	// re-applying is idempotent
	assert.Equal(t, ids(statusFirst), ids(Journeys(statusFirst, status)))
}

func TestSummarizeJourneys(t *testing.T) {
	s := SummarizeJourneys(sampleJourneys())
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Cancelled)
	assert.InDelta(t, 7.25, s.TotalSpent, 1e-9)

	assert.Equal(t, JourneyStats{}, SummarizeJourneys(nil))
}

func TestActiveJourneyPrefersLatestTapIn(t *testing.T) {
	journeys := []models.Journey{
		{ID: 1, Status: models.JourneyCompleted, TapInTime: at(2024, 5, 9, 8, 0, 0, 0)},
		{ID: 2, Status: models.JourneyInProgress, TapInTime: at(2024, 5, 1, 8, 0, 0, 0)},
		{ID: 3, Status: models.JourneyInProgress, TapInTime: at(2024, 5, 2, 8, 0, 0, 0)},
		{ID: 4, Status: models.JourneyInProgress, TapInTime: at(2024, 5, 2, 8, 0, 0, 0)},
	}
	active := ActiveJourney(journeys)
	require.NotNil(t, active)
	assert.Equal(t, int64(3), active.ID, "ties keep response order")

	assert.Nil(t, ActiveJourney(journeys[:1]))
	assert.Nil(t, ActiveJourney(nil))
}

func TestRecentAndSameMonth(t *testing.T) {
	all := sampleJourneys()
	assert.Equal(t, []int64{1, 2}, ids(Recent(all, 2)))
	assert.Len(t, Recent(all, 10), 5)
	assert.Empty(t, Recent(all, -1))

	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.Local)
	assert.Equal(t, []int64{1, 2, 3, 5}, ids(SameMonth(all, now)))
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: 1, TransactionType: models.TransactionTopUp, Amount: 20, Status: models.TransactionSuccess, TransactionDate: at(2024, 5, 1, 8, 0, 0, 0)},
		{ID: 2, TransactionType: models.TransactionPayment, Amount: 2.5, Status: models.TransactionSuccess, TransactionDate: at(2024, 5, 1, 9, 0, 0, 0)},
		{ID: 3, TransactionType: models.TransactionRefund, Amount: 1, Status: models.TransactionPending, TransactionDate: at(2024, 5, 2, 9, 0, 0, 0)},
		{ID: 4, TransactionType: models.TransactionPayment, Amount: 3.25, Status: models.TransactionFailed, TransactionDate: at(2024, 5, 3, 9, 0, 0, 0)},
		{ID: 5, TransactionType: models.TransactionAdjustment, Amount: 0.5, Status: models.TransactionSuccess, TransactionDate: at(2024, 5, 4, 9, 0, 0, 0)},
	}
}

func TestTransactionTypeFilterUpdatesStats(t *testing.T) {
	all := sampleTransactions()
	filtered := Transactions(all, TransactionFilter{Type: models.TransactionPayment})
	s := SummarizeTransactions(filtered)

	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 5.75, s.Total, 1e-9)
	assert.InDelta(t, 5.75, s.Payments, 1e-9)
	assert.Zero(t, s.TopUps)
	assert.Equal(t, 2, s.ByType[models.TransactionPayment])
	assert.Equal(t, 1, s.ByStatus[models.TransactionFailed])
}

func TestSummarizeTransactionsAll(t *testing.T) {
	s := SummarizeTransactions(sampleTransactions())
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 21, s.TopUps, 1e-9)
	assert.InDelta(t, 5.75, s.Payments, 1e-9)
	assert.InDelta(t, 27.25, s.Total, 1e-9)
}

func TestTransactionFiltersCommute(t *testing.T) {
	all := sampleTransactions()
	byType := TransactionFilter{Type: models.TransactionPayment}
	byDate := TransactionFilter{Range: DateRange{To: time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local)}}

	a := Transactions(Transactions(all, byType), byDate)
	b := Transactions(Transactions(all, byDate), byType)
	require.Len(t, a, 1)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(2), a[0].ID)
}

func TestActiveAndDefaultCards(t *testing.T) {
	cards := []models.Card{
		{ID: 1, Status: models.CardStatusBlocked, IsDefault: true},
		{ID: 2, Status: models.CardStatusActive},
		{ID: 3, Status: models.CardStatusExpired},
	}
	assert.Len(t, ActiveCards(cards), 1)

	c, ok := DefaultCard(cards)
	require.True(t, ok)
	assert.Equal(t, int64(2), c.ID)

	cards = append(cards, models.Card{ID: 4, Status: models.CardStatusActive, IsDefault: true})
	c, ok = DefaultCard(cards)
	require.True(t, ok)
	assert.Equal(t, int64(4), c.ID)

	_, ok = DefaultCard([]models.Card{{ID: 5, Status: models.CardStatusActive}, {ID: 6, Status: models.CardStatusActive}})
	assert.False(t, ok)
}
