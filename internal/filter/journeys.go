package filter

import (
	"time"

	"transitpay/internal/models"
)

// JourneyFilter selects journeys by exact status and tap-in date. Zero fields match all.
type JourneyFilter struct {
	Status models.JourneyStatus
	Range  DateRange
}

// Match reports whether j passes both predicates.
func (f JourneyFilter) Match(j models.Journey) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	return f.Range.Contains(j.TapInTime.Time)
}

// Journeys returns the matching journeys in input order. The input is never modified.
func Journeys(all []models.Journey, f JourneyFilter) []models.Journey {
	out := make([]models.Journey, 0, len(all))
	for _, j := range all {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

// JourneyStats summarises a set of journeys.
type JourneyStats struct {
	Total      int
	Completed  int
	InProgress int
	Cancelled  int
	TotalSpent float64
}

// SummarizeJourneys recomputes the stats from scratch.
func SummarizeJourneys(journeys []models.Journey) JourneyStats {
	var s JourneyStats
	for _, j := range journeys {
		s.Total++
		switch j.Status {
		case models.JourneyCompleted:
			s.Completed++
		case models.JourneyInProgress:
			s.InProgress++
		case models.JourneyCancelled:
			s.Cancelled++
		}
		s.TotalSpent += j.FareAmount()
	}
	return s
}

// ActiveJourney picks the in-progress journey with the latest tap-in time. On equal times the
// one earlier in the slice wins. Returns nil when none is in progress.
func ActiveJourney(journeys []models.Journey) *models.Journey {
	var active *models.Journey
	for i := range journeys {
		j := journeys[i]
		if j.Status != models.JourneyInProgress {
			continue
		}
		if active == nil || j.TapInTime.After(active.TapInTime.Time) {
			active = &j
		}
	}
	return active
}

// Recent returns at most n journeys from the head of the backend-ordered list.
func Recent(journeys []models.Journey, n int) []models.Journey {
	if n < 0 {
		n = 0
	}
	if len(journeys) < n {
		n = len(journeys)
	}
	return append([]models.Journey(nil), journeys[:n]...)
}

// SameMonth returns the journeys tapped in during the calendar month of now.
func SameMonth(journeys []models.Journey, now time.Time) []models.Journey {
	y, m, _ := now.Date()
	out := make([]models.Journey, 0, len(journeys))
	for _, j := range journeys {
		if j.TapInTime.IsZero() {
			continue
		}
		jy, jm, _ := j.TapInTime.In(now.Location()).Date()
		if jy == y && jm == m {
			out = append(out, j)
		}
	}
	return out
}
