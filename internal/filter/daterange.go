package filter

import "time"

// DateRange is an inclusive calendar-day range. From is the start of its day, To the end of
// its day (23:59:59.999) in To's location. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 on t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Open reports whether the range has no bounds.
func (r DateRange) Open() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t falls within the range. A zero t only matches an open range.
func (r DateRange) Contains(t time.Time) bool {
	if r.Open() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !r.From.IsZero() && t.Before(StartOfDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && t.After(EndOfDay(r.To)) {
		return false
	}
	return true
}
