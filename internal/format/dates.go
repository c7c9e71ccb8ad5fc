package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Placeholder stands in for missing values.
const Placeholder = "-"

const (
	dateTimeLayout = "Jan 2, 2006, 03:04 PM"
	dateLayout     = "Jan 2, 2006"
)

// DateTime renders t like "May 3, 2024, 08:15 AM" in t's location.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(dateTimeLayout)
}

// Date renders t like "May 3, 2024".
func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(dateLayout)
}

// Relative renders t relative to now, e.g. "3 hours ago".
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Duration renders the time between tap-in and tap-out as "42 min" or "1h 5m".
func Duration(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return Placeholder
	}
	mins := int(math.Floor(end.Sub(start).Minutes()))
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
