package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Timestamp is a backend date-time. The backend emits zone-less local date-times, so values
// without an offset are interpreted in time.Local. JSON null decodes to the zero value.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON accepts any date-time layout dateparse understands.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := dateparse.ParseIn(raw, time.Local)
	if err != nil {
		return fmt.Errorf("timestamp: parse %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes RFC 3339 or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
