package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date form used by drafts and forms.
	DateLayout = "2006-01-02"

	// TimestampLayout is the wire form of a Timestamp: UTC with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Timestamp embeds time.Time and speaks the API's ISO-8601 string form.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseDate converts a calendar date into a Timestamp at midnight UTC of that date.
func ParseDate(s string) (Timestamp, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}

	// time.Parse keeps the offset the value was sent with, which is what CalendarDate relies on.
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(DateLayout, s)
		if err != nil {
			return fmt.Errorf("unexpected timestamp format %q", s)
		}
	}

	*t = Timestamp{Time: parsed}
	return nil
}

// CalendarDate truncates the timestamp to its calendar date, in the offset it carries rather
// than the process-local zone.
func (t Timestamp) CalendarDate() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
