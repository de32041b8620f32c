package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Wire and display layouts for dates.
const (
	// WireLayout matches the server's LocalDateTime representation.
	WireLayout = "2006-01-02T15:04:05"

	// DayLayout is the calendar-date layout used for input and display.
	DayLayout = "2006-01-02"
)

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	WireLayout,
	"2006-01-02T15:04",
	DayLayout,
}

// Date is an optional point in time. The zero value is the absent date.
type Date struct {
	Time  time.Time
	Valid bool
}

// DateOf returns a present date.
func DateOf(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// ParseDate parses a date in any accepted layout.
// An empty string yields the absent date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", s)
}

// Day returns the date as YYYY-MM-DD, or "" when absent.
func (d Date) Day() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DayLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(WireLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %s", data)
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
