package utils

import (
	"errors"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// ISOLayout matches the millisecond UTC form emitted for generated appointments.
	ISOLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrInvalidISO = errors.New("not an ISO-8601 date or timestamp")

// ParseISO accepts a calendar date (YYYY-MM-DD), a local timestamp without
// offset, or a full RFC 3339 timestamp. Values without an offset are placed in loc.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{DateLayout, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidISO
}

// StartOfWeek returns midnight of the Monday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekKey is the YYYY-MM-DD date of the Monday starting t's week.
func WeekKey(t time.Time) string {
	return StartOfWeek(t).Format(DateLayout)
}

// FormatISO renders t in UTC with millisecond precision, e.g. 2024-01-01T09:00:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
