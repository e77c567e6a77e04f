// Package dates provides calendar-day keys and day-boundary helpers.
//
// A DayKey is the partition key for every day-keyed log in nestling. It
// is always derived from the local clock so that entries land on the
// calendar day the user experienced.
package dates

import (
	"fmt"
	"time"
)

// DayKey is a local calendar date in YYYY-MM-DD form.
type DayKey string

// Layout is the wire format of a DayKey.
const Layout = "2006-01-02"

// KeyFor returns the DayKey for the given moment in its own location.
func KeyFor(t time.Time) DayKey {
	return DayKey(t.Format(Layout))
}

// Today returns the DayKey for the current local calendar day.
func Today() DayKey {
	return KeyFor(time.Now())
}

// Valid reports whether k is a well-formed YYYY-MM-DD key.
func (k DayKey) Valid() bool {
	_, err := time.ParseInLocation(Layout, string(k), time.Local)
	return err == nil
}

// Time returns midnight local time of the day k names.
func (k DayKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(Layout, string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", string(k), err)
	}
	return t, nil
}

// Display formats the day for human output, e.g. "Fri, Mar 1".
func (k DayKey) Display() string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return t.Format("Mon, Jan 2")
}

// Clock formats a timestamp as HH:MM:SS for daily log listings.
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}

// ClockShort formats a timestamp as HH:MM.
func ClockShort(t time.Time) string {
	return t.Format("15:04")
}
