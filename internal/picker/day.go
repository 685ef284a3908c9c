// Package picker holds the selection controllers that sit between the
// calendar widget and its host. A controller converts host-supplied absolute
// instants into the zoned calendar days the grid highlights, and converts
// activated cells or typed text back into absolute instants for the host's
// change callback. Each selection mode (single, range, multiple) has its own
// controller type with a mode-specific callback signature.
//
// Once a timezone is configured, every display and highlight decision is
// made on the zoned calendar day; the UTC day is never consulted.
package picker

import (
	"fmt"
	"time"
)

// Day is a calendar day as displayed in the grid: the zoned civil date,
// carrying no time-of-day and no zone of its own.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf reads the wall-clock calendar day of t. Callers zone t first; for a
// zoned moment this is the zoned day.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d falls strictly earlier than o.
func (d Day) Before(o Day) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays steps the civil calendar by n days (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the civil weekday of d.
func (d Day) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
