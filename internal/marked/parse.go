package marked

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "datepick/internal/log"
)

// Event is the normalized form of a VEVENT as far as day marking needs it:
// when it happens and what to call it. Recurrences stay unexpanded here;
// ExpandDays handles them.
type Event struct {
	Feed Feed

	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time

	// RecurrenceID marks this event as an override of one occurrence of the
	// recurring event with the same UID: the named occurrence is replaced by
	// this event's own span. Nil for base events.
	RecurrenceID *time.Time
}

// ParseFeed parses one ICS payload into events. The underlying library's
// VTIMEZONE/TZID handling produces time.Time values with proper locations;
// a VEVENT that fails to parse is skipped, not fatal.
func ParseFeed(fd Feed, body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("feed parse failed", err, "id", fd.ID, "url", redactURL(fd.URL))
		return nil, err
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(fd, ve)
		if perr != nil {
			appLog.Warn("feed vevent skipped", "id", fd.ID, "err", perr)
			continue
		}
		events = append(events, ev)
	}

	appLog.Debug("feed parsed", "id", fd.ID, "event_count", len(events))
	return events, nil
}

func parseVEvent(fd Feed, ve *ical.VEvent) (Event, error) {
	var out Event
	out.Feed = fd

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	// DTSTART / DTEND through the library's timezone-aware helpers.
	start, _ := ve.GetStartAt()
	end, _ := ve.GetEndAt()
	out.Start = start
	out.End = end

	// All-day when DTSTART carries VALUE=DATE or a date-only value.
	if dtStartProp := ve.GetProperty(ical.ComponentPropertyDtStart); dtStartProp != nil {
		if params := dtStartProp.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(dtStartProp.Value, "T") {
			out.AllDay = true
		}
	}

	// RRULE stays raw; ExpandDays parses it.
	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	// RECURRENCE-ID (overridden instance). Raw property name; the constant
	// has varied across library versions.
	if ridProp := ve.GetProperty("RECURRENCE-ID"); ridProp != nil {
		if t, err := parseICSTime(ridProp.Value); err == nil {
			out.RecurrenceID = &t
		}
	}

	// EXDATE (can appear multiple times, comma-separated).
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// parseICSTime parses the basic ICS DATE / DATE-TIME / UTC forms used by
// EXDATE values.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	// UTC form, e.g., 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		const layout = "20060102T150405Z"
		return time.Parse(layout, v)
	}

	// Floating date-time, e.g., 20250101T090000
	if strings.Contains(v, "T") {
		const layout = "20060102T150405"
		return time.ParseInLocation(layout, v, time.Local)
	}

	// Date-only (all-day), e.g., 20250101
	const layoutDate = "20060102"
	return time.ParseInLocation(layoutDate, v, time.Local)
}
