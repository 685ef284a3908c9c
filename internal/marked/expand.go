package marked

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "datepick/internal/log"
	"datepick/internal/picker"
)

const defaultMaxOccurrencesPerEvent = 5000

// Mark is one annotation on a calendar day.
type Mark struct {
	FeedID  string
	Summary string
}

// DaySet maps zoned calendar days to their marks.
type DaySet map[picker.Day][]Mark

// Window is the inclusive instant range a grid can display; expansion stops
// at its edges so unbounded recurrences stay finite.
type Window struct {
	Start time.Time
	End   time.Time
}

// ExpandDays projects events onto the calendar days they touch when read in
// loc, expanding RRULE recurrences and honoring EXDATE and RECURRENCE-ID
// overrides. An override replaces the base occurrence it names, so a moved
// occurrence marks its new day only. Events outside the window contribute
// nothing. A per-event occurrence cap guards against runaway rules; hitting
// it logs and truncates.
func ExpandDays(events []Event, win Window, loc *time.Location) (DaySet, error) {
	if win.End.Before(win.Start) {
		return nil, errors.New("marked: window end before start")
	}
	if loc == nil {
		loc = time.Local
	}

	// Group overrides by UID; they apply to their base event's occurrences
	// and are never expanded on their own.
	overridesByUID := make(map[string][]Event)
	base := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
			continue
		}
		base = append(base, ev)
	}

	days := make(DaySet)
	for _, ev := range base {
		overrides := overridesByUID[ev.UID]
		if ev.RawRRule == "" {
			if o, ok := overrideFor(overrides, ev.Start); ok {
				markSpan(days, o, o.Start, o.End, win, loc)
				continue
			}
			markSpan(days, ev, ev.Start, ev.End, win, loc)
			continue
		}
		expandRecurring(days, ev, overrides, win, loc)
	}
	return days, nil
}

func expandRecurring(days DaySet, ev Event, overrides []Event, win Window, loc *time.Location) {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Warn("marked: unparsable RRULE, event skipped", "uid", ev.UID, "rrule", ev.RawRRule, "err", err)
		return
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		// Align EXDATE location with the event's start for comparison.
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between() compares in the event's own location.
	rangeStart := win.Start.In(ev.Start.Location())
	rangeEnd := win.End.In(ev.Start.Location())
	occTimes := set.Between(rangeStart, rangeEnd, true)

	if len(occTimes) > defaultMaxOccurrencesPerEvent {
		occTimes = occTimes[:defaultMaxOccurrencesPerEvent]
		appLog.Warn("marked: occurrence cap hit, truncating", "uid", ev.UID, "cap", defaultMaxOccurrencesPerEvent)
	}

	dur := ev.End.Sub(ev.Start)
	for _, occStart := range occTimes {
		occEnd := occStart.Add(dur)
		if ev.AllDay {
			// All-day occupies [date 00:00, next day 00:00) in the event's zone.
			date := time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, occStart.Location())
			occStart = date
			occEnd = date.Add(24 * time.Hour)
		}
		if o, ok := overrideFor(overrides, occStart); ok {
			markSpan(days, o, o.Start, o.End, win, loc)
			continue
		}
		markSpan(days, ev, occStart, occEnd, win, loc)
	}
}

// overrideFor finds the override whose RECURRENCE-ID names this occurrence
// start, compared as instants.
func overrideFor(overrides []Event, occStart time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.RecurrenceID != nil && o.RecurrenceID.Equal(occStart) {
			return o, true
		}
	}
	return Event{}, false
}

// markSpan adds ev's mark to every zoned day the [start, end) span touches.
// A zero or inverted end marks only the start day.
func markSpan(days DaySet, ev Event, start, end time.Time, win Window, loc *time.Location) {
	if start.IsZero() {
		return
	}
	if end.After(win.End) {
		end = win.End
	}
	if start.Before(win.Start) {
		start = win.Start
	}
	if win.End.Before(start) || (!end.IsZero() && end.Before(win.Start)) {
		return
	}

	first := picker.DayOf(start.In(loc))
	last := first
	if end.After(start) {
		// End is exclusive: an event ending at midnight does not mark the
		// following day.
		last = picker.DayOf(end.Add(-time.Nanosecond).In(loc))
	}

	mark := Mark{FeedID: ev.Feed.ID, Summary: ev.Summary}
	for d := first; !last.Before(d); d = d.AddDays(1) {
		days[d] = append(days[d], mark)
	}
}
