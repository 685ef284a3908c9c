package picker

import (
	"time"

	"datepick/internal/zone"
)

// Range controls start/end range selection. The two endpoints convert and
// emit independently; either may be nil for an incomplete range.
//
// Emission never reorders the pair: a time-of-day edit can transiently put
// the start after the end, and the host decides whether to accept or reject
// that state. Only Set, the initial display normalization, orders the pair.
type Range struct {
	conv     *zone.Converter
	tz       string
	pattern  string
	start    *time.Time
	end      *time.Time
	onChange func(start, end *time.Time)
}

// NewRange creates a range controller. onChange receives the full pair on
// every committed change, in start/end position regardless of ordering.
func NewRange(conv *zone.Converter, tz, pattern string, onChange func(start, end *time.Time)) *Range {
	return &Range{conv: conv, tz: tz, pattern: pattern, onChange: onChange}
}

// Set installs the host-supplied endpoints without emitting. When both are
// present and inverted they are swapped for display.
func (r *Range) Set(start, end *time.Time) {
	start, end = normalize(start), normalize(end)
	if start != nil && end != nil && end.Before(*start) {
		start, end = end, start
	}
	r.start, r.end = start, end
}

// Start returns a copy of the start instant, nil when unset.
func (r *Range) Start() *time.Time { return cloneTime(r.start) }

// End returns a copy of the end instant, nil when unset.
func (r *Range) End() *time.Time { return cloneTime(r.end) }

// StartDay returns the zoned day of the start endpoint.
func (r *Range) StartDay() (Day, bool) { return r.dayOf(r.start) }

// EndDay returns the zoned day of the end endpoint.
func (r *Range) EndDay() (Day, bool) { return r.dayOf(r.end) }

func (r *Range) dayOf(t *time.Time) (Day, bool) {
	if t == nil {
		return Day{}, false
	}
	return DayOf(r.conv.ToZoned(*t, r.tz)), true
}

// Contains reports whether d lies inside the highlighted span, endpoints
// included. An incomplete range highlights only its present endpoint.
func (r *Range) Contains(d Day) bool {
	sd, sok := r.StartDay()
	ed, eok := r.EndDay()
	switch {
	case sok && eok:
		return !d.Before(sd) && !ed.Before(d)
	case sok:
		return d == sd
	case eok:
		return d == ed
	default:
		return false
	}
}

// ActivateDay handles a grid cell activation. An empty or complete range
// starts over with d as the new start; a day before the pending start
// replaces the start; anything else completes the range as the end. Each
// endpoint keeps its previous zoned time-of-day where one exists.
func (r *Range) ActivateDay(d Day) {
	sd, sok := r.StartDay()
	switch {
	case !sok || r.end != nil:
		inst := r.instantFor(d, r.start)
		r.start, r.end = &inst, nil
	case d.Before(sd):
		inst := r.instantFor(d, r.start)
		r.start = &inst
	default:
		inst := r.instantFor(d, r.end)
		r.end = &inst
	}
	r.emit()
}

// SetStartTimeOfDay moves the start endpoint to hour:min on its zoned day.
// No-op while the start is unset. The end instant is untouched.
func (r *Range) SetStartTimeOfDay(hour, min int) {
	if r.start == nil {
		return
	}
	d, _ := r.StartDay()
	inst := r.conv.FromWall(d.Year, d.Month, d.Day, hour, min, 0, 0, r.tz)
	r.start = &inst
	r.emit()
}

// SetEndTimeOfDay moves the end endpoint to hour:min on its zoned day.
// No-op while the end is unset. The start instant is untouched.
func (r *Range) SetEndTimeOfDay(hour, min int) {
	if r.end == nil {
		return
	}
	d, _ := r.EndDay()
	inst := r.conv.FromWall(d.Year, d.Month, d.Day, hour, min, 0, 0, r.tz)
	r.end = &inst
	r.emit()
}

// Clear drops both endpoints and notifies the host.
func (r *Range) Clear() {
	r.start, r.end = nil, nil
	r.emit()
}

// Text renders "start - end" for the text field using the display pattern.
func (r *Range) Text() string {
	s, e := "", ""
	if r.start != nil {
		s = r.conv.FormatInZone(*r.start, r.pattern, r.tz)
	}
	if r.end != nil {
		e = r.conv.FormatInZone(*r.end, r.pattern, r.tz)
	}
	if s == "" && e == "" {
		return ""
	}
	return s + " - " + e
}

// instantFor builds the instant for day d carrying prev's zoned time-of-day,
// midnight when prev is nil.
func (r *Range) instantFor(d Day, prev *time.Time) time.Time {
	var hh, mi, sec, ns int
	if prev != nil {
		zm := r.conv.ToZoned(*prev, r.tz)
		hh, mi, sec, ns = zm.Hour(), zm.Minute(), zm.Second(), zm.Nanosecond()
	}
	return r.conv.FromWall(d.Year, d.Month, d.Day, hh, mi, sec, ns, r.tz)
}

func (r *Range) emit() {
	if r.onChange != nil {
		r.onChange(cloneTime(r.start), cloneTime(r.end))
	}
}
