package picker

import (
	"strings"
	"time"

	"datepick/internal/zone"
)

// Single controls single-date selection. The host owns the selected instant;
// the controller keeps a private copy and hands out fresh copies, so no
// value is ever mutated in place.
type Single struct {
	conv     *zone.Converter
	tz       string
	pattern  string
	selected *time.Time
	onChange func(*time.Time)
}

// NewSingle creates a single-date controller. onChange receives the new
// selection (nil for cleared) whenever the user commits a change; it may be
// nil for display-only use.
func NewSingle(conv *zone.Converter, tz, pattern string, onChange func(*time.Time)) *Single {
	return &Single{conv: conv, tz: tz, pattern: pattern, onChange: onChange}
}

// Set installs the host-supplied selection without emitting a change.
func (s *Single) Set(t *time.Time) {
	s.selected = normalize(t)
}

// Selected returns a copy of the current selection, nil when empty.
func (s *Single) Selected() *time.Time {
	return cloneTime(s.selected)
}

// SelectedDay returns the zoned calendar day to highlight.
func (s *Single) SelectedDay() (Day, bool) {
	if s.selected == nil {
		return Day{}, false
	}
	return DayOf(s.conv.ToZoned(*s.selected, s.tz)), true
}

// ActivateDay handles a grid cell activation: the instant for day d with the
// current selection's zoned time-of-day (midnight when nothing is selected)
// is emitted to the host.
func (s *Single) ActivateDay(d Day) {
	var hh, mi, sec, ns int
	if s.selected != nil {
		zm := s.conv.ToZoned(*s.selected, s.tz)
		hh, mi, sec, ns = zm.Hour(), zm.Minute(), zm.Second(), zm.Nanosecond()
	}
	inst := s.conv.FromWall(d.Year, d.Month, d.Day, hh, mi, sec, ns, s.tz)
	s.emit(&inst)
}

// SetTimeOfDay handles the time sub-control: the zoned wall clock moves to
// hour:min on the selected day, or on today in the zone when nothing is
// selected yet.
func (s *Single) SetTimeOfDay(hour, min int) {
	var d Day
	if day, ok := s.SelectedDay(); ok {
		d = day
	} else {
		d = DayOf(s.conv.NowInZone(s.tz))
	}
	inst := s.conv.FromWall(d.Year, d.Month, d.Day, hour, min, 0, 0, s.tz)
	s.emit(&inst)
}

// SetText commits typed input. The text parses as zoned wall-clock with the
// display pattern; on failure the selection is left untouched and the error
// is returned for the widget to surface. Blank input clears the selection.
func (s *Single) SetText(input string) error {
	if strings.TrimSpace(input) == "" {
		s.emit(nil)
		return nil
	}
	inst, err := s.conv.ParseInZone(input, s.pattern, s.tz)
	if err != nil {
		return err
	}
	s.emit(&inst)
	return nil
}

// Text renders the current selection for the text field, "" when empty.
func (s *Single) Text() string {
	if s.selected == nil {
		return ""
	}
	return s.conv.FormatInZone(*s.selected, s.pattern, s.tz)
}

// Clear drops the selection and notifies the host.
func (s *Single) Clear() {
	s.emit(nil)
}

func (s *Single) emit(t *time.Time) {
	s.selected = normalize(t)
	if s.onChange != nil {
		s.onChange(cloneTime(s.selected))
	}
}

// normalize copies a host instant into canonical UTC form.
func normalize(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
