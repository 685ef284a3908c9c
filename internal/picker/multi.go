package picker

import (
	"sort"
	"time"

	"datepick/internal/zone"
)

// Multi controls discrete multi-date selection. Toggling matches by zoned
// calendar day, not exact instant: the grid renders one cell per day, so two
// instants that collapse to the same zoned day are one toggle target.
type Multi struct {
	conv     *zone.Converter
	tz       string
	pattern  string
	selected []time.Time
	onChange func([]time.Time)
}

// NewMulti creates a multi-date controller. onChange receives the full
// selection after every toggle, nil when it became empty.
func NewMulti(conv *zone.Converter, tz, pattern string, onChange func([]time.Time)) *Multi {
	return &Multi{conv: conv, tz: tz, pattern: pattern, onChange: onChange}
}

// Set installs the host-supplied selection without emitting. Duplicate
// instants collapse; the host's slice is never retained or mutated.
func (m *Multi) Set(ts []time.Time) {
	m.selected = dedupe(ts)
}

// Selected returns a copy of the current selection, sorted ascending.
func (m *Multi) Selected() []time.Time {
	out := make([]time.Time, len(m.selected))
	copy(out, m.selected)
	return out
}

// Days returns the zoned calendar-day set to highlight.
func (m *Multi) Days() map[Day]bool {
	days := make(map[Day]bool, len(m.selected))
	for _, t := range m.selected {
		days[DayOf(m.conv.ToZoned(t, m.tz))] = true
	}
	return days
}

// ToggleDay handles a grid cell activation: an unselected day is added as
// its zoned-midnight instant; a selected day removes every instant falling
// on it.
func (m *Multi) ToggleDay(d Day) {
	kept := m.selected[:0:0]
	removed := false
	for _, t := range m.selected {
		if DayOf(m.conv.ToZoned(t, m.tz)) == d {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		kept = append(kept, m.conv.FromWall(d.Year, d.Month, d.Day, 0, 0, 0, 0, m.tz))
		sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
	}
	m.selected = kept
	m.emit()
}

// Clear drops the whole selection and notifies the host.
func (m *Multi) Clear() {
	m.selected = nil
	m.emit()
}

func (m *Multi) emit() {
	if m.onChange == nil {
		return
	}
	if len(m.selected) == 0 {
		m.onChange(nil)
		return
	}
	out := make([]time.Time, len(m.selected))
	copy(out, m.selected)
	m.onChange(out)
}

// dedupe copies ts in UTC with instant-equal duplicates collapsed, sorted
// ascending.
func dedupe(ts []time.Time) []time.Time {
	out := make([]time.Time, 0, len(ts))
	for _, t := range ts {
		u := t.UTC()
		dup := false
		for _, have := range out {
			if have.Equal(u) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	if len(out) == 0 {
		return nil
	}
	return out
}
