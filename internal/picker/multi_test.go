package picker

import (
	"testing"
	"time"
)

func daySetOf(m *Multi) map[Day]bool {
	return m.Days()
}

func sameDaySet(a, b map[Day]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if !b[d] {
			return false
		}
	}
	return true
}

func TestMultiToggleAddsAndRemovesByZonedDay(t *testing.T) {
	conv := newConverter(t)

	var emitted []time.Time
	m := NewMulti(conv, tzNewYork, "MM/dd/yyyy", func(ts []time.Time) { emitted = ts })

	// 23:30 UTC on the 15th is 19:30 EDT, still the 15th in New York.
	m.Set([]time.Time{instant(t, "2024-06-15T23:30:00Z")})

	// Toggling an unselected day adds its zoned midnight.
	m.ToggleDay(Day{2024, time.June, 20})
	if len(emitted) != 2 {
		t.Fatalf("after add: %d instants, want 2", len(emitted))
	}
	if want := instant(t, "2024-06-20T04:00:00Z"); !emitted[1].Equal(want) {
		t.Errorf("added instant = %s, want %s (zoned midnight)", emitted[1].Format(time.RFC3339), want.Format(time.RFC3339))
	}

	// Toggling a selected day removes every instant on it, matching by
	// zoned day rather than exact instant.
	m.ToggleDay(Day{2024, time.June, 15})
	if len(emitted) != 1 {
		t.Fatalf("after remove: %d instants, want 1", len(emitted))
	}
	if d := DayOf(conv.ToZoned(emitted[0], tzNewYork)); d != (Day{2024, time.June, 20}) {
		t.Errorf("remaining day = %v, want 2024-06-20", d)
	}
}

func TestMultiToggleIdempotence(t *testing.T) {
	conv := newConverter(t)
	m := NewMulti(conv, tzNewYork, "MM/dd/yyyy", nil)

	m.Set([]time.Time{
		instant(t, "2024-06-10T16:00:00Z"),
		instant(t, "2024-06-15T23:30:00Z"),
	})
	before := daySetOf(m)

	// Select then deselect the same zoned day: the day set is restored
	// even though round-tripping normalizes sub-day components.
	m.ToggleDay(Day{2024, time.June, 20})
	m.ToggleDay(Day{2024, time.June, 20})

	if !sameDaySet(before, daySetOf(m)) {
		t.Errorf("day set not restored: before=%v after=%v", before, daySetOf(m))
	}
}

func TestMultiSameZonedDayIsOneToggleTarget(t *testing.T) {
	conv := newConverter(t)

	var emitted []time.Time
	fired := false
	m := NewMulti(conv, tzNewYork, "MM/dd/yyyy", func(ts []time.Time) { emitted = ts; fired = true })

	// Two instants on the same New York day (08:00 and 19:30 EDT).
	m.Set([]time.Time{
		instant(t, "2024-06-15T12:00:00Z"),
		instant(t, "2024-06-15T23:30:00Z"),
	})

	m.ToggleDay(Day{2024, time.June, 15})
	if !fired {
		t.Fatal("onChange did not fire")
	}
	if emitted != nil {
		t.Errorf("toggling the shared day left %d instants, want none", len(emitted))
	}
}

func TestMultiSetCollapsesDuplicatesAndCopies(t *testing.T) {
	conv := newConverter(t)
	m := NewMulti(conv, tzNewYork, "MM/dd/yyyy", nil)

	a := instant(t, "2024-06-15T12:00:00Z")
	host := []time.Time{a, a, instant(t, "2024-06-20T12:00:00Z")}
	m.Set(host)

	sel := m.Selected()
	if len(sel) != 2 {
		t.Fatalf("Selected() = %d instants, want duplicates collapsed to 2", len(sel))
	}

	// The host's slice is not retained.
	host[0] = instant(t, "2030-01-01T00:00:00Z")
	if !m.Selected()[0].Equal(a) {
		t.Error("controller aliased the host's slice")
	}
}

func TestMultiNoZoneToggleHitsDisplayedDay(t *testing.T) {
	conv := newConverter(t)
	m := NewMulti(conv, "", "MM/dd/yyyy", nil)

	// With no zone the grid shows UTC days; toggling one must add an
	// instant that the highlight maps back to the same day on any host.
	m.ToggleDay(Day{2025, time.December, 25})

	if !m.Days()[Day{2025, time.December, 25}] {
		t.Fatalf("toggled day not highlighted: %v", m.Days())
	}
	if want := instant(t, "2025-12-25T00:00:00Z"); !m.Selected()[0].Equal(want) {
		t.Errorf("added instant = %s, want %s", m.Selected()[0].Format(time.RFC3339), want.Format(time.RFC3339))
	}

	m.ToggleDay(Day{2025, time.December, 25})
	if len(m.Selected()) != 0 {
		t.Errorf("toggle-off left %d instants", len(m.Selected()))
	}
}

func TestMultiEmptyEmitsNil(t *testing.T) {
	conv := newConverter(t)

	sentinel := []time.Time{instant(t, "2024-06-15T12:00:00Z")}
	emitted := sentinel
	m := NewMulti(conv, tzNewYork, "MM/dd/yyyy", func(ts []time.Time) { emitted = ts })

	m.Clear()
	if emitted != nil {
		t.Errorf("empty selection emitted %v, want nil", emitted)
	}
}
