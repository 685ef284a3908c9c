package picker

import (
	"testing"
	"time"
)

func TestRangeTimeOfDayEditsAreIndependent(t *testing.T) {
	conv := newConverter(t)

	var gotStart, gotEnd *time.Time
	r := NewRange(conv, tzNewYork, "MM/dd/yyyy", func(s, e *time.Time) { gotStart, gotEnd = s, e })

	start := instant(t, "2024-06-15T12:00:00Z") // 08:00 EDT
	end := instant(t, "2024-06-20T14:00:00Z")   // 10:00 EDT
	r.Set(&start, &end)

	// Editing only the start time must leave the end instant untouched.
	r.SetStartTimeOfDay(9, 30)

	wantStart := instant(t, "2024-06-15T13:30:00Z") // 09:30 EDT
	if gotStart == nil || !gotStart.Equal(wantStart) {
		t.Errorf("start = %v, want %s", gotStart, wantStart.Format(time.RFC3339))
	}
	if gotEnd == nil || !gotEnd.Equal(end) {
		t.Errorf("end changed: %v, want %s", gotEnd, end.Format(time.RFC3339))
	}

	// And vice versa.
	r.SetEndTimeOfDay(16, 0)
	wantEnd := instant(t, "2024-06-20T20:00:00Z") // 16:00 EDT
	if gotStart == nil || !gotStart.Equal(wantStart) {
		t.Errorf("start changed: %v, want %s", gotStart, wantStart.Format(time.RFC3339))
	}
	if gotEnd == nil || !gotEnd.Equal(wantEnd) {
		t.Errorf("end = %v, want %s", gotEnd, wantEnd.Format(time.RFC3339))
	}
}

func TestRangeEmissionNeverReorders(t *testing.T) {
	conv := newConverter(t)

	var gotStart, gotEnd *time.Time
	r := NewRange(conv, tzNewYork, "MM/dd/yyyy", func(s, e *time.Time) { gotStart, gotEnd = s, e })

	start := instant(t, "2024-06-15T12:00:00Z")
	end := instant(t, "2024-06-15T14:00:00Z")
	r.Set(&start, &end)

	// Pushing the end's time-of-day before the start's makes start > end.
	// The pair is emitted as-is; ordering is the host's call.
	r.SetEndTimeOfDay(1, 0) // 01:00 EDT, well before 08:00 EDT

	if gotStart == nil || !gotStart.Equal(start) {
		t.Fatalf("start = %v, want %s", gotStart, start.Format(time.RFC3339))
	}
	if gotEnd == nil || !gotEnd.Before(*gotStart) {
		t.Fatalf("expected an inverted pair to be emitted unmodified, got start=%v end=%v", gotStart, gotEnd)
	}
}

func TestRangeSetNormalizesDisplayOrder(t *testing.T) {
	conv := newConverter(t)
	r := NewRange(conv, tzNewYork, "MM/dd/yyyy", nil)

	later := instant(t, "2024-06-20T14:00:00Z")
	earlier := instant(t, "2024-06-15T12:00:00Z")
	r.Set(&later, &earlier)

	s, e := r.Start(), r.End()
	if s == nil || e == nil || e.Before(*s) {
		t.Errorf("Set did not normalize an inverted pair: start=%v end=%v", s, e)
	}
}

func TestRangeActivateDaySequence(t *testing.T) {
	conv := newConverter(t)

	var gotStart, gotEnd *time.Time
	r := NewRange(conv, tzNewYork, "MM/dd/yyyy", func(s, e *time.Time) { gotStart, gotEnd = s, e })

	// First activation starts the range.
	r.ActivateDay(Day{2024, time.June, 15})
	if gotStart == nil || gotEnd != nil {
		t.Fatalf("after first activation: start=%v end=%v, want open end", gotStart, gotEnd)
	}

	// A later day completes it.
	r.ActivateDay(Day{2024, time.June, 20})
	if gotStart == nil || gotEnd == nil {
		t.Fatalf("after second activation: start=%v end=%v, want both set", gotStart, gotEnd)
	}
	if d, _ := r.EndDay(); d != (Day{2024, time.June, 20}) {
		t.Errorf("end day = %v, want 2024-06-20", d)
	}

	// An earlier day while the range is pending replaces the start.
	r.Set(r.Start(), nil)
	r.ActivateDay(Day{2024, time.June, 10})
	if d, _ := r.StartDay(); d != (Day{2024, time.June, 10}) {
		t.Errorf("start day = %v, want 2024-06-10", d)
	}
	if gotEnd != nil {
		t.Errorf("end = %v, want still open", gotEnd)
	}

	// Activating with a complete range starts over.
	r.ActivateDay(Day{2024, time.June, 12}) // completes 10..12
	r.ActivateDay(Day{2024, time.June, 25})
	if d, _ := r.StartDay(); d != (Day{2024, time.June, 25}) {
		t.Errorf("restart start day = %v, want 2024-06-25", d)
	}
	if gotEnd != nil {
		t.Errorf("restart kept end = %v, want nil", gotEnd)
	}
}

func TestRangeContains(t *testing.T) {
	conv := newConverter(t)
	r := NewRange(conv, tzNewYork, "MM/dd/yyyy", nil)

	start := instant(t, "2024-06-15T12:00:00Z")
	end := instant(t, "2024-06-20T14:00:00Z")
	r.Set(&start, &end)

	for day := 15; day <= 20; day++ {
		if !r.Contains(Day{2024, time.June, day}) {
			t.Errorf("day %d not highlighted, want inside range", day)
		}
	}
	if r.Contains(Day{2024, time.June, 14}) || r.Contains(Day{2024, time.June, 21}) {
		t.Error("days outside the range highlighted")
	}

	// Incomplete range highlights only the present endpoint.
	r.Set(&start, nil)
	if !r.Contains(Day{2024, time.June, 15}) || r.Contains(Day{2024, time.June, 16}) {
		t.Error("incomplete range highlight wrong")
	}
}
