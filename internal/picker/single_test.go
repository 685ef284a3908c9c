package picker

import (
	"testing"
	"time"

	"datepick/internal/zone"
)

const (
	tzNewYork    = "America/New_York"
	tzKiritimati = "Pacific/Kiritimati"
)

func newConverter(t *testing.T) *zone.Converter {
	t.Helper()
	zone.ResetAvailabilityForTest()
	return zone.NewConverter(nil)
}

func instant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts.UTC()
}

func TestSingleActivatePreservesTimeOfDay(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	s := NewSingle(conv, tzNewYork, "MM/dd/yyyy", func(t *time.Time) { emitted = t })

	// 16:30 UTC is 12:30 EDT.
	sel := instant(t, "2024-06-15T16:30:00Z")
	s.Set(&sel)

	s.ActivateDay(Day{2024, time.June, 20})

	want := instant(t, "2024-06-20T16:30:00Z") // still 12:30 EDT
	if emitted == nil || !emitted.Equal(want) {
		t.Fatalf("emitted %v, want %s", emitted, want.Format(time.RFC3339))
	}
	if d, ok := s.SelectedDay(); !ok || d != (Day{2024, time.June, 20}) {
		t.Errorf("highlighted day = %v, want 2024-06-20", d)
	}
}

func TestSingleActivateEmptyDefaultsToMidnight(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	s := NewSingle(conv, tzNewYork, "MM/dd/yyyy", func(t *time.Time) { emitted = t })

	s.ActivateDay(Day{2024, time.June, 20})

	// Midnight EDT is 04:00 UTC.
	want := instant(t, "2024-06-20T04:00:00Z")
	if emitted == nil || !emitted.Equal(want) {
		t.Fatalf("emitted %v, want %s", emitted, want.Format(time.RFC3339))
	}
}

func TestSingleExtremeOffsetRoundTrip(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	s := NewSingle(conv, tzKiritimati, "yyyy-MM-dd", func(t *time.Time) { emitted = t })

	// 2025-12-25T10:00Z reads as December 26th in UTC+14; the zoned day
	// drives both the highlight and the re-emitted instant.
	sel := instant(t, "2025-12-25T10:00:00Z")
	s.Set(&sel)

	d, ok := s.SelectedDay()
	if !ok || d != (Day{2025, time.December, 26}) {
		t.Fatalf("highlighted day = %v, want 2025-12-26", d)
	}

	s.ActivateDay(d)
	if emitted == nil || !emitted.Equal(sel) {
		t.Fatalf("re-selecting the zoned day emitted %v, want %s", emitted, sel.Format(time.RFC3339))
	}
}

func TestSingleSetText(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	calls := 0
	s := NewSingle(conv, tzNewYork, "MM/dd/yyyy", func(t *time.Time) { emitted = t; calls++ })

	if err := s.SetText("06/15/2024"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	want := instant(t, "2024-06-15T04:00:00Z")
	if emitted == nil || !emitted.Equal(want) {
		t.Fatalf("emitted %v, want %s", emitted, want.Format(time.RFC3339))
	}
	if s.Text() != "06/15/2024" {
		t.Errorf("Text() = %q, want the typed value back", s.Text())
	}

	// Malformed input: error returned, selection and emission unchanged.
	if err := s.SetText("junk"); err == nil {
		t.Fatal("SetText accepted malformed input")
	}
	if calls != 1 {
		t.Errorf("onChange fired %d times, want 1 (no emission for bad input)", calls)
	}
	if got := s.Selected(); got == nil || !got.Equal(want) {
		t.Errorf("selection changed after bad input: %v", got)
	}

	// Blank input clears.
	if err := s.SetText("  "); err != nil {
		t.Fatalf("blank SetText: %v", err)
	}
	if emitted != nil {
		t.Errorf("blank input emitted %v, want nil", emitted)
	}
}

func TestSingleValuesAreCopies(t *testing.T) {
	conv := newConverter(t)
	s := NewSingle(conv, tzNewYork, "MM/dd/yyyy", nil)

	sel := instant(t, "2024-06-15T16:30:00Z")
	s.Set(&sel)

	// Mutating the host's value must not affect the controller.
	sel = sel.AddDate(0, 0, 7)
	got := s.Selected()
	if got == nil || !got.Equal(instant(t, "2024-06-15T16:30:00Z")) {
		t.Errorf("controller state aliased the host value: %v", got)
	}

	// Mutating a returned value must not affect the controller either.
	*got = got.AddDate(0, 0, 7)
	if again := s.Selected(); !again.Equal(instant(t, "2024-06-15T16:30:00Z")) {
		t.Errorf("returned value aliased controller state: %v", again)
	}
}

func TestSingleNoZoneClickRoundTrip(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	s := NewSingle(conv, "", "MM/dd/yyyy", func(t *time.Time) { emitted = t })

	// 05:00 UTC on Dec 25 falls on Dec 24 or 26 in far-offset local zones.
	// With no zone configured the highlight reads the UTC day, and
	// activating that highlighted day must re-emit the same instant no
	// matter where the host runs.
	sel := instant(t, "2025-12-25T05:00:00Z")
	s.Set(&sel)

	d, ok := s.SelectedDay()
	if !ok || d != (Day{2025, time.December, 25}) {
		t.Fatalf("highlighted day = %v, want 2025-12-25", d)
	}

	s.ActivateDay(d)
	if emitted == nil || !emitted.Equal(sel) {
		t.Fatalf("activating the highlighted day emitted %v, want %s", emitted, sel.Format(time.RFC3339))
	}
	if got, _ := s.SelectedDay(); got != d {
		t.Errorf("highlight moved to %v after activation, want %v", got, d)
	}

	// Typed input and the displayed text share the frame too.
	if err := s.SetText("12/25/2025"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if got, _ := s.SelectedDay(); got != d {
		t.Errorf("typed day = %v, want %v", got, d)
	}
	if s.Text() != "12/25/2025" {
		t.Errorf("Text() = %q, want the typed value back", s.Text())
	}
}

func TestSingleNoZone(t *testing.T) {
	conv := newConverter(t)

	var emitted *time.Time
	s := NewSingle(conv, "", "yyyy-MM-dd", func(t *time.Time) { emitted = t })

	sel := instant(t, "2024-06-15T16:30:00Z")
	s.Set(&sel)
	if d, ok := s.SelectedDay(); !ok || d != (Day{2024, time.June, 15}) {
		t.Errorf("unzoned highlighted day = %v, want 2024-06-15", d)
	}

	s.Clear()
	if emitted != nil {
		t.Errorf("Clear emitted %v, want nil", emitted)
	}
}
