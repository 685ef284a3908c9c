package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"datepick/internal/config"
	"datepick/internal/marked"
	"datepick/internal/picker"
	"datepick/internal/zone"
)

func fixedModel(t *testing.T, mode string) Model {
	t.Helper()
	zone.ResetAvailabilityForTest()

	cfg := config.DefaultConfig()
	cfg.Mode = mode
	cfg.Timezone = "America/New_York"
	cfg.Normalize()

	conv := zone.NewConverter(nil)
	conv.SetClock(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})

	var ctrl Controllers
	switch mode {
	case config.ModeRange:
		ctrl.Range = picker.NewRange(conv, cfg.Timezone, cfg.DateFormat, nil)
	case config.ModeMultiple:
		ctrl.Multi = picker.NewMulti(conv, cfg.Timezone, cfg.DateFormat, nil)
	default:
		ctrl.Single = picker.NewSingle(conv, cfg.Timezone, cfg.DateFormat, nil)
	}
	return NewModel(cfg, conv, ctrl, marked.DaySet{})
}

func press(m Model, key string) Model {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelOpensOnTodayInZone(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)
	if m.cursor != (picker.Day{Year: 2024, Month: time.June, Day: 15}) {
		t.Errorf("cursor = %v, want today in zone", m.cursor)
	}
	if m.viewYear != 2024 || m.viewMonth != time.June {
		t.Errorf("view = %d %s, want June 2024", m.viewYear, m.viewMonth)
	}
}

func TestCursorMovementPagesMonth(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)
	for i := 0; i < 16; i++ {
		m = press(m, "l")
	}
	if m.cursor != (picker.Day{Year: 2024, Month: time.July, Day: 1}) {
		t.Errorf("cursor = %v, want 2024-07-01", m.cursor)
	}
	if m.viewMonth != time.July {
		t.Errorf("view month = %s, want July (follows cursor)", m.viewMonth)
	}
}

func TestMonthStepClampsDay(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)
	m.cursor = picker.Day{Year: 2024, Month: time.January, Day: 31}
	m.viewYear, m.viewMonth = 2024, time.January

	m = press(m, "]")
	if m.cursor != (picker.Day{Year: 2024, Month: time.February, Day: 29}) {
		t.Errorf("cursor = %v, want clamped to 2024-02-29", m.cursor)
	}
}

func TestEnterSelectsCursorDay(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)
	m = press(m, "enter")

	sel := m.ctrl.Single.Selected()
	if sel == nil {
		t.Fatal("enter did not select")
	}
	// Midnight EDT on the cursor day.
	want := time.Date(2024, time.June, 15, 4, 0, 0, 0, time.UTC)
	if !sel.Equal(want) {
		t.Errorf("selected %s, want %s", sel.Format(time.RFC3339), want.Format(time.RFC3339))
	}
	if got := m.input.Value(); got != "06/15/2024" {
		t.Errorf("text field = %q, want 06/15/2024", got)
	}
}

func TestRangeViewHighlightsSpan(t *testing.T) {
	m := fixedModel(t, config.ModeRange)
	m.ctrl.Range.ActivateDay(picker.Day{Year: 2024, Month: time.June, Day: 10})
	m.ctrl.Range.ActivateDay(picker.Day{Year: 2024, Month: time.June, Day: 12})

	if !m.inRange(picker.Day{Year: 2024, Month: time.June, Day: 11}) {
		t.Error("day between endpoints not in range")
	}
	if !m.isSelected(picker.Day{Year: 2024, Month: time.June, Day: 10}) {
		t.Error("start endpoint not selected")
	}
}

func TestViewRendersHeaderAndZone(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)
	view := m.View()
	if !strings.Contains(view, "June 2024") {
		t.Errorf("view missing month header:\n%s", view)
	}
	if !strings.Contains(view, "America/New_York") {
		t.Errorf("view missing zone label:\n%s", view)
	}
}

func TestTypingCommitAndCancel(t *testing.T) {
	m := fixedModel(t, config.ModeSingle)

	m = press(m, "/")
	if !m.typing {
		t.Fatal("slash did not focus the text field")
	}
	m.input.SetValue("06/20/2024")
	m = press(m, "enter")

	if m.typing {
		t.Error("commit left the field focused")
	}
	if sel := m.ctrl.Single.Selected(); sel == nil || !sel.Equal(time.Date(2024, time.June, 20, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("typed date selected %v", sel)
	}

	// Malformed input keeps state and reports the error.
	m = press(m, "/")
	m.input.SetValue("garbage")
	m = press(m, "enter")
	if m.inputErr == nil {
		t.Error("malformed input produced no error")
	}
	if sel := m.ctrl.Single.Selected(); sel == nil || !sel.Equal(time.Date(2024, time.June, 20, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("malformed input changed selection: %v", sel)
	}

	// Esc cancels without committing.
	m = press(m, "/")
	m.input.SetValue("01/01/2030")
	m = press(m, "esc")
	if sel := m.ctrl.Single.Selected(); !sel.Equal(time.Date(2024, time.June, 20, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("esc committed the typed value: %v", sel)
	}
}
