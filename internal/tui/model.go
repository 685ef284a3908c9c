// Package tui renders the calendar widget in the terminal: a month grid with
// cursor navigation, a pattern-driven text field, and mode-aware selection.
// All date logic lives in the picker controllers; the view only asks them
// which zoned days to highlight.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datepick/internal/config"
	"datepick/internal/marked"
	"datepick/internal/picker"
	"datepick/internal/zone"
)

// MarksMsg delivers a freshly built marked-day set to a running widget.
type MarksMsg struct {
	Days marked.DaySet
}

// Controllers carries the mode controllers the host wired its callbacks
// into. Exactly one is non-nil, matching the configured mode.
type Controllers struct {
	Single *picker.Single
	Range  *picker.Range
	Multi  *picker.Multi
}

// Model is the widget's bubbletea model.
type Model struct {
	cfg  *config.Config
	conv *zone.Converter
	ctrl Controllers

	viewYear  int
	viewMonth time.Month
	cursor    picker.Day
	weekStart time.Weekday

	input    textinput.Model
	typing   bool
	inputErr error

	marks marked.DaySet

	width  int
	height int
}

// NewModel creates the widget model. The displayed month opens on today in
// the configured zone, or on the current selection when one exists.
func NewModel(cfg *config.Config, conv *zone.Converter, ctrl Controllers, marks marked.DaySet) Model {
	ti := textinput.New()
	ti.Placeholder = cfg.DateFormat
	ti.CharLimit = 64
	ti.Width = 32

	m := Model{
		cfg:       cfg,
		conv:      conv,
		ctrl:      ctrl,
		weekStart: picker.ParseWeekStart(cfg.WeekStart),
		input:     ti,
		marks:     marks,
	}

	start := picker.DayOf(conv.NowInZone(cfg.Timezone))
	if d, ok := m.primaryDay(); ok {
		start = d
	}
	m.cursor = start
	m.viewYear, m.viewMonth = start.Year, start.Month
	m.syncInput()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MarksMsg:
		m.marks = msg.Days
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

// updateTyping handles keys while the text field is focused.
func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.inputErr = m.commitText(m.input.Value())
		if m.inputErr == nil {
			m.typing = false
			m.input.Blur()
			m.followSelection()
		} else {
			// Malformed input: state unchanged, field shows the last
			// valid value again.
			m.syncInput()
		}
		return m, nil
	case "esc":
		m.typing = false
		m.inputErr = nil
		m.input.Blur()
		m.syncInput()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateGrid handles keys while the grid is focused.
func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)

	case "[":
		m.stepMonth(-1)
	case "]":
		m.stepMonth(1)
	case "{":
		m.stepMonth(-12)
	case "}":
		m.stepMonth(12)

	case "t":
		today := picker.DayOf(m.conv.NowInZone(m.cfg.Timezone))
		m.cursor = today
		m.viewYear, m.viewMonth = today.Year, today.Month

	case "enter", " ":
		m.activate(m.cursor)
		m.syncInput()

	case "c":
		m.clear()
		m.syncInput()

	case "i", "/":
		m.typing = true
		m.inputErr = nil
		m.input.Focus()
		return m, textinput.Blink

	case "+", "-", ",", ".":
		if m.cfg.ShowTime {
			m.adjustTime(msg.String())
			m.syncInput()
		}
	}
	return m, nil
}

// moveCursor steps the cursor by days, paging the displayed month along with
// it.
func (m *Model) moveCursor(days int) {
	m.cursor = m.cursor.AddDays(days)
	m.viewYear, m.viewMonth = m.cursor.Year, m.cursor.Month
}

// stepMonth pages the displayed month, clamping the cursor's day-of-month
// into the new month.
func (m *Model) stepMonth(delta int) {
	y, mo := picker.StepMonth(m.viewYear, m.viewMonth, delta)
	m.viewYear, m.viewMonth = y, mo
	last := picker.DayOf(time.Date(y, mo+1, 0, 0, 0, 0, 0, time.UTC))
	day := m.cursor.Day
	if day > last.Day {
		day = last.Day
	}
	m.cursor = picker.Day{Year: y, Month: mo, Day: day}
}

func (m *Model) activate(d picker.Day) {
	switch {
	case m.ctrl.Single != nil:
		m.ctrl.Single.ActivateDay(d)
	case m.ctrl.Range != nil:
		m.ctrl.Range.ActivateDay(d)
	case m.ctrl.Multi != nil:
		m.ctrl.Multi.ToggleDay(d)
	}
}

func (m *Model) clear() {
	switch {
	case m.ctrl.Single != nil:
		m.ctrl.Single.Clear()
	case m.ctrl.Range != nil:
		m.ctrl.Range.Clear()
	case m.ctrl.Multi != nil:
		m.ctrl.Multi.Clear()
	}
}

func (m *Model) commitText(input string) error {
	if m.ctrl.Single != nil {
		return m.ctrl.Single.SetText(input)
	}
	// Range and multiple keep their text fields display-only; typed edits
	// apply in single mode.
	return nil
}

// adjustTime nudges a zoned time-of-day by 30 minutes. In range mode +/-
// edits the start endpoint and ,/. edits the end endpoint; the other
// endpoint's instant is untouched.
func (m *Model) adjustTime(key string) {
	delta := 30
	if key == "-" || key == "," {
		delta = -30
	}
	switch {
	case m.ctrl.Single != nil:
		if sel := m.ctrl.Single.Selected(); sel != nil {
			zm := m.conv.ToZoned(*sel, m.cfg.Timezone)
			h, mi := shiftClock(zm.Hour(), zm.Minute(), delta)
			m.ctrl.Single.SetTimeOfDay(h, mi)
		}
	case m.ctrl.Range != nil:
		if key == "+" || key == "-" {
			if s := m.ctrl.Range.Start(); s != nil {
				zm := m.conv.ToZoned(*s, m.cfg.Timezone)
				h, mi := shiftClock(zm.Hour(), zm.Minute(), delta)
				m.ctrl.Range.SetStartTimeOfDay(h, mi)
			}
		} else {
			if e := m.ctrl.Range.End(); e != nil {
				zm := m.conv.ToZoned(*e, m.cfg.Timezone)
				h, mi := shiftClock(zm.Hour(), zm.Minute(), delta)
				m.ctrl.Range.SetEndTimeOfDay(h, mi)
			}
		}
	}
}

// shiftClock moves hh:mm by delta minutes, wrapping within the day.
func shiftClock(h, mi, delta int) (int, int) {
	total := (h*60 + mi + delta) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return total / 60, total % 60
}

// followSelection pages the grid to the primary selected day.
func (m *Model) followSelection() {
	if d, ok := m.primaryDay(); ok {
		m.cursor = d
		m.viewYear, m.viewMonth = d.Year, d.Month
	}
}

// primaryDay is the zoned day the grid should open on: the single selection,
// the range start, or the earliest multi-selected day.
func (m Model) primaryDay() (picker.Day, bool) {
	switch {
	case m.ctrl.Single != nil:
		return m.ctrl.Single.SelectedDay()
	case m.ctrl.Range != nil:
		return m.ctrl.Range.StartDay()
	case m.ctrl.Multi != nil:
		sel := m.ctrl.Multi.Selected()
		if len(sel) == 0 {
			return picker.Day{}, false
		}
		return picker.DayOf(m.conv.ToZoned(sel[0], m.cfg.Timezone)), true
	}
	return picker.Day{}, false
}

// syncInput refreshes the text field from the controller state.
func (m *Model) syncInput() {
	switch {
	case m.ctrl.Single != nil:
		m.input.SetValue(m.ctrl.Single.Text())
	case m.ctrl.Range != nil:
		m.input.SetValue(m.ctrl.Range.Text())
	case m.ctrl.Multi != nil:
		m.input.SetValue(fmt.Sprintf("%d dates", len(m.ctrl.Multi.Selected())))
	}
}

func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf("%s %d", m.viewMonth, m.viewYear))
	if m.cfg.Timezone != "" {
		title += " " + zoneStyle.Render("("+m.cfg.Timezone+")")
	}
	b.WriteString(title + "\n")
	b.WriteString(gridStyle.Render(m.renderGrid()) + "\n")

	b.WriteString(m.input.View() + "\n")
	if m.inputErr != nil {
		b.WriteString(errorStyle.Render(m.inputErr.Error()) + "\n")
	}
	b.WriteString(summaryStyle.Render(m.summary()) + "\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderGrid() string {
	grid := picker.MonthGrid(m.viewYear, m.viewMonth, m.weekStart)
	today := picker.DayOf(m.conv.NowInZone(m.cfg.Timezone))

	var rows []string
	var head []string
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(m.weekStart) + i) % 7)
		head = append(head, headingStyle.Render(wd.String()[:2]))
	}
	rows = append(rows, strings.Join(head, " "))

	for _, week := range grid.Weeks {
		var cells []string
		for _, d := range week {
			cells = append(cells, m.renderCell(grid, d, today))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(grid picker.Grid, d picker.Day, today picker.Day) string {
	label := fmt.Sprintf("%2d", d.Day)

	style := dayStyle
	switch {
	case !grid.InMonth(d):
		style = outsideStyle
	case m.isSelected(d):
		style = selectedStyle
	case m.inRange(d):
		style = inRangeStyle
	case len(m.marks[d]) > 0:
		style = markedStyle
	case d == today:
		style = todayStyle
	}
	if d == m.cursor {
		style = cursorStyle
	}
	return style.Render(label)
}

// isSelected reports whether d is an exact selected zoned day (a range
// endpoint counts; in-between days are inRange instead).
func (m Model) isSelected(d picker.Day) bool {
	switch {
	case m.ctrl.Single != nil:
		sd, ok := m.ctrl.Single.SelectedDay()
		return ok && sd == d
	case m.ctrl.Range != nil:
		if sd, ok := m.ctrl.Range.StartDay(); ok && sd == d {
			return true
		}
		if ed, ok := m.ctrl.Range.EndDay(); ok && ed == d {
			return true
		}
		return false
	case m.ctrl.Multi != nil:
		return m.ctrl.Multi.Days()[d]
	}
	return false
}

func (m Model) inRange(d picker.Day) bool {
	if m.ctrl.Range == nil {
		return false
	}
	return m.ctrl.Range.Contains(d)
}

// summary renders the current selection as the host sees it.
func (m Model) summary() string {
	tz := m.cfg.Timezone
	switch {
	case m.ctrl.Single != nil:
		sel := m.ctrl.Single.Selected()
		if sel == nil {
			return "selected: (none)"
		}
		out := "selected: " + sel.Format(time.RFC3339)
		if m.cfg.ShowTime {
			out += "  " + m.conv.FormatInZone(*sel, m.cfg.TimeFormat, tz)
		}
		return out
	case m.ctrl.Range != nil:
		fmtEnd := func(t *time.Time) string {
			if t == nil {
				return "(open)"
			}
			return t.Format(time.RFC3339)
		}
		return "range: " + fmtEnd(m.ctrl.Range.Start()) + " .. " + fmtEnd(m.ctrl.Range.End())
	case m.ctrl.Multi != nil:
		sel := m.ctrl.Multi.Selected()
		if len(sel) == 0 {
			return "selected: (none)"
		}
		parts := make([]string, 0, len(sel))
		for _, t := range sel {
			parts = append(parts, m.conv.FormatInZone(t, m.cfg.DateFormat, tz))
		}
		return "selected: " + strings.Join(parts, ", ")
	}
	return ""
}

func (m Model) helpLine() string {
	help := "←↓↑→ move · [/] month · {/} year · t today · enter select · c clear · / type · q quit"
	if m.cfg.ShowTime {
		if m.ctrl.Range != nil {
			help += " · +/- start time · ,/. end time"
		} else {
			help += " · +/- time"
		}
	}
	return help
}
