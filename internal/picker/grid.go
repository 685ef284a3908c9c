package picker

import "time"

// Grid is one displayed month laid out in whole weeks. Leading and trailing
// cells belong to the adjacent months so every week row has seven days.
type Grid struct {
	Year  int
	Month time.Month
	Weeks [][7]Day
}

// InMonth reports whether d belongs to the displayed month rather than the
// leading/trailing filler of an adjacent month.
func (g Grid) InMonth(d Day) bool {
	return d.Year == g.Year && d.Month == g.Month
}

// MonthGrid lays out the given month in weeks starting on weekStart.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) Grid {
	first := Day{Year: year, Month: month, Day: 1}
	last := DayOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))

	// Back up from the 1st to the week boundary.
	cur := first
	for cur.Weekday() != weekStart {
		cur = cur.AddDays(-1)
	}

	g := Grid{Year: year, Month: month}
	for {
		var week [7]Day
		for i := range week {
			week[i] = cur
			cur = cur.AddDays(1)
		}
		g.Weeks = append(g.Weeks, week)
		if last.Before(cur) {
			return g
		}
	}
}

// StepMonth moves a displayed (year, month) by delta months, normalizing
// across year boundaries.
func StepMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseWeekStart maps a config week_start value to a weekday.
// Unknown values fall back to Monday, matching config normalization.
func ParseWeekStart(s string) time.Weekday {
	if s == "sunday" {
		return time.Sunday
	}
	return time.Monday
}
