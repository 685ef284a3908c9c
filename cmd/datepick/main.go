package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"datepick/internal/config"
	appLog "datepick/internal/log"
	"datepick/internal/marked"
	"datepick/internal/picker"
	"datepick/internal/tui"
	"datepick/internal/zone"
)

// flagConfig holds CLI flag values; non-empty values override the config
// file.
type flagConfig struct {
	configPath string
	timezone   string
	mode       string
	format     string
	showTime   bool
	dev        bool
	printGrid  bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	applyOverrides(conf, flags)

	appLog.SetDev(conf.Dev)
	if conf.Dev {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("datepick starting",
		"timezone", conf.Timezone,
		"mode", conf.Mode,
		"date_format", conf.DateFormat,
		"week_start", conf.WeekStart,
		"show_time", conf.ShowTime,
		"feed_count", len(conf.Feeds),
	)

	conv := zone.NewConverter(nil)

	if flags.printGrid {
		printMonth(conv, conf)
		return
	}

	ctrl := buildControllers(conv, conf)

	// Marked-day feeds: build once up front, then refresh on the cron
	// schedule while the widget runs.
	var program *tea.Program
	marks := marked.DaySet{}
	var refresher *marked.Refresher
	if len(conf.Feeds) > 0 {
		feeds := make([]marked.Feed, 0, len(conf.Feeds))
		for _, f := range conf.Feeds {
			feeds = append(feeds, marked.Feed{ID: f.ID, Name: f.Name, URL: f.URL})
		}
		loc := displayLocation(conf.Timezone)
		window := func() marked.Window {
			now := time.Now()
			return marked.Window{Start: now.AddDate(0, -2, 0), End: now.AddDate(1, 1, 0)}
		}
		refresher = marked.NewRefresher(marked.NewFetcher(conf.CacheDir), feeds, loc, window, func(days marked.DaySet) {
			if program != nil {
				program.Send(tui.MarksMsg{Days: days})
			}
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if built, err := refresher.RunOnce(ctx); err == nil {
			marks = built
		}
		cancel()
	}

	model := tui.NewModel(conf, conv, ctrl, marks)
	program = tea.NewProgram(model, tea.WithAltScreen())

	// The cron goroutines read program through onSet, so the schedule only
	// starts once program is assigned.
	if refresher != nil {
		if err := refresher.Start(conf.Refresh); err != nil {
			appLog.Error("invalid refresh schedule, feeds will not auto-refresh", err, "refresh", conf.Refresh)
		} else {
			defer refresher.Stop()
		}
	}

	if _, err := program.Run(); err != nil {
		appLog.Error("widget terminated abnormally", err)
		os.Exit(1)
	}

	printSelection(ctrl)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.StringVar(&cfg.timezone, "timezone", "", "IANA timezone for display (overrides config if set)")
	flag.StringVar(&cfg.mode, "mode", "", "Selection mode: single, range, or multiple (overrides config if set)")
	flag.StringVar(&cfg.format, "format", "", "Date pattern for the text field (overrides config if set)")
	flag.BoolVar(&cfg.showTime, "show-time", false, "Enable the time-of-day control")
	flag.BoolVar(&cfg.dev, "dev", false, "Development mode: debug logging and extra diagnostics")
	flag.BoolVar(&cfg.printGrid, "print", false, "Print the current month grid and exit (no interactive widget)")

	flag.Parse()

	return cfg
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/datepick/config.yaml"
	}
	return "./datepick.yaml"
}

func applyOverrides(conf *config.Config, flags flagConfig) {
	if flags.timezone != "" {
		conf.Timezone = flags.timezone
	}
	if flags.mode != "" {
		conf.Mode = flags.mode
	}
	if flags.format != "" {
		conf.DateFormat = flags.format
	}
	if flags.showTime {
		conf.ShowTime = true
	}
	if flags.dev {
		conf.Dev = true
	}
	conf.Normalize()
}

// buildControllers wires the mode-appropriate controller with a callback
// that logs each emission, standing in for a host application.
func buildControllers(conv *zone.Converter, conf *config.Config) tui.Controllers {
	var ctrl tui.Controllers
	switch conf.Mode {
	case config.ModeRange:
		ctrl.Range = picker.NewRange(conv, conf.Timezone, conf.DateFormat, func(start, end *time.Time) {
			appLog.Debug("range changed", "start", formatOpt(start), "end", formatOpt(end))
		})
	case config.ModeMultiple:
		ctrl.Multi = picker.NewMulti(conv, conf.Timezone, conf.DateFormat, func(ts []time.Time) {
			appLog.Debug("dates changed", "count", len(ts))
		})
	default:
		ctrl.Single = picker.NewSingle(conv, conf.Timezone, conf.DateFormat, func(t *time.Time) {
			appLog.Debug("date changed", "selected", formatOpt(t))
		})
	}
	return ctrl
}

func formatOpt(t *time.Time) string {
	if t == nil {
		return "(none)"
	}
	return t.Format(time.RFC3339)
}

// printSelection writes the final selection to stdout as RFC3339 UTC, one
// value per line, for shell consumption.
func printSelection(ctrl tui.Controllers) {
	switch {
	case ctrl.Single != nil:
		if t := ctrl.Single.Selected(); t != nil {
			fmt.Println(t.Format(time.RFC3339))
		}
	case ctrl.Range != nil:
		if s := ctrl.Range.Start(); s != nil {
			fmt.Println(s.Format(time.RFC3339))
		}
		if e := ctrl.Range.End(); e != nil {
			fmt.Println(e.Format(time.RFC3339))
		}
	case ctrl.Multi != nil:
		for _, t := range ctrl.Multi.Selected() {
			fmt.Println(t.Format(time.RFC3339))
		}
	}
}

// printMonth renders the current month as plain text, no widget.
func printMonth(conv *zone.Converter, conf *config.Config) {
	today := picker.DayOf(conv.NowInZone(conf.Timezone))
	grid := picker.MonthGrid(today.Year, today.Month, picker.ParseWeekStart(conf.WeekStart))

	fmt.Printf("%s %d", grid.Month, grid.Year)
	if conf.Timezone != "" {
		fmt.Printf(" (%s)", conf.Timezone)
	}
	fmt.Println()
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(picker.ParseWeekStart(conf.WeekStart)) + i) % 7)
		fmt.Printf("%4s", wd.String()[:2])
	}
	fmt.Println()
	for _, week := range grid.Weeks {
		for _, d := range week {
			switch {
			case !grid.InMonth(d):
				fmt.Printf("%4s", "")
			case d == today:
				fmt.Printf("%4s", fmt.Sprintf("*%d", d.Day))
			default:
				fmt.Printf("%4d", d.Day)
			}
		}
		fmt.Println()
	}
}

// displayLocation resolves the configured zone for feed expansion, falling
// back to local time when unset or unresolvable.
func displayLocation(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		appLog.Warn("unresolvable display timezone for feeds, using local", "zone", tz, "err", err)
		return time.Local
	}
	return loc
}
