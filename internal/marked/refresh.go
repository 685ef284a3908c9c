package marked

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "datepick/internal/log"
)

// Refresher keeps a DaySet current for long-running hosts: an immediate
// build via RunOnce, then cron-scheduled re-fetches. When a refresh fails
// the last good day set stays in place.
type Refresher struct {
	fetcher *Fetcher
	feeds   []Feed
	loc     *time.Location
	window  func() Window
	onSet   func(DaySet)

	cron *cron.Cron

	mu   sync.Mutex
	last DaySet
}

// NewRefresher wires a Refresher. window supplies the expansion range for
// each run (typically the displayed month padded by a few weeks); onSet, if
// non-nil, is called with every freshly built day set.
func NewRefresher(fetcher *Fetcher, feeds []Feed, loc *time.Location, window func() Window, onSet func(DaySet)) *Refresher {
	return &Refresher{
		fetcher: fetcher,
		feeds:   feeds,
		loc:     loc,
		window:  window,
		onSet:   onSet,
	}
}

// RunOnce fetches, parses, and expands all feeds, retaining and returning
// the merged day set. Individual feed failures are logged and skipped; the
// previous day set is returned when nothing could be built.
func (r *Refresher) RunOnce(ctx context.Context) (DaySet, error) {
	results, errs := r.fetcher.FetchAll(ctx, r.feeds)
	for _, err := range errs {
		appLog.Warn("marked refresh: feed unavailable", "err", err)
	}

	merged := make(DaySet)
	built := false
	for _, res := range results {
		events, err := ParseFeed(res.Feed, res.Body)
		if err != nil {
			continue
		}
		days, err := ExpandDays(events, r.window(), r.loc)
		if err != nil {
			appLog.Error("marked refresh: expand failed", err, "id", res.Feed.ID)
			continue
		}
		for d, marks := range days {
			merged[d] = append(merged[d], marks...)
		}
		built = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !built && len(r.feeds) > 0 {
		return r.last, nil
	}
	r.last = merged
	if r.onSet != nil {
		r.onSet(merged)
	}
	return merged, nil
}

// Last returns the most recently built day set.
func (r *Refresher) Last() DaySet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Start schedules periodic refreshes with a cron spec (e.g. "*/15 * * * *").
func (r *Refresher) Start(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			appLog.Error("marked refresh failed", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	r.cron = c
	return nil
}

// Stop halts the refresh schedule. In-flight runs finish on their own.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}
