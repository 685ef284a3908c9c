// Package zone converts absolute instants to and from wall-clock moments in
// a named IANA timezone.
//
// An instant is a time.Time treated as an absolute point; canonical values
// handed to callers are in UTC. A zoned moment is a time.Time whose
// wall-clock accessors (Year, Month, Day, Hour, ...) read as civil time in
// the zone. Zoned moments are derived values for display and cell matching;
// they are never stored.
//
// When the timezone database is unavailable (a binary built without system
// tzdata and without the time/tzdata import), every operation degrades to an
// identity conversion instead of failing. The availability probe runs once
// per process.
package zone

import (
	"sync"
	"time"

	"datepick/internal/dateformat"
	appLog "datepick/internal/log"
)

// probeZoneName is a zone that exists in every tzdata release; resolving it
// proves the database is present. "UTC" and "Local" are hardwired into the
// time package and would succeed even without a database.
const probeZoneName = "America/New_York"

var db struct {
	mu       sync.Mutex
	probed   bool
	ok       bool
	probeErr error
	warned   bool
}

// databaseAvailable reports whether the timezone database can be read,
// probing through p on first call and memoizing the result for the process
// lifetime. The missing-database warning is emitted at most once, on the
// first conversion that runs while development mode is on, so enabling dev
// mode after the probe still surfaces the diagnostic.
func databaseAvailable(p LocationProvider) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if !db.probed {
		db.probed = true
		_, err := p.Load(probeZoneName)
		db.ok = err == nil
		db.probeErr = err
	}
	if !db.ok && !db.warned && appLog.Dev() {
		db.warned = true
		appLog.Warn("timezone database unavailable; conversions fall back to identity",
			"hint", "install system tzdata or import time/tzdata",
			"probe_zone", probeZoneName,
			"err", db.probeErr,
		)
	}
	return db.ok
}

// ResetAvailabilityForTest clears the memoized database probe.
// Test harness use only.
func ResetAvailabilityForTest() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.probed = false
	db.ok = false
	db.probeErr = nil
	db.warned = false
}

// Converter performs all zoning for one widget instance. Methods are pure
// with respect to their time arguments; a Converter is safe for concurrent
// use.
type Converter struct {
	locs LocationProvider
	now  func() time.Time
}

// NewConverter creates a Converter backed by the given provider.
// A nil provider selects the system timezone database.
func NewConverter(p LocationProvider) *Converter {
	if p == nil {
		p = NewSystemProvider()
	}
	return &Converter{locs: p, now: time.Now}
}

// SetClock overrides the wall clock used by NowInZone. Test harness use only.
func (c *Converter) SetClock(now func() time.Time) {
	c.now = now
}

// location resolves tz, reporting false when the conversion for this call
// must be an identity: empty name, database unavailable, or a name the
// database rejects. A rejected name degrades this call only, never the
// process.
func (c *Converter) location(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if !databaseAvailable(c.locs) {
		return nil, false
	}
	loc, err := c.locs.Load(tz)
	if err != nil {
		appLog.Debug("unresolvable timezone, using identity conversion", "zone", tz, "err", err)
		return nil, false
	}
	return loc, true
}

// ToZoned returns the zoned moment for t in tz. The input is returned
// unchanged when tz is empty, the database is unavailable, or tz does not
// resolve. Zero times pass through untouched.
func (c *Converter) ToZoned(t time.Time, tz string) time.Time {
	if t.IsZero() {
		return t
	}
	loc, ok := c.location(tz)
	if !ok {
		return t
	}
	return t.In(loc)
}

// FromZoned treats the wall-clock fields of zm as civil time in tz and
// returns the corresponding absolute instant in UTC. Inverse of ToZoned:
// FromZoned(ToZoned(t, tz), tz) equals t exactly for every resolvable tz.
func (c *Converter) FromZoned(zm time.Time, tz string) time.Time {
	if zm.IsZero() {
		return zm
	}
	loc, ok := c.location(tz)
	if !ok {
		return zm
	}
	// A moment already carrying this zone keeps its exact instant.
	// Rebuilding from wall fields would pick an arbitrary offset for wall
	// times inside a repeated DST hour.
	if zm.Location().String() == loc.String() {
		return zm.UTC()
	}
	return time.Date(zm.Year(), zm.Month(), zm.Day(),
		zm.Hour(), zm.Minute(), zm.Second(), zm.Nanosecond(), loc).UTC()
}

// FromWall builds the absolute instant whose civil reading in tz matches the
// given wall-clock fields. With an empty or unresolvable tz the fields are
// read in UTC: unzoned instants display their UTC wall clock, and inversion
// must read the same frame or activating a displayed day would land on a
// neighboring one.
func (c *Converter) FromWall(year int, month time.Month, day, hour, min, sec, nsec int, tz string) time.Time {
	loc, ok := c.location(tz)
	if !ok {
		loc = time.UTC
	}
	return time.Date(year, month, day, hour, min, sec, nsec, loc).UTC()
}

// FormatInZone renders t with the dateformat pattern mini-language. With a
// non-empty tz the instant is zoned first; otherwise it is formatted as-is,
// with no conversion. Zero times render as the empty string.
func (c *Converter) FormatInZone(t time.Time, pattern, tz string) string {
	if t.IsZero() {
		return ""
	}
	if tz != "" {
		t = c.ToZoned(t, tz)
	}
	return dateformat.Format(t, pattern)
}

// ParseInZone parses input as wall-clock text in tz using the pattern
// mini-language and returns the absolute instant in UTC. With an empty or
// unresolvable tz the text is read in UTC, the same frame FormatInZone
// renders unzoned instants in.
func (c *Converter) ParseInZone(input, pattern, tz string) (time.Time, error) {
	loc, ok := c.location(tz)
	if !ok {
		loc = time.UTC
	}
	t, err := dateformat.Parse(input, pattern, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// NowInZone returns the current instant as a zoned moment in tz, or as-is
// when tz is empty or unresolvable.
func (c *Converter) NowInZone(tz string) time.Time {
	return c.ToZoned(c.now(), tz)
}
