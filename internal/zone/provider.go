package zone

import (
	"time"

	"github.com/maypok86/otter/v2"
)

// LocationProvider resolves IANA timezone names to locations.
// The production implementation reads the process timezone database;
// tests substitute failing or canned providers.
type LocationProvider interface {
	Load(name string) (*time.Location, error)
}

// SystemProvider resolves zone names through the process timezone database
// (system zoneinfo, ZONEINFO, or an embedded time/tzdata import), caching
// resolved locations so repeated conversions do not re-read the database.
type SystemProvider struct {
	cache *otter.Cache[string, *time.Location]
}

// NewSystemProvider creates a SystemProvider with an in-memory location cache.
func NewSystemProvider() *SystemProvider {
	cache := otter.Must(&otter.Options[string, *time.Location]{
		MaximumSize: 256,
	})
	return &SystemProvider{cache: cache}
}

// Load returns the location for an IANA zone name.
// Only successful lookups are cached; a rejected name is re-probed on the
// next call so that an updated ZONEINFO can take effect without a restart.
func (p *SystemProvider) Load(name string) (*time.Location, error) {
	if loc, ok := p.cache.GetIfPresent(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	p.cache.Set(name, loc)
	return loc, nil
}
