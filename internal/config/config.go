package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Selection modes. Exactly one is active; it fixes the shape of the value
// the widget hands back to its host.
const (
	ModeSingle   = "single"
	ModeRange    = "range"
	ModeMultiple = "multiple"
)

// FeedConfig describes a single marked-day ICS subscription.
type FeedConfig struct {
	// URL is the ICS subscription endpoint.
	URL string `yaml:"url" json:"url"`
	// ID is an internal identifier used for de-dup and logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label shown next to marked days.
	Name string `yaml:"name" json:"name"`
}

// Config is the top-level widget configuration.
type Config struct {
	// Timezone is the IANA timezone the calendar displays in
	// (e.g. "America/New_York"). Empty means no zoning: instants are
	// shown as-is.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Mode selects the selection shape: single, range, or multiple.
	Mode string `yaml:"mode" json:"mode"`

	// DateFormat is the pattern for the text field (dateformat tokens).
	DateFormat string `yaml:"date_format" json:"date_format"`

	// TimeFormat is the pattern for the time sub-control display.
	TimeFormat string `yaml:"time_format" json:"time_format"`

	// WeekStart controls which weekday leads the grid rows. Supported:
	//   - "monday" (default)
	//   - "sunday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// ShowTime enables the time-of-day sub-control.
	ShowTime bool `yaml:"show_time" json:"show_time"`

	// Dev enables development-mode diagnostics (e.g. the missing timezone
	// database warning) and debug logging.
	Dev bool `yaml:"dev" json:"dev"`

	// Refresh is a cron-style schedule for re-fetching marked-day feeds.
	Refresh string `yaml:"refresh" json:"refresh"`

	// CacheDir is where feed bodies and HTTP validators are cached.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// Feeds is the list of marked-day ICS subscriptions.
	Feeds []FeedConfig `yaml:"feeds" json:"feeds"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:   "",
		Mode:       ModeSingle,
		DateFormat: "MM/dd/yyyy",
		TimeFormat: "HH:mm",
		WeekStart:  "monday",
		ShowTime:   false,
		Refresh:    "*/15 * * * *",
		CacheDir:   "",
		Feeds:      []FeedConfig{},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	switch c.Mode {
	case ModeSingle, ModeRange, ModeMultiple:
		// ok
	default:
		c.Mode = ModeSingle
	}
	if c.DateFormat == "" {
		c.DateFormat = "MM/dd/yyyy"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "HH:mm"
	}
	switch c.WeekStart {
	case "monday", "sunday":
		// ok
	case "":
		c.WeekStart = "monday"
	default:
		// Unknown value; fall back to monday to avoid surprising layouts.
		c.WeekStart = "monday"
	}
	if c.Refresh == "" {
		c.Refresh = "*/15 * * * *"
	}
	if c.Feeds == nil {
		c.Feeds = []FeedConfig{}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".datepick-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
