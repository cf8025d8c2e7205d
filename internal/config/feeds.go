// Package config loads the dashboard's configuration from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/spf13/viper"
)

// Default feed locations.
const (
	DefaultMainFeed  = "https://raw.githubusercontent.com/akarimvand/SAPRA2/main/DATA.CSV"
	DefaultItemsFeed = "https://raw.githubusercontent.com/akarimvand/SAPRA2/main/ITEMS.CSV"
	DefaultPunchFeed = "https://raw.githubusercontent.com/akarimvand/SAPRA2/main/PUNCH.CSV"
	DefaultHoldFeed  = "https://raw.githubusercontent.com/akarimvand/SAPRA2/main/HOLD_POINT.CSV"
)

// Feeds holds the locations of the four CSV feeds. A location is either an
// http(s) URL or a local path.
type Feeds struct {
	Main    string
	Items   string
	Punch   string
	Hold    string
	Timeout time.Duration
}

// DefaultFeeds returns the published feed locations.
func DefaultFeeds() Feeds {
	return Feeds{
		Main:    DefaultMainFeed,
		Items:   DefaultItemsFeed,
		Punch:   DefaultPunchFeed,
		Hold:    DefaultHoldFeed,
		Timeout: 30 * time.Second,
	}
}

// SetDefaults registers the feed defaults with viper so SAPRA_FEEDS_* env
// vars and config file keys override them.
func SetDefaults(v *viper.Viper) {
	d := DefaultFeeds()
	v.SetDefault("feeds.main", d.Main)
	v.SetDefault("feeds.items", d.Items)
	v.SetDefault("feeds.punch", d.Punch)
	v.SetDefault("feeds.hold", d.Hold)
	v.SetDefault("feeds.timeout", d.Timeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("export.dir", ".")
}

// EnvKeyReplacer maps nested config keys to env var names, so feeds.main is
// read from SAPRA_FEEDS_MAIN.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// LoadFeedsConfig reads the feed locations from viper.
func LoadFeedsConfig(v *viper.Viper) (Feeds, error) {
	feeds := DefaultFeeds()

	if s := strings.TrimSpace(v.GetString("feeds.main")); s != "" {
		feeds.Main = s
	}
	if s := strings.TrimSpace(v.GetString("feeds.items")); s != "" {
		feeds.Items = s
	}
	if s := strings.TrimSpace(v.GetString("feeds.punch")); s != "" {
		feeds.Punch = s
	}
	if s := strings.TrimSpace(v.GetString("feeds.hold")); s != "" {
		feeds.Hold = s
	}
	if v.IsSet("feeds.timeout") {
		feeds.Timeout = v.GetDuration("feeds.timeout")
	}

	if err := feeds.Validate(); err != nil {
		return Feeds{}, err
	}
	return feeds, nil
}

// Validate checks that the feed configuration is usable.
func (f Feeds) Validate() error {
	if f.Main == "" {
		return fmt.Errorf("%w: feeds.main is required", common.ErrInvalidConfig)
	}
	if f.Timeout <= 0 {
		return fmt.Errorf("%w: feeds.timeout must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
