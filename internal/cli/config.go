package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the optional settings read from the TOML config file.
type Config struct {
	// AppToken is a Socrata application token sent with every request.
	AppToken string `toml:"app_token"`

	// Limit is the default row limit when --limit is not given.
	Limit int `toml:"limit"`

	// Timezone overrides the zone applied during date cleaning
	// (IANA name, e.g. "America/Chicago").
	Timezone string `toml:"timezone"`
}

// defaultConfigPath returns the conventional config location,
// <user config dir>/dallaspd/config.toml.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dallaspd", "config.toml")
}

// loadConfig reads the config file at path, or the default location
// when path is empty. A missing file is not an error; a file that
// exists but does not parse is.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

// location resolves the configured timezone, falling back to the
// city's zone when unset or unknown.
func (c Config) location() *time.Location {
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			return loc
		}
	}
	return nil // clean.Options defaults to America/Chicago
}
