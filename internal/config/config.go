// Package config loads optional TOML configuration for sograph.
//
// The file supplies defaults the command line can override: recursion depth,
// output path, extra library search directories, group substrings, and a
// palette override. Flags always win over the file; the file wins over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds file-supplied defaults. The zero value means "nothing
// configured" and leaves every built-in default in place.
type Config struct {
	Depth       int      `toml:"depth"`        // default recursion bound (0 = unset)
	Output      string   `toml:"output"`       // default graph-description path
	SearchPaths []string `toml:"search_paths"` // extra locator directories
	Groups      []string `toml:"groups"`       // appended after --group flags
	Palette     []string `toml:"palette"`      // fill-color cycle override
}

// DefaultPath returns the conventional config location,
// ~/.config/sograph/config.toml, honoring XDG_CONFIG_HOME when set.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "sograph", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sograph", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error when
// path is empty or points at the default location — the zero Config comes
// back instead. An explicitly named file must exist and parse.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Depth < 0 {
		return Config{}, fmt.Errorf("parse %s: depth must not be negative", path)
	}
	return cfg, nil
}
