// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Activity ActivityConfig `toml:"activity"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// ActivityConfig maps generation settings. Nil fields were not set.
type ActivityConfig struct {
	Platform    *string  `toml:"platform"`
	Total       *int     `toml:"total"`
	Easy        *int     `toml:"easy"`
	Medium      *int     `toml:"medium"`
	Hard        *int     `toml:"hard"`
	WeekdayProb *float64 `toml:"weekday"`
	WeekendProb *float64 `toml:"weekend"`
	DoubleProb  *float64 `toml:"double"`
	AcceptProb  *float64 `toml:"accept"`
	Jitter      *int     `toml:"jitter"`
	Seed        *int64   `toml:"seed"`
}

// CatalogConfig points at optional catalog files.
type CatalogConfig struct {
	Problems  *string `toml:"problems"`
	Languages *string `toml:"languages"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
