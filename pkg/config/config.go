package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config drives the dashctl CLI and example wiring.
type Config struct {
	Org  string     `koanf:"org"`
	API  APIConfig  `koanf:"api"`
	List ListConfig `koanf:"list"`
}

// APIConfig locates the monitor backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Token   string `koanf:"token"`
}

// ListConfig tunes dashboard list fetches.
type ListConfig struct {
	PerPage  int    `koanf:"per_page"`
	Referrer string `koanf:"referrer"`
}

// Load reads configuration from an optional YAML file, then overlays
// MONITOR_* environment variables (MONITOR_API_BASE_URL -> api.base_url).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	_ = k.Set("org", "")
	_ = k.Set("api.base_url", "http://localhost:9000/api/0")
	_ = k.Set("list.per_page", 25)
	_ = k.Set("list.referrer", "dashctl")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("MONITOR_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "MONITOR_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
