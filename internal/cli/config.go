package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileName is the config file looked up under the XDG config dir.
const configFileName = "config.toml"

// Config is the on-disk configuration, read from
// ~/.config/netplot/config.toml. All fields are optional; flags override
// config values, and config values override built-in defaults.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// DefaultsConfig sets fallback plotting options.
type DefaultsConfig struct {
	Layout     string   `toml:"layout"`
	Formats    []string `toml:"formats"`
	Colorscale string   `toml:"colorscale"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Dir overrides the XDG file cache directory.
	Dir string `toml:"dir"`

	// RedisURL switches the server to a shared Redis cache.
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// LoadConfig reads a TOML config file. A missing file yields the zero
// config without error; a malformed file is an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultConfig reads the config from the XDG config directory.
func LoadDefaultConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}
	return LoadConfig(filepath.Join(dir, configFileName))
}
