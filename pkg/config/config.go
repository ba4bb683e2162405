// Package config reads and writes the rpgmap configuration file.
//
// The file lives at $XDG_CONFIG_HOME/rpgmap/config.toml (falling back to
// ~/.config/rpgmap/config.toml). Every value has a default, so a missing
// file is not an error. Command-line flags override what the file says.
//
//	[dataset]
//	source = "https://example.com/rpg_systems.json"
//
//	[render]
//	engine = "neato"
//	formats = ["html"]
//	detailed = false
//
//	[cache]
//	backend = "file"   # file, redis or none
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//	prefix = "rpgmap:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/rpgmap/pkg/errors"
)

const appName = "rpgmap"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds rpgmap configuration.
type Config struct {
	Dataset DatasetConfig `toml:"dataset"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// DatasetConfig names the default catalog.
type DatasetConfig struct {
	Source string `toml:"source"` // file path or http(s) URL
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Engine   string   `toml:"engine"`
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
	Prefix    string `toml:"prefix"`
}

// ServerConfig controls `rpgmap serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Engine: "neato", Formats: []string{"html"}},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       "168h",
			Prefix:    appName + ":",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Dir returns the rpgmap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file. A missing file yields the defaults; keys not
// present in the file keep their default values.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "invalid cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses the configured artifact TTL. An empty value means no
// expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	return SaveFile(cfg, Path())
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Init creates the config file with defaults unless it already exists.
// It reports whether a file was written.
func Init() (bool, error) {
	if _, err := os.Stat(Path()); err == nil {
		return false, nil
	}
	if err := Save(Default()); err != nil {
		return false, err
	}
	return true, nil
}
