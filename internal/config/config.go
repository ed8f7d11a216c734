// Package config loads zcrowd settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Override store backends.
const (
	BackendZstore = "zstore"
	BackendVault  = "vault"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all zcrowd settings.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Results  int           `yaml:"results"`
	Timeout  time.Duration `yaml:"timeout"`
	Images   Images        `yaml:"images"`
	Store    Store         `yaml:"store"`
	LogLevel string        `yaml:"log_level"`
}

// Images configures the picture loader.
type Images struct {
	Timeout time.Duration `yaml:"timeout"`
	Rate    float64       `yaml:"rate"`
	Burst   int           `yaml:"burst"`
}

// Store selects and configures the override backend.
type Store struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path,omitempty"`
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint: "https://randomuser.me/api",
		Results:  20,
		Timeout:  20 * time.Second,
		Images: Images{
			Timeout: 15 * time.Second,
			Rate:    10,
			Burst:   20,
		},
		Store: Store{
			Backend:   BackendZstore,
			RedisAddr: "localhost:6379",
		},
		LogLevel: "info",
	}
}

// Path returns the config file location.
func Path() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zcrowd", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zcrowd", "config.yaml")
	}
	return filepath.Join(home, ".config", "zcrowd", "config.yaml")
}

// DataDir returns the data directory for stores and logs.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "zcrowd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zcrowd"
	}
	return filepath.Join(home, ".local", "share", "zcrowd")
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Results < 1 {
		return fmt.Errorf("results must be at least 1, got %d", c.Results)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Images.Timeout <= 0 {
		return fmt.Errorf("images.timeout must be positive, got %s", c.Images.Timeout)
	}
	if c.Images.Rate <= 0 || c.Images.Burst < 1 {
		return fmt.Errorf("images rate %v burst %d must be positive", c.Images.Rate, c.Images.Burst)
	}

	switch c.Store.Backend {
	case BackendZstore, BackendVault, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Level returns the configured slog level, falling back to info.
func (c Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
