// Package config provides configuration management for dreamtemple.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Defaults for settings that are not overridden in settings.json.
const (
	DefaultPort        = 7199
	DefaultMaxConns    = 4
	DefaultSweepMs     = 1000
	DefaultDataDirName = ".dreamtemple"
)

// Config holds the service configuration loaded from settings.json.
type Config struct {
	Port        int    `json:"port"`
	DBPath      string `json:"db_path"`
	WeightsPath string `json:"weights_path"`
	MaxConns    int    `json:"max_conns"`
	SweepMs     int    `json:"sweep_interval_ms"`
	Debug       bool   `json:"debug"`
}

var (
	mu      sync.RWMutex
	current *Config
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		DBPath:      DBPath(),
		WeightsPath: WeightsPath(),
		MaxConns:    DefaultMaxConns,
		SweepMs:     DefaultSweepMs,
	}
}

// DataDir returns the dot-directory holding all dreamtemple state.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, DefaultDataDirName)
}

// DBPath returns the default SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), "dreamtemple.db")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.json")
}

// WeightsPath returns the scoring weights file path.
func WeightsPath() string {
	return filepath.Join(DataDir(), "weights.yaml")
}

// EnsureDataDir creates the data directory if missing.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o755)
}

// Load reads settings.json, falling back to defaults for missing fields.
// A missing file is not an error - defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			set(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = DefaultMaxConns
	}
	if cfg.SweepMs <= 0 {
		cfg.SweepMs = DefaultSweepMs
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DBPath()
	}
	if cfg.WeightsPath == "" {
		cfg.WeightsPath = WeightsPath()
	}

	set(cfg)
	return cfg, nil
}

// Save writes the configuration to settings.json.
func Save(cfg *Config) error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(SettingsPath(), data, 0o644)
}

// Get returns the last loaded configuration, or defaults if Load was
// never called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return Default()
	}
	return current
}

func set(cfg *Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}
