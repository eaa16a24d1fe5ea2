// Package config loads focus settings from ~/.focus/config.yaml and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Config struct {
	DataDir       string        `yaml:"data_dir"`
	LogLevel      string        `yaml:"log_level"`
	Storage       Storage       `yaml:"storage"`
	Server        Server        `yaml:"server"`
	Notifications Notifications `yaml:"notifications"`
}

// Storage selects where the task list is kept. An empty Path resolves to a
// default file inside DataDir.
type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

type Server struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key,omitempty"`
}

type Notifications struct {
	Sound   bool `yaml:"sound"`
	Desktop bool `yaml:"desktop"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	dir := ".focus"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".focus")
	}
	return &Config{
		DataDir:       dir,
		LogLevel:      "info",
		Storage:       Storage{Backend: BackendSQLite},
		Server:        Server{Port: 8742},
		Notifications: Notifications{Sound: true, Desktop: true},
	}
}

// DefaultPath returns ~/.focus/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".focus", "config.yaml"), nil
}

// Load reads path (a missing file is not an error), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = envStr("FOCUS_DATA_DIR", c.DataDir)
	c.LogLevel = envStr("LOG_LEVEL", c.LogLevel)
	c.Storage.Backend = envStr("FOCUS_STORAGE", c.Storage.Backend)
	c.Storage.Path = envStr("FOCUS_DB_PATH", c.Storage.Path)
	c.Server.Port = envInt("PORT", c.Server.Port)
	c.Server.APIKey = envStr("FOCUS_API_KEY", c.Server.APIKey)
	c.Notifications.Sound = envBool("FOCUS_SOUND", c.Notifications.Sound)
	c.Notifications.Desktop = envBool("FOCUS_DESKTOP_NOTIFY", c.Notifications.Desktop)
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of sqlite, file, memory, got %q", c.Storage.Backend)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// StoragePath returns the file the selected backend writes to.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendFile:
		return filepath.Join(c.DataDir, "tasks.json")
	case BackendSQLite:
		return filepath.Join(c.DataDir, "focus.db")
	}
	return ""
}

// SlogLevel converts LogLevel for slog handlers. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LogPath is where the terminal UI writes its log.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "focus.log")
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
