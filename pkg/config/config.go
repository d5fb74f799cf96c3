// Package config loads postfeed settings from a TOML file and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Sternrassler/postfeed/pkg/logging"
	"github.com/Sternrassler/postfeed/pkg/permission"
)

const baseCfgPath = "postfeed/config.toml"

// Store backends for the todo list.
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is the complete application configuration.
type Config struct {
	API          APIConfig          `toml:"api"`
	Feed         FeedConfig         `toml:"feed"`
	Todo         TodoConfig         `toml:"todo"`
	Log          LogConfig          `toml:"log"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Notification NotificationConfig `toml:"notification"`
}

// APIConfig configures the remote post collection.
type APIConfig struct {
	BaseURL    string   `toml:"base_url"`
	UserAgent  string   `toml:"user_agent"`
	PageParam  string   `toml:"page_param"`
	LimitParam string   `toml:"limit_param"`
	Timeout    Duration `toml:"timeout"`
}

// FeedConfig configures the fetch coordinator.
type FeedConfig struct {
	PageSize                    int    `toml:"page_size"`
	FetchRegardlessOfPermission bool   `toml:"fetch_regardless_of_permission"`
	Permission                  string `toml:"permission"`         // "granted" or "denied"
	PermissionOnRequest         string `toml:"permission_request"` // verdict when requested
	EndThreshold                int    `toml:"end_threshold"`      // rows from the end that count as "near end"
}

// TodoConfig configures todo persistence.
type TodoConfig struct {
	Store      string `toml:"store"` // redis, sqlite or memory
	RedisAddr  string `toml:"redis_addr"`
	RedisDB    int    `toml:"redis_db"`
	SQLitePath string `toml:"sqlite_path"`
	Namespace  string `toml:"namespace"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
	File   string `toml:"file"` // used by the terminal UI
}

// MetricsConfig configures the metrics endpoint.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// NotificationConfig configures the notification sink.
type NotificationConfig struct {
	ChannelID string `toml:"channel_id"`
}

// Duration is a time.Duration decoded from strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration, targeting jsonplaceholder.
func Default() Config {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	base := filepath.Join(dataHome, "postfeed")

	return Config{
		API: APIConfig{
			BaseURL:    "https://jsonplaceholder.typicode.com/posts",
			UserAgent:  "postfeed/0.1.0",
			PageParam:  "_page",
			LimitParam: "_limit",
			Timeout:    Duration{30 * time.Second},
		},
		Feed: FeedConfig{
			PageSize:                    10,
			FetchRegardlessOfPermission: true,
			Permission:                  "granted",
			PermissionOnRequest:         "granted",
			EndThreshold:                3,
		},
		Todo: TodoConfig{
			Store:      StoreSQLite,
			RedisAddr:  "localhost:6379",
			SQLitePath: filepath.Join(base, "todos.db"),
			Namespace:  "postfeed",
		},
		Log: LogConfig{
			Level: string(logging.LevelInfo),
			File:  filepath.Join(base, "postfeed.log"),
		},
		Notification: NotificationConfig{
			ChannelID: "default-channel-id",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/postfeed/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, baseCfgPath)
	}
	return filepath.Join(os.Getenv("HOME"), ".config", baseCfgPath)
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. A missing file is not an error when optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !(optional && errors.Is(err, os.ErrNotExist)) {
				return cfg, fmt.Errorf("decode config at %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// applyEnv applies POSTFEED_* and REDIS_URL overrides.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("POSTFEED_BASE_URL", &c.API.BaseURL)
	str("POSTFEED_USER_AGENT", &c.API.UserAgent)
	str("POSTFEED_STORE", &c.Todo.Store)
	str("REDIS_URL", &c.Todo.RedisAddr)
	str("POSTFEED_SQLITE_PATH", &c.Todo.SQLitePath)
	str("POSTFEED_LOG_LEVEL", &c.Log.Level)
	str("POSTFEED_METRICS_ADDR", &c.Metrics.Addr)
	str("POSTFEED_PERMISSION", &c.Feed.Permission)

	if v, ok := lookup("POSTFEED_PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse POSTFEED_PAGE_SIZE: %w", err)
		}
		c.Feed.PageSize = n
	}
	if v, ok := lookup("POSTFEED_FETCH_REGARDLESS_OF_PERMISSION"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse POSTFEED_FETCH_REGARDLESS_OF_PERMISSION: %w", err)
		}
		c.Feed.FetchRegardlessOfPermission = b
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Feed.PageSize < 1 {
		return fmt.Errorf("feed.page_size must be >= 1 (got %d)", c.Feed.PageSize)
	}
	if c.Feed.EndThreshold < 0 {
		return fmt.Errorf("feed.end_threshold must be >= 0 (got %d)", c.Feed.EndThreshold)
	}
	if _, err := permission.ParseVerdict(c.Feed.Permission); err != nil {
		return fmt.Errorf("feed.permission: %w", err)
	}
	if _, err := permission.ParseVerdict(c.Feed.PermissionOnRequest); err != nil {
		return fmt.Errorf("feed.permission_request: %w", err)
	}
	switch c.Todo.Store {
	case StoreRedis, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("todo.store must be redis, sqlite or memory (got %q)", c.Todo.Store)
	}
	if !logging.ValidLevel(logging.LogLevel(c.Log.Level)) {
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	return nil
}

// PermissionService builds the static permission collaborator.
func (c *Config) PermissionService() permission.Service {
	current, _ := permission.ParseVerdict(c.Feed.Permission)
	onRequest, _ := permission.ParseVerdict(c.Feed.PermissionOnRequest)
	return permission.Static{Current: current, OnRequest: onRequest}
}
