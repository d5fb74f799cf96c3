package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/postfeed/pkg/permission"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Feed.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Feed.PageSize)
	}
	if !cfg.Feed.FetchRegardlessOfPermission {
		t.Error("FetchRegardlessOfPermission should default to true")
	}
	if cfg.API.Timeout.Duration != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "http://localhost:3000/posts"
timeout = "5s"

[feed]
page_size = 25
fetch_regardless_of_permission = false
permission = "denied"

[todo]
store = "memory"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3000/posts" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Duration != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if cfg.Feed.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.Feed.PageSize)
	}
	if cfg.Feed.FetchRegardlessOfPermission {
		t.Error("FetchRegardlessOfPermission should be false")
	}
	if cfg.Todo.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Todo.Store)
	}
	// Untouched keys keep their defaults.
	if cfg.API.PageParam != "_page" {
		t.Errorf("PageParam = %q, want _page", cfg.API.PageParam)
	}

	perms, ok := cfg.PermissionService().(permission.Static)
	if !ok || perms.Current != permission.Denied {
		t.Errorf("PermissionService() = %#v", cfg.PermissionService())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	if _, err := Load(path, true); err != nil {
		t.Errorf("optional missing file error = %v", err)
	}
	if _, err := Load(path, false); err == nil {
		t.Error("required missing file should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"POSTFEED_BASE_URL":                       "http://env/posts",
		"REDIS_URL":                               "redis:6379",
		"POSTFEED_STORE":                          "redis",
		"POSTFEED_PAGE_SIZE":                      "7",
		"POSTFEED_FETCH_REGARDLESS_OF_PERMISSION": "false",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if cfg.API.BaseURL != "http://env/posts" || cfg.Todo.RedisAddr != "redis:6379" || cfg.Todo.Store != "redis" {
		t.Errorf("string overrides not applied: %+v", cfg)
	}
	if cfg.Feed.PageSize != 7 {
		t.Errorf("PageSize = %d, want 7", cfg.Feed.PageSize)
	}
	if cfg.Feed.FetchRegardlessOfPermission {
		t.Error("FetchRegardlessOfPermission override not applied")
	}

	env["POSTFEED_PAGE_SIZE"] = "ten"
	if err := cfg.applyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric page size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"zero page size", func(c *Config) { c.Feed.PageSize = 0 }, "feed.page_size must be >= 1 (got 0)"},
		{"negative threshold", func(c *Config) { c.Feed.EndThreshold = -1 }, "feed.end_threshold must be >= 0 (got -1)"},
		{"unknown store", func(c *Config) { c.Todo.Store = "etcd" }, `todo.store must be redis, sqlite or memory (got "etcd")`},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, `log.level "loud" is not a known level`},
		{"bad permission", func(c *Config) { c.Feed.Permission = "maybe" }, "feed.permission"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.errorMsg) {
				t.Errorf("error = %q, want prefix %q", err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Feed.PageSize = 15
	cfg.API.Timeout = Duration{2 * time.Second}

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Feed.PageSize != 15 || got.API.Timeout.Duration != 2*time.Second {
		t.Errorf("round trip = %+v", got)
	}
}
