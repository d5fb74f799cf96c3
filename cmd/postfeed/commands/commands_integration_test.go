//go:build integration

package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Sternrassler/postfeed/pkg/config"
)

// startRedis starts a Redis container and returns its address.
func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() { redisC.Terminate(ctx) })

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}
	return host + ":" + port.Port()
}

func TestTodoCommands_Redis_Integration(t *testing.T) {
	c := testConfig(t, "http://localhost")
	c.Todo.Store = config.StoreRedis
	c.Todo.RedisAddr = startRedis(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.Write(path, c); err != nil {
		t.Fatalf("config.Write() error = %v", err)
	}

	run := func(args ...string) string {
		t.Helper()
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(append([]string{"--config", path, "todo"}, args...))
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("todo %v: %v", args, err)
		}
		return out.String()
	}

	id := strings.TrimSpace(run("add", "buy milk"))
	run("select", id)

	// Every invocation is a new process view of the same Redis key.
	if got, want := run("list"), "*[ ] "+id+" buy milk\n"; got != want {
		t.Errorf("list = %q, want %q", got, want)
	}
}

func TestReadyEndpoint_Redis_Integration(t *testing.T) {
	c := testConfig(t, "http://localhost")
	c.Todo.Store = config.StoreRedis
	c.Todo.RedisAddr = startRedis(t)

	store, err := openTodoStore(context.Background(), c)
	if err != nil {
		t.Fatalf("openTodoStore() error = %v", err)
	}
	handler := readyHandler(store)

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/ready", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("not_ready_redis_down", func(t *testing.T) {
		// Close Redis to simulate failure
		store.Close()

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/ready", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}
