package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrInvalidState indicates the stored value could not be decoded.
	ErrInvalidState = errors.New("invalid stored todo state")
)

var (
	// StoreOps tracks store operations by backend and operation.
	StoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postfeed_todo_store_ops_total",
			Help: "Total number of todo store operations",
		},
		[]string{"backend", "operation"}, // "load", "save"
	)

	// StoreErrors tracks store operation errors.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postfeed_todo_store_errors_total",
			Help: "Total number of todo store operation errors",
		},
		[]string{"backend", "operation"},
	)
)

// Store persists the whole todo state under one key.
type Store interface {
	// Load returns the stored state, or an empty state when nothing is stored.
	Load(ctx context.Context) (State, error)

	// Save replaces the stored state.
	Save(ctx context.Context, state State) error

	Close() error
}

// Key identifies the persisted state.
type Key struct {
	// Namespace prefixes the key, e.g. "postfeed".
	Namespace string

	// Name is the persisted root, e.g. "root".
	Name string
}

// DefaultKey returns the key used by the application.
func DefaultKey() Key {
	return Key{Namespace: "postfeed", Name: "root"}
}

// String generates the storage key.
// Format: namespace:todos:name
//
// Example:
//
//	postfeed:todos:root
func (k Key) String() string {
	parts := make([]string, 0, 3)
	if ns := strings.Trim(k.Namespace, ":"); ns != "" {
		parts = append(parts, ns)
	}
	parts = append(parts, "todos")
	name := strings.Trim(k.Name, ":")
	if name == "" {
		name = "root"
	}
	parts = append(parts, name)
	return strings.Join(parts, ":")
}

// record is the stored envelope.
type record struct {
	Version int       `json:"version"`
	State   State     `json:"state"`
	SavedAt time.Time `json:"saved_at"`
}

const recordVersion = 1

func encodeState(state State) ([]byte, error) {
	if state.Todos == nil {
		state.Todos = []Todo{}
	}
	data, err := json.Marshal(record{Version: recordVersion, State: state, SavedAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshal todo state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (State, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if rec.Version != recordVersion {
		return State{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidState, rec.Version)
	}
	if rec.State.Todos == nil {
		rec.State.Todos = []Todo{}
	}
	return rec.State, nil
}

// MemoryStore keeps the encoded state in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	StoreOps.WithLabelValues("memory", "load").Inc()
	if m.data == nil {
		return State{Todos: []Todo{}}, nil
	}
	return decodeState(m.data)
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, state State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	StoreOps.WithLabelValues("memory", "save").Inc()
	m.data = data
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
