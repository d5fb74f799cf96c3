package todo

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "todos.db")

	store, err := OpenSQLiteStore(path, DefaultKey())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}

	empty, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on empty db error = %v", err)
	}
	if len(empty.Todos) != 0 {
		t.Errorf("empty db todos = %d", len(empty.Todos))
	}

	list, err := Open(ctx, store)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	item, _, err := list.Add(ctx, "persist me")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	store.Close()

	reopened, err := OpenSQLiteStore(path, DefaultKey())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	state, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(state.Todos) != 1 || state.Todos[0].ID != item.ID {
		t.Errorf("persisted state = %+v", state)
	}
}

func TestSQLiteStore_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	a, err := OpenSQLiteStore(path, Key{Namespace: "a", Name: "root"})
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	defer a.Close()

	var s State
	s.Todos = []Todo{{ID: "1", Text: "only in a"}}
	if err := a.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b, err := OpenSQLiteStore(path, Key{Namespace: "b", Name: "root"})
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	defer b.Close()

	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Todos) != 0 {
		t.Errorf("key b sees %d todos from key a", len(got.Todos))
	}
}
