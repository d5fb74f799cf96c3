package todo

import (
	"testing"
	"time"
)

func TestState_Reducer(t *testing.T) {
	var s State
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	if _, ok := s.Add("   ", now); ok {
		t.Error("blank text should be ignored")
	}

	a, ok := s.Add("  write tests ", now)
	if !ok {
		t.Fatal("Add() should succeed")
	}
	if a.Text != "write tests" {
		t.Errorf("Text = %q, want trimmed", a.Text)
	}
	if a.Completed {
		t.Error("new todo should be open")
	}
	b, _ := s.Add("ship", now)
	if a.ID == b.ID {
		t.Error("todo ids should be unique")
	}

	if !s.Toggle(a.ID) || !s.Todos[0].Completed {
		t.Error("Toggle() should complete the todo")
	}
	if !s.Toggle(a.ID) || s.Todos[0].Completed {
		t.Error("second Toggle() should reopen the todo")
	}
	if s.Toggle("missing") {
		t.Error("Toggle() of unknown id should report false")
	}

	if !s.Select(b.ID) {
		t.Fatal("Select() should succeed")
	}
	if sel, ok := s.Selected(); !ok || sel.ID != b.ID {
		t.Errorf("Selected() = %+v, %v", sel, ok)
	}
	if s.Select("missing") {
		t.Error("Select() of unknown id should report false")
	}

	if !s.Remove(b.ID) {
		t.Fatal("Remove() should succeed")
	}
	if _, ok := s.Selected(); ok {
		t.Error("removing the selected todo should clear the selection")
	}
	if len(s.Todos) != 1 || s.Todos[0].ID != a.ID {
		t.Errorf("Todos = %+v, want only %s", s.Todos, a.ID)
	}

	s.Select(a.ID)
	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Error("ClearSelection() should clear")
	}
}

func TestState_Clone(t *testing.T) {
	var s State
	s.Add("one", time.Now())

	c := s.Clone()
	c.Todos[0].Text = "changed"

	if s.Todos[0].Text != "one" {
		t.Error("Clone() shares the todo slice")
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{DefaultKey(), "postfeed:todos:root"},
		{Key{Name: "root"}, "todos:root"},
		{Key{Namespace: "app:", Name: ""}, "app:todos:root"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}
