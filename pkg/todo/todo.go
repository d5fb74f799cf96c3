package todo

import (
	"strings"
	"time"

	"github.com/rs/xid"
)

// Todo is one entry of the list.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the whole persisted todo state.
type State struct {
	Todos      []Todo `json:"todos"`
	SelectedID string `json:"selected_id,omitempty"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	todos := make([]Todo, len(s.Todos))
	copy(todos, s.Todos)
	return State{Todos: todos, SelectedID: s.SelectedID}
}

// Selected returns the selected todo, if any.
func (s *State) Selected() (Todo, bool) {
	if s.SelectedID == "" {
		return Todo{}, false
	}
	if i := s.index(s.SelectedID); i >= 0 {
		return s.Todos[i], true
	}
	return Todo{}, false
}

// Add appends a new, open todo. Text is trimmed; blank text is ignored.
func (s *State) Add(text string, now time.Time) (Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, false
	}
	t := Todo{
		ID:        xid.NewWithTime(now).String(),
		Text:      text,
		CreatedAt: now,
	}
	s.Todos = append(s.Todos, t)
	return t, true
}

// Toggle flips the completed flag of id.
func (s *State) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.Todos[i].Completed = !s.Todos[i].Completed
	return true
}

// Remove deletes id, clearing the selection when it pointed at id.
func (s *State) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.Todos = append(s.Todos[:i], s.Todos[i+1:]...)
	if s.SelectedID == id {
		s.SelectedID = ""
	}
	return true
}

// Select marks id as the selected todo.
func (s *State) Select(id string) bool {
	if s.index(id) < 0 {
		return false
	}
	s.SelectedID = id
	return true
}

// ClearSelection removes the selection.
func (s *State) ClearSelection() {
	s.SelectedID = ""
}

func (s *State) index(id string) int {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			return i
		}
	}
	return -1
}
