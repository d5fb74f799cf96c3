// Package selection tracks the single selected item of a list.
package selection

import "sync"

// Selection holds at most one selected item id. Selecting the current id
// again clears it. The zero value has nothing selected.
type Selection struct {
	mu       sync.Mutex
	id       int64
	selected bool
}

// Toggle selects id, or clears the selection when id is already selected.
// It returns the selection after the change.
func (s *Selection) Toggle(id int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected && s.id == id {
		s.id, s.selected = 0, false
	} else {
		s.id, s.selected = id, true
	}
	return s.id, s.selected
}

// Selected returns the selected id and whether anything is selected.
func (s *Selection) Selected() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.selected
}

// IsSelected reports whether id is the selected item.
func (s *Selection) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected && s.id == id
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.selected = 0, false
}
