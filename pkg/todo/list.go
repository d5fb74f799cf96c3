package todo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// List is the persisted todo reducer. Every successful change is written to
// the store; a failed write is returned but the in-memory change is kept.
type List struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	state State
}

// Open loads the stored state and returns a list backed by store.
func Open(ctx context.Context, store Store) (*List, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	return &List{
		store:  store,
		logger: log.With().Str("component", "todo").Logger(),
		now:    time.Now,
		state:  state,
	}, nil
}

// State returns a copy of the current state.
func (l *List) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Add appends a todo. Blank text is ignored and reports false.
func (l *List) Add(ctx context.Context, text string) (Todo, bool, error) {
	var added Todo
	var ok bool
	err := l.apply(ctx, "add", func(s *State) bool {
		added, ok = s.Add(text, l.now())
		return ok
	})
	return added, ok, err
}

// Toggle flips the completed flag of id.
func (l *List) Toggle(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := l.apply(ctx, "toggle", func(s *State) bool {
		ok = s.Toggle(id)
		return ok
	})
	return ok, err
}

// Remove deletes id.
func (l *List) Remove(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := l.apply(ctx, "remove", func(s *State) bool {
		ok = s.Remove(id)
		return ok
	})
	return ok, err
}

// Select marks id as selected.
func (l *List) Select(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := l.apply(ctx, "select", func(s *State) bool {
		ok = s.Select(id)
		return ok
	})
	return ok, err
}

// ClearSelection removes the selection.
func (l *List) ClearSelection(ctx context.Context) error {
	return l.apply(ctx, "clear_selection", func(s *State) bool {
		changed := s.SelectedID != ""
		s.ClearSelection()
		return changed
	})
}

// apply runs fn on the state and persists it when fn reports a change.
func (l *List) apply(ctx context.Context, action string, fn func(*State) bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !fn(&l.state) {
		l.logger.Debug().Str("action", action).Msg("No change")
		return nil
	}

	if err := l.store.Save(ctx, l.state); err != nil {
		l.logger.Warn().Err(err).Str("action", action).Msg("Failed to persist todos")
		return fmt.Errorf("persist todos after %s: %w", action, err)
	}

	l.logger.Debug().
		Str("action", action).
		Int("todos", len(l.state.Todos)).
		Msg("Todos persisted")
	return nil
}
