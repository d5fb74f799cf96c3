package pagination

import (
	"github.com/Sternrassler/postfeed/pkg/feed"
)

// Phase is the in-flight state of the coordinator. Exactly one phase is
// active at a time, so "loading initial" and "loading more" can never both
// be true.
type Phase int

const (
	// PhaseIdle means no fetch is outstanding.
	PhaseIdle Phase = iota

	// PhaseLoadingInitial means page 1 is in flight.
	PhaseLoadingInitial

	// PhaseLoadingMore means a page after the first is in flight.
	PhaseLoadingMore
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingInitial:
		return "loading_initial"
	case PhaseLoadingMore:
		return "loading_more"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the fetch state published to rendering
// surfaces. Mutating a Snapshot never affects the coordinator.
type Snapshot struct {
	// Items in page order, then within-page order.
	Items []feed.Item

	// CurrentPage is the last page merged successfully (1 before any fetch).
	CurrentPage int

	// HasMore reports whether a further page is believed to exist.
	HasMore bool

	// Phase is the in-flight state.
	Phase Phase

	// Loaded is true once page 1 has been merged at least once.
	Loaded bool

	// LastErr is the error of the most recent fetch, nil after a success.
	LastErr error
}

// IsLoadingInitial reports whether page 1 is in flight.
func (s Snapshot) IsLoadingInitial() bool {
	return s.Phase == PhaseLoadingInitial
}

// IsLoadingMore reports whether a subsequent page is in flight.
func (s Snapshot) IsLoadingMore() bool {
	return s.Phase == PhaseLoadingMore
}

// Exhausted reports the terminal condition: no further page will be
// requested for this session.
func (s Snapshot) Exhausted() bool {
	return !s.HasMore && s.Phase == PhaseIdle
}

// fetchState is the mutable state owned by the coordinator.
type fetchState struct {
	items       []feed.Item
	currentPage int
	hasMore     bool
	phase       Phase
	loaded      bool
	lastErr     error
}

func newFetchState() fetchState {
	return fetchState{
		items:       []feed.Item{},
		currentPage: 1,
		hasMore:     true,
		phase:       PhaseIdle,
	}
}

// snapshot copies the state, including the item slice.
func (s *fetchState) snapshot() Snapshot {
	items := make([]feed.Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items:       items,
		CurrentPage: s.currentPage,
		HasMore:     s.hasMore,
		Phase:       s.phase,
		Loaded:      s.loaded,
		LastErr:     s.lastErr,
	}
}

// merge folds a successfully fetched page into the state.
func (s *fetchState) merge(page int, result []feed.Item, pageSize int) {
	if page == 1 {
		s.items = make([]feed.Item, len(result))
		copy(s.items, result)
		s.loaded = true
	} else {
		s.items = append(s.items, result...)
	}
	s.hasMore = len(result) == pageSize
	s.currentPage = page
	s.lastErr = nil
}
