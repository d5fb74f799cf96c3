// Package detail holds the state of the detail pane shown for the selected
// item.
package detail

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/postfeed/pkg/feed"
)

// ItemFetcher looks up a single item by id.
type ItemFetcher interface {
	FetchItem(ctx context.Context, id int64) (feed.Item, error)
}

// View is the detail pane for one list item. Details are fetched on demand
// and dropped again when hidden.
type View struct {
	item    feed.Item
	fetcher ItemFetcher
	logger  zerolog.Logger

	mu      sync.Mutex
	shown   bool
	details *feed.Item
	lastErr error
}

// NewView creates a hidden detail view for item.
func NewView(item feed.Item, fetcher ItemFetcher) *View {
	return &View{
		item:    item,
		fetcher: fetcher,
		logger:  log.With().Str("component", "detail").Int64("item_id", item.ID).Logger(),
	}
}

// Item returns the list item the view is bound to.
func (v *View) Item() feed.Item {
	return v.item
}

// Toggle hides the details when shown; otherwise it fetches them and shows
// them. A failed fetch is logged and leaves the view hidden.
func (v *View) Toggle(ctx context.Context) error {
	v.mu.Lock()
	if v.shown {
		v.shown = false
		v.details = nil
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	details, err := v.fetcher.FetchItem(ctx, v.item.ID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.lastErr = err
		v.logger.Error().Err(err).Msg("Detail fetch failed")
		return err
	}
	v.details = &details
	v.shown = true
	v.lastErr = nil
	return nil
}

// Shown reports whether details are visible.
func (v *View) Shown() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shown
}

// Details returns the fetched item while shown.
func (v *View) Details() (feed.Item, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.shown || v.details == nil {
		return feed.Item{}, false
	}
	return *v.details, true
}

// Err returns the error of the last failed fetch.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
