package pagination

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/postfeed/pkg/feed"
	"github.com/Sternrassler/postfeed/pkg/permission"
)

// Notification messages emitted around every fetch.
const (
	MessageFetchStarted   = "FETCHING DATA"
	MessageFetchCompleted = "FETCHING DATA COMPLETE"
)

// Prometheus metrics for the fetch coordinator.
var (
	pageRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postfeed_page_requests_total",
		Help: "Page requests by outcome (fetched, failed, skipped, exhausted, invalid, denied)",
	}, []string{"outcome"})

	pageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "postfeed_page_fetch_duration_seconds",
		Help:    "Duration of page fetches including merge",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	itemsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "postfeed_items_loaded",
		Help: "Number of items currently held by the coordinator of each notification channel",
	}, []string{"channel"})
)

// Config holds coordinator configuration.
type Config struct {
	// PageSize is the number of items requested per page.
	PageSize int

	// ChannelID is passed to the notifier with every message.
	ChannelID string

	// FetchRegardlessOfPermission makes Mount fetch page 1 even when the
	// permission collaborator does not grant.
	FetchRegardlessOfPermission bool
}

// DefaultConfig returns the default configuration (page size 10).
func DefaultConfig() Config {
	return Config{
		PageSize:                    10,
		ChannelID:                   "default-channel-id",
		FetchRegardlessOfPermission: true,
	}
}

// PageFetcher loads one page of the remote collection.
type PageFetcher interface {
	// FetchPage returns the items of page (1-based) with at most limit items.
	FetchPage(ctx context.Context, page, limit int) ([]feed.Item, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, page, limit int) ([]feed.Item, error)

// FetchPage implements PageFetcher.
func (f PageFetcherFunc) FetchPage(ctx context.Context, page, limit int) ([]feed.Item, error) {
	return f(ctx, page, limit)
}

// Notifier receives fire-and-forget progress messages.
type Notifier interface {
	Notify(channelID, message string)
}

// Outcome describes what a trigger did.
type Outcome int

const (
	// OutcomeFetched means a page was fetched and merged.
	OutcomeFetched Outcome = iota

	// OutcomeFailed means a page was requested but the fetch failed.
	OutcomeFailed

	// OutcomeSkipped means the single-flight guard absorbed the trigger.
	OutcomeSkipped

	// OutcomeExhausted means no further pages exist.
	OutcomeExhausted

	// OutcomeInvalid means the page number was below 1.
	OutcomeInvalid

	// OutcomeDenied means Mount did not fetch because permission was denied.
	OutcomeDenied
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeFetched:
		return "fetched"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Coordinator owns the fetch state of one list and serializes page fetches.
// It is safe for concurrent use.
type Coordinator struct {
	fetcher  PageFetcher
	notifier Notifier
	config   Config
	logger   zerolog.Logger

	// mu guards state, mounted and subscribers. It is never held while the
	// fetcher runs.
	mu          sync.Mutex
	state       fetchState
	mounted     bool
	subscribers []func(Snapshot)

	// pending holds published snapshots not yet delivered, in transition
	// order. delivering is set while one goroutine drains it. Both are
	// guarded by mu, which is released around every subscriber call.
	pending    []Snapshot
	delivering bool
}

// NewCoordinator creates a coordinator in the Idle state with page 1 defaults.
// notifier may be nil.
func NewCoordinator(fetcher PageFetcher, notifier Notifier, config Config) *Coordinator {
	if fetcher == nil {
		panic("page fetcher cannot be nil")
	}
	if config.PageSize <= 0 {
		config.PageSize = 10
	}
	if config.ChannelID == "" {
		config.ChannelID = "default-channel-id"
	}

	return &Coordinator{
		fetcher:  fetcher,
		notifier: notifier,
		config:   config,
		logger:   log.With().Str("component", "pagination").Logger(),
		state:    newFetchState(),
	}
}

// Config returns the effective configuration.
func (c *Coordinator) Config() Config {
	return c.config
}

// Snapshot returns a copy of the current fetch state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Subscribe registers fn to receive a snapshot after every state transition.
// Snapshots are delivered one at a time in transition order, without any
// coordinator lock held, so fn may call Snapshot. Delivery happens on the
// goroutine that caused the transition unless another goroutine is already
// delivering, in which case that goroutine delivers it.
func (c *Coordinator) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Mount consults the permission collaborator once and then requests page 1.
// A denied or failed permission only prevents the fetch when
// FetchRegardlessOfPermission is false. Subsequent calls are no-ops.
func (c *Coordinator) Mount(ctx context.Context, perms permission.Service) Outcome {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return c.record(OutcomeSkipped)
	}
	c.mounted = true
	c.mu.Unlock()

	verdict, err := permission.Resolve(ctx, perms)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Permission check failed")
	}
	c.logger.Info().
		Str("verdict", verdict.String()).
		Bool("fetch_regardless", c.config.FetchRegardlessOfPermission).
		Msg("Permission resolved")

	if verdict != permission.Granted && !c.config.FetchRegardlessOfPermission {
		return c.record(OutcomeDenied)
	}

	return c.RequestPage(ctx, 1)
}

// Refresh re-requests page 1, replacing the list on success.
func (c *Coordinator) Refresh(ctx context.Context) Outcome {
	return c.RequestPage(ctx, 1)
}

// OnEndReached is the "near end of list" signal. It requests the page after
// CurrentPage while more pages exist and no page is loading. Until page 1 has
// been merged it re-requests page 1 instead.
func (c *Coordinator) OnEndReached(ctx context.Context) Outcome {
	c.mu.Lock()
	hasMore := c.state.hasMore
	phase := c.state.phase
	next := c.state.currentPage + 1
	if !c.state.loaded {
		next = 1
	}
	c.mu.Unlock()

	if !hasMore {
		return c.record(OutcomeExhausted)
	}
	if phase != PhaseIdle {
		return c.record(OutcomeSkipped)
	}

	return c.RequestPage(ctx, next)
}

// RequestPage fetches page and merges the result. It blocks until the fetch
// settles. If a fetch is already in flight the call returns OutcomeSkipped
// immediately without contacting the fetcher.
func (c *Coordinator) RequestPage(ctx context.Context, page int) Outcome {
	if page < 1 {
		c.logger.Warn().Int("page", page).Msg("Ignoring request for invalid page")
		return c.record(OutcomeInvalid)
	}

	c.mu.Lock()
	if c.state.phase != PhaseIdle {
		inFlight := c.state.phase
		c.mu.Unlock()
		c.logger.Debug().
			Int("page", page).
			Str("phase", inFlight.String()).
			Msg("Fetch already in flight, skipping")
		return c.record(OutcomeSkipped)
	}
	if page == 1 {
		c.state.phase = PhaseLoadingInitial
	} else {
		c.state.phase = PhaseLoadingMore
	}
	c.publishAndUnlock()

	c.notify(MessageFetchStarted)

	start := time.Now()
	result, err := c.fetcher.FetchPage(ctx, page, c.config.PageSize)

	c.mu.Lock()
	if err != nil {
		c.state.lastErr = err
	} else {
		c.state.merge(page, result, c.config.PageSize)
	}
	c.state.phase = PhaseIdle
	total := len(c.state.items)
	hasMore := c.state.hasMore
	c.publishAndUnlock()

	pageFetchDuration.Observe(time.Since(start).Seconds())
	c.notify(MessageFetchCompleted)

	if err != nil {
		c.logger.Error().
			Err(err).
			Int("page", page).
			Dur("duration", time.Since(start)).
			Msg("Page fetch failed")
		return c.record(OutcomeFailed)
	}

	itemsLoaded.WithLabelValues(c.config.ChannelID).Set(float64(total))
	c.logger.Info().
		Int("page", page).
		Int("page_items", len(result)).
		Int("total_items", total).
		Bool("has_more", hasMore).
		Dur("duration", time.Since(start)).
		Msg("Page merged")

	return c.record(OutcomeFetched)
}

// publishAndUnlock queues a snapshot of the state, releases mu and delivers
// queued snapshots to subscribers unless another goroutine is already doing
// so. The caller must hold mu.
func (c *Coordinator) publishAndUnlock() {
	if len(c.subscribers) == 0 {
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, c.state.snapshot())
	if c.delivering {
		c.mu.Unlock()
		return
	}

	c.delivering = true
	for len(c.pending) > 0 {
		snap := c.pending[0]
		c.pending = c.pending[1:]
		subs := c.subscribers
		c.mu.Unlock()

		for _, fn := range subs {
			fn(snap)
		}

		c.mu.Lock()
	}
	c.pending = nil
	c.delivering = false
	c.mu.Unlock()
}

func (c *Coordinator) notify(message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(c.config.ChannelID, message)
}

func (c *Coordinator) record(o Outcome) Outcome {
	pageRequestsTotal.WithLabelValues(o.String()).Inc()
	return o
}
