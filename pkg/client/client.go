// Package client provides the HTTP client for the remote post collection:
// paged list requests and single item lookups.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/postfeed/pkg/feed"
)

// Prometheus metrics for client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postfeed_requests_total",
		Help: "Total requests to the post collection by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postfeed_request_duration_seconds",
		Help:    "Request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postfeed_errors_total",
		Help: "Total request errors by class",
	}, []string{"class"})
)

// Endpoint labels used for metrics and logs.
const (
	endpointList   = "list"
	endpointDetail = "detail"
)

// Client fetches pages and single items from the post collection.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the collection URL, e.g. https://jsonplaceholder.typicode.com/posts
	BaseURL string

	// User-Agent header sent with every request.
	UserAgent string

	// PageParam and LimitParam name the paging query parameters.
	PageParam  string
	LimitParam string

	// Timeout per request. No retries are made.
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		UserAgent:  "postfeed/0.1.0",
		PageParam:  "page",
		LimitParam: "limit",
		Timeout:    30 * time.Second,
	}
}

// New creates a new client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}

	if cfg.PageParam == "" {
		cfg.PageParam = "page"
	}
	if cfg.LimitParam == "" {
		cfg.LimitParam = "limit"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: base,
		config:  cfg,
		logger:  log.With().Str("component", "client").Logger(),
	}, nil
}

// FetchPage requests one page of the collection and decodes the JSON array.
// It implements pagination.PageFetcher.
func (c *Client) FetchPage(ctx context.Context, page, limit int) ([]feed.Item, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page=%d limit=%d", ErrInvalidPage, page, limit)
	}

	u := *c.baseURL
	q := u.Query()
	q.Set(c.config.PageParam, strconv.Itoa(page))
	q.Set(c.config.LimitParam, strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	var items []feed.Item
	if err := c.getJSON(ctx, endpointList, u.String(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []feed.Item{}
	}

	c.logger.Debug().
		Int("page", page).
		Int("limit", limit).
		Int("items", len(items)).
		Msg("Fetched page")

	return items, nil
}

// FetchItem requests a single item by id. A 404 yields an error wrapping
// ErrNotFound.
func (c *Client) FetchItem(ctx context.Context, id int64) (feed.Item, error) {
	u := c.baseURL.JoinPath(strconv.FormatInt(id, 10))

	var item feed.Item
	if err := c.getJSON(ctx, endpointDetail, u.String(), &item); err != nil {
		return feed.Item{}, err
	}
	return item, nil
}

// getJSON performs a GET request and decodes a 2xx JSON body into out.
// Every non-2xx status and every transport failure is returned as *APIError.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", rawURL).
		Msg("Executing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return &APIError{
			ErrorClass: ErrorClassNetwork,
			Endpoint:   endpoint,
			Message:    "request failed",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		errorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Request error")

		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Endpoint:   endpoint,
			Message:    resp.Status,
		}
		if resp.StatusCode == http.StatusNotFound && endpoint == endpointDetail {
			apiErr.Err = ErrNotFound
		}
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Malformed response body")
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassDecode,
			Endpoint:   endpoint,
			Message:    "decode response",
			Err:        err,
		}
	}

	return nil
}

// BaseURL returns the normalized collection URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}
