// Package metrics exposes the Prometheus registry used by postfeed.
// All metrics are defined in their respective packages (client, pagination,
// notify, todo) and registered via promauto.
//
// This package provides the HTTP handler and a reference for all metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by postfeed.
var Registry = prometheus.DefaultRegisterer

// Handler serves every registered metric in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - postfeed_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - postfeed_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - postfeed_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Pagination Metrics (pkg/pagination):
//   - postfeed_page_requests_total{outcome} (Counter): Fetch triggers by outcome
//     (fetched, failed, skipped, exhausted, invalid, denied)
//   - postfeed_page_fetch_duration_seconds (Histogram): Time spent in the page fetcher
//   - postfeed_items_loaded{channel} (Gauge): Items held by the coordinator of a channel after its last merge
//
// Notification Metrics (pkg/notify):
//   - postfeed_notifications_total{channel} (Counter): Notifications delivered by channel
//
// Todo Store Metrics (pkg/todo):
//   - postfeed_todo_store_ops_total{backend, operation} (Counter): Store loads and saves
//   - postfeed_todo_store_errors_total{backend, operation} (Counter): Failed store operations
//
// Example Prometheus Queries:
//
//	# Skipped triggers (single-flight guard hits)
//	rate(postfeed_page_requests_total{outcome="skipped"}[5m])
//
//	# Page failure ratio
//	sum(rate(postfeed_page_requests_total{outcome="failed"}[5m])) /
//	sum(rate(postfeed_page_requests_total{outcome=~"fetched|failed"}[5m]))
//
//	# P95 Request Latency
//	histogram_quantile(0.95, rate(postfeed_request_duration_seconds_bucket[5m]))
