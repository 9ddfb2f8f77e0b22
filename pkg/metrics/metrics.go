// Package metrics provides the central Prometheus registry reference for
// companyfetch. All metrics are defined in their respective packages
// (client, batch, cache) via promauto to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by companyfetch.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - companyfetch_requests_total{status} (Counter): Requests by HTTP status
//   - companyfetch_request_duration_seconds (Histogram): Per-call duration
//   - companyfetch_errors_total{kind} (Counter): Failures by kind
//     (transport, http_status, decode, unexpected)
//
// Batch Metrics (pkg/batch):
//   - companyfetch_batch_groups_total (Counter): Groups processed
//   - companyfetch_batch_items_total{result} (Counter): Items by success/failure
//   - companyfetch_batch_group_duration_seconds (Histogram): Wall time per group
//
// Cache Metrics (pkg/cache):
//   - companyfetch_cache_hits_total (Counter): Payload cache hits
//   - companyfetch_cache_misses_total (Counter): Payload cache misses
//   - companyfetch_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Failure rate by kind
//   rate(companyfetch_errors_total[5m])
//
//   # Cache hit rate
//   sum(rate(companyfetch_cache_hits_total[5m])) /
//   (sum(rate(companyfetch_cache_hits_total[5m])) + sum(rate(companyfetch_cache_misses_total[5m])))
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(companyfetch_request_duration_seconds_bucket[5m]))
