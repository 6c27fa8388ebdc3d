// Package metrics defines and registers the custom Prometheus metrics of the
// tracking aggregator. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init through promauto;
// HTTP request metrics and the /metrics endpoint come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Upstream provider ─────────────────────────────────────────────────────────

// UpstreamCallsTotal counts exchanges with the tracking provider.
// Labels:
//   - operation: "detect", "create", "get" or "couriers"
//   - outcome: "received" (any response body came back) or "transport_error"
var UpstreamCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_calls_total",
		Help:      "Total number of calls made to the upstream tracking provider.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamCallDuration measures round-trip latency of provider calls.
var UpstreamCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_call_duration_seconds",
		Help:      "Latency of upstream tracking provider calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Lookups ───────────────────────────────────────────────────────────────────

// LookupsTotal counts completed tracking lookups.
// Label:
//   - status: "held", "cleared", or "error"
var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of tracking lookups, by resulting clearance status.",
	},
	[]string{"status"},
)

// LookupFailuresTotal counts failed lookups by the upstream stage that broke.
// Label:
//   - stage: "input", "detect", "create", "get" or "internal"
var LookupFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_failures_total",
		Help:      "Total number of failed tracking lookups, by failing stage.",
	},
	[]string{"stage"},
)

// FetchSourceTotal counts where tracking data came from.
// Label:
//   - source: "create" (embedded in registration) or "get" (explicit retrieval)
var FetchSourceTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_source_total",
		Help:      "Total number of lookups by the provider call that supplied the data.",
	},
	[]string{"source"},
)

// ── Courier directory ─────────────────────────────────────────────────────────

// CourierCacheTotal counts courier directory cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var CourierCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courier_cache_total",
		Help:      "Total number of courier directory cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Background refresh ────────────────────────────────────────────────────────

// RefreshQueueDepth tracks pending refresh requests per dispatcher worker.
var RefreshQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_queue_depth",
		Help:      "Current number of refresh requests pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// RefreshSkippedTotal counts refreshes skipped because the tracking number
// was refreshed within the cooldown window.
var RefreshSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_skipped_total",
		Help:      "Total number of background refreshes skipped by the cooldown guard.",
	},
)
