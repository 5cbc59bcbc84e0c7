// Package metrics defines and registers all custom Prometheus metrics for the
// connect API. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "connect"

// ── Signal metrics ────────────────────────────────────────────────────────────

// SignalsSentTotal counts successfully recorded signals.
// Label:
//   - signal: "interested" or "ignored"
var SignalsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_sent_total",
		Help:      "Total number of signals successfully recorded, by signal type.",
	},
	[]string{"signal"},
)

// SignalConflictsTotal counts interested signals rejected because the pair
// already had a live request.
var SignalConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signal_conflicts_total",
		Help:      "Total number of signals rejected by the pair-uniqueness invariant.",
	},
)

// RequestsReviewedTotal counts resolved reviews.
// Label:
//   - decision: "accepted" or "rejected"
var RequestsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_reviewed_total",
		Help:      "Total number of pending requests resolved, by decision.",
	},
	[]string{"decision"},
)

// ConnectionsMaterializedTotal counts connection facts written (idempotent
// replays included).
var ConnectionsMaterializedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connections_materialized_total",
		Help:      "Total number of connection materializations performed.",
	},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// FeedServedTotal counts feed batches computed from the ledger (cache misses
// that went on to produce a batch).
var FeedServedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_served_total",
		Help:      "Total number of feed batches computed from the ledger.",
	},
)

// FeedCacheTotal counts feed cache lookups.
// Label:
//   - result: "hit" or "miss"
var FeedCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_cache_total",
		Help:      "Total number of feed cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// EventsQueueDepth tracks the number of audit events waiting in each recorder
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of audit events pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// EventsDroppedTotal counts audit events dropped because a worker channel was
// full. The audit trail is best-effort; ledger mutations never block on it.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of audit events dropped due to recorder backpressure.",
	},
)
