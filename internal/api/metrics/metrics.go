// Package metrics defines and registers the custom Prometheus metrics of the
// board. It is the single source of truth for metric names, labels, and help
// strings. All metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "askboard"

// ── Content metrics ───────────────────────────────────────────────────────────

// ItemsCreatedTotal counts created content.
// Label:
//   - kind: "question" or "answer"
var ItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of questions and answers created.",
	},
	[]string{"kind"},
)

// VotesTotal counts well-formed vote requests the board accepted. A vote on
// an id that no longer exists is accepted as a no-op and still counted.
// Labels:
//   - target: "question" or "answer"
//   - direction: "up" or "down"
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of accepted vote requests, by target kind and direction.",
	},
	[]string{"target", "direction"},
)

// DeclinedTotal counts requests the board refused without changing state.
// Label:
//   - reason: "empty_text", "not_owner", "invalid_direction"
var DeclinedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "declined_total",
		Help:      "Total number of declined operations, by reason.",
	},
	[]string{"reason"},
)

// ── Change feed metrics ───────────────────────────────────────────────────────

// ChangesPublishedTotal counts change notifications handed to stream clients.
// Label:
//   - key: the persisted document that changed
var ChangesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "changes_published_total",
		Help:      "Total number of store change notifications published.",
	},
	[]string{"key"},
)

// StreamSubscribers tracks the number of connected change stream clients.
var StreamSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_subscribers",
		Help:      "Current number of connected change stream clients.",
	},
)
