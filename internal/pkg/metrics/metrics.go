// Package metrics defines and registers all custom Prometheus metrics for the
// delivery zones API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "delivery_zones"

// ── Geocoding metrics ─────────────────────────────────────────────────────────

// GeocodeRequestsTotal counts calls made to the geocoding provider.
// Labels:
//   - operation: "geocode", "autocomplete" or "place_details"
//   - outcome: "ok" or a failure kind (e.g. "not_found", "quota_exceeded")
var GeocodeRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_requests_total",
		Help:      "Total number of geocoding provider calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GeocodeRequestDuration measures provider round-trip latency.
// Label:
//   - operation: "geocode", "autocomplete" or "place_details"
var GeocodeRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geocode_request_duration_seconds",
		Help:      "Duration of geocoding provider calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// GeocodeCacheTotal counts geocode cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var GeocodeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_total",
		Help:      "Total number of geocode cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// SuggestionDegradedTotal counts autocomplete suggestions returned without
// details because the per-suggestion lookup failed.
var SuggestionDegradedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestion_degraded_total",
		Help:      "Total number of autocomplete suggestions degraded to raw text.",
	},
)

// ── Zone metrics ──────────────────────────────────────────────────────────────

// ZoneMatchesTotal counts zone match decisions.
// Labels:
//   - day: the queried week day
//   - result: "served" or "not_served"
var ZoneMatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zone_matches_total",
		Help:      "Total number of zone match decisions, by day and result.",
	},
	[]string{"day", "result"},
)

// VerifyDuration measures end-to-end verify latency.
// Label:
//   - outcome: "served", "not_served", "user_error", "unavailable", "configuration"
var VerifyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "verify_duration_seconds",
		Help:      "Duration of delivery area verification from request to zone result.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
