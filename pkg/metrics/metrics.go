// Package metrics defines and registers the custom Prometheus metrics of the
// piracy detector. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry when the
// package is loaded; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "piracy"

// ── Scan metrics ──────────────────────────────────────────────────────────────

// ScansTotal counts completed scan requests.
// Label:
//   - result: "detected", "clean" or "error" (page could not be fetched)
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of page scans, by outcome.",
	},
	[]string{"result"},
)

// FetchDuration measures how long fetching the remote page takes, failures included.
var FetchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of remote page fetches.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SentencesMatched tracks how many sentences matched per successful scan.
var SentencesMatched = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sentences_matched",
		Help:      "Number of matching sentences per successful scan.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "exists" or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "user_not_found", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
