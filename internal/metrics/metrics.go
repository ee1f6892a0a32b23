// Package metrics exposes Prometheus instrumentation for the scoring API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoringRequests counts scoring runs by entry point.
	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnpl_scoring_requests_total",
			Help: "Total number of risk scoring runs",
		},
		[]string{"source"},
	)

	// ScoringDecisions counts outcomes by decision and risk category.
	ScoringDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnpl_scoring_decisions_total",
			Help: "Total scoring outcomes by decision and risk category",
		},
		[]string{"decision", "category"},
	)

	// ScoringDuration tracks the latency of a full scoring run.
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "bnpl_scoring_duration_seconds",
			Help: "Duration of a risk scoring run in seconds",
		},
	)

	// MatchRecommendations tracks how many products each match run returned.
	MatchRecommendations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bnpl_match_recommendations",
			Help:    "Number of recommendations returned per product match",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
	)
)
