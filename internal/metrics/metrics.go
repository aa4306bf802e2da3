// Package metrics exposes Prometheus instrumentation for the matching engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_extractions_total",
			Help: "Total number of profile extractions executed, by document kind",
		},
		[]string{"kind"},
	)

	ProfileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matcher_profile_cache_hits_total",
			Help: "Total number of profile cache hits by fingerprint",
		},
	)

	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_match_requests_total",
			Help: "Total number of match runs, by outcome",
		},
		[]string{"outcome"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matcher_match_duration_seconds",
			Help: "Duration of a full match run across all job postings",
		},
	)

	JobsFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matcher_jobs_fetched_total",
			Help: "Total number of job postings fetched from the acquisition source",
		},
	)
)
