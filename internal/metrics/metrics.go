// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package metrics provides Prometheus instrumentation for the
// recommendation core: request throughput by path, interaction
// recording, vector refresh timing, and cache efficiency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRequests counts served recommendation lists by
	// path: "personalized" or "fallback".
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relevance_recommendation_requests_total",
			Help: "Total recommendation lists served, by ranking path",
		},
		[]string{"path"},
	)

	// InteractionsRecorded counts persisted interaction events by kind.
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relevance_interactions_recorded_total",
			Help: "Total interaction events persisted, by kind",
		},
		[]string{"kind"},
	)

	// InteractionRecordFailures counts appends that were logged and
	// swallowed.
	InteractionRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relevance_interaction_record_failures_total",
			Help: "Total interaction appends that failed and were suppressed",
		},
	)

	// VectorRefreshDuration times full-corpus TF-IDF refresh runs.
	VectorRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relevance_vector_refresh_duration_seconds",
			Help:    "Duration of full-corpus TF-IDF refresh runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// VectorRefreshDocuments counts documents processed per refresh
	// outcome: "ok" or "error".
	VectorRefreshDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relevance_vector_refresh_documents_total",
			Help: "Total documents processed by the vector refresh job",
		},
		[]string{"outcome"},
	)

	// CacheHitRate exposes the vector cache hit rate percentage.
	CacheHitRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relevance_cache_hit_rate_percent",
			Help: "Vector cache hit rate as a percentage",
		},
	)
)
