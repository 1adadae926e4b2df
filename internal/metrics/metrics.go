// Package metrics registers the Prometheus collectors shared by both
// services. Everything registers against the default registry so
// promhttp.Handler() serves it directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by route, method, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_http_requests_total",
			Help: "Total HTTP requests handled by the API service.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobhunt_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// TasksProcessedTotal counts worker task executions by type and outcome.
	TasksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_tasks_processed_total",
			Help: "Background tasks processed, by task type and outcome.",
		},
		[]string{"task_type", "outcome"},
	)

	// TaskDuration observes task execution time by type.
	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobhunt_task_duration_seconds",
			Help:    "Background task execution time in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"task_type"},
	)

	// ErrorsTotal counts catalog errors by code and business impact.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_errors_total",
			Help: "Application errors by catalog code and business impact.",
		},
		[]string{"code", "business_impact"},
	)

	// JobsScrapedTotal counts scraped postings by platform.
	JobsScrapedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_jobs_scraped_total",
			Help: "Job postings fetched from source platforms.",
		},
		[]string{"platform"},
	)

	// JobsDeduplicatedTotal counts postings dropped as duplicates.
	JobsDeduplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobhunt_jobs_deduplicated_total",
			Help: "Job postings dropped by the deduplicator.",
		},
	)

	// AnalysesCompletedTotal counts finished analyses by status.
	AnalysesCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_analyses_total",
			Help: "Match analyses finished, by final status.",
		},
		[]string{"status"},
	)

	// CacheOperationsTotal counts Redis cache hits and misses.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_cache_operations_total",
			Help: "Cache operations by kind (hit, miss, set, invalidate).",
		},
		[]string{"kind"},
	)
)
