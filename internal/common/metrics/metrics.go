// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job worker metrics.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Chat pipeline metrics.
var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Answered chat questions by intent and data source",
		},
		[]string{"intent", "data_source"},
	)

	ChatRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_request_duration_seconds",
			Help:    "End-to-end classify, resolve and assemble latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	DataTierOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_tier_outcomes_total",
			Help: "Data source tier attempts by domain, tier and outcome",
		},
		[]string{"domain", "tier", "outcome"},
	)

	RateLimitWaits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_waits_total",
			Help: "Times a caller had to wait for an API rate-limit window",
		},
		[]string{"api"},
	)

	SentimentLabels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_labels_total",
			Help: "Sentiment analysis results by label",
		},
		[]string{"label"},
	)

	SurveySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Stored survey submissions by channel",
		},
		[]string{"channel"},
	)
)
