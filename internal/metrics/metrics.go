package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Store operations
	DBOpCreateSessions     = "create_sessions"
	DBOpGetSession         = "get_session"
	DBOpUpdateCalendar     = "update_calendar"
	DBOpUpdateWeather      = "update_weather"
	DBOpUpdateScheduled    = "update_time_scheduled"
	DBOpMarkCompleted      = "mark_completed"
	DBOpStoreAnalysis      = "store_analysis"
	DBOpStoreSegmentedLaps = "store_segmented_laps"
	DBOpPutActivity        = "put_activity"
	DBOpGetActivity        = "get_activity"

	// Cache results
	CacheHit  = "hit"
	CacheMiss = "miss"

	// Cache operations
	CacheOpSession = "session"
	CacheOpWeekly  = "weekly"

	// Session states
	SessionStatePlanned   = "planned"
	SessionStateCompleted = "completed"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
)

// Database Metrics
var (
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Database operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	DBOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_operation_errors_total",
			Help: "Total number of database operation errors",
		},
		[]string{"operation"},
	)
)

// Business Metrics
var (
	SessionsImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_imported_total",
			Help: "Total number of session records created from plan imports",
		},
	)

	SegmentationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmentation_runs_total",
			Help: "Total number of pace segmentation runs by result",
		},
		[]string{"result"},
	)

	SegmentationLapCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "segmentation_lap_count",
			Help:    "Number of laps per segmentation run",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 16, 24, 32, 48, 64},
		},
	)

	WeeklySummariesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weekly_summaries_total",
			Help: "Total number of weekly summaries computed",
		},
	)
)

// Cache Metrics
var (
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups by operation and result",
		},
		[]string{"operation", "result"},
	)
)

// Training State Metrics (collected periodically from the database)
var (
	SessionsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "training_sessions",
			Help: "Current number of session records by state",
		},
		[]string{"state"},
	)

	ActivitiesArchived = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activities_archived",
			Help: "Current number of archived activity records",
		},
	)
)
