// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cookbook_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecipesCreatedTotal counts recipes published since process start.
	RecipesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cookbook_recipes_created_total",
		Help: "Total number of recipes created",
	})

	// LikesTotal counts like and unlike operations.
	LikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_likes_total",
		Help: "Total number of like operations by action",
	}, []string{"action"})

	// CommentsCreatedTotal counts comments posted since process start.
	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cookbook_comments_created_total",
		Help: "Total number of comments created",
	})

	// ImageUploadsTotal counts recipe image uploads by outcome.
	ImageUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cookbook_image_uploads_total",
		Help: "Total number of recipe image uploads by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
