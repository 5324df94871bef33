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
		Name: "creationity_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "creationity_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ContentCreatedTotal counts created content items by type.
	ContentCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creationity_content_created_total",
		Help: "Total number of content items created by type",
	}, []string{"type"})

	// LikeTogglesTotal counts like toggles by resulting action.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creationity_like_toggles_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// ContentViewsTotal counts recorded content views by type.
	ContentViewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creationity_content_views_total",
		Help: "Total number of content views recorded by type",
	}, []string{"type"})
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
