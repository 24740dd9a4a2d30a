package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artspace_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedQueries counts feed page queries by feed mode and ordering.
	FeedQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_feed_queries_total",
		Help: "Total number of feed page queries by mode and ordering",
	}, []string{"mode", "sort"})

	// ToggleOperations counts interaction toggles by kind and resulting action.
	ToggleOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_toggle_operations_total",
		Help: "Total number of like/save/follow toggles by kind and resulting action",
	}, []string{"kind", "action"})

	// NotificationsPublished counts notification publishes by kind.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_notifications_published_total",
		Help: "Total number of notifications published by kind",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
