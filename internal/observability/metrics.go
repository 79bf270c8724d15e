package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "creativeapp_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FollowTransitions counts follow-graph operations by outcome.
	FollowTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creativeapp_follow_transitions_total",
		Help: "Total number of follow edge transitions by outcome",
	}, []string{"outcome"})

	// VoteChanges counts voter-set mutations by target kind and action.
	VoteChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creativeapp_vote_changes_total",
		Help: "Total number of voter set changes",
	}, []string{"target", "action"})

	// UserRegistrations counts created accounts by kind.
	UserRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creativeapp_user_registrations_total",
		Help: "Total number of created user accounts",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
