// Package metrics defines the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reaction metrics
var (
	// ReactionsAppliedTotal tracks applied mutations by kind and intent.
	ReactionsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reactions_applied_total",
			Help: "Total reaction mutations applied by kind and intent",
		},
		[]string{"kind", "intent"},
	)

	// ReactionResetsTotal counts administrative reset-all invocations.
	ReactionResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_resets_total",
			Help: "Total administrative reset-all operations",
		},
	)

	// ReactionResetItems counts items zeroed by reset-all operations.
	ReactionResetItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_reset_items_total",
			Help: "Total items zeroed by reset-all operations",
		},
	)
)

// Redis operation metrics
var (
	// RedisOpsTotal tracks total Redis operations by command and status.
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds.
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors counts failed Redis connection attempts.
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total failed Redis connection attempts",
		},
	)
)

// Circuit breaker metrics
var (
	// CircuitBreakerState reports the current breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	// CircuitBreakerStateChanges counts breaker transitions by new state.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"component", "state"},
	)
)
