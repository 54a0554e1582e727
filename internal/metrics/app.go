package metrics

import (
	"time"

	"github.com/renolab/renolab/internal/observability"
)

// Application-level metrics following Prometheus conventions
const (
	EstimationsTotal   = "app_estimations_total"
	EstimationDuration = "app_estimation_duration_ms"

	RateLimitDecisionsTotal = "app_rate_limit_decisions_total"
	RateLimitTrackedKeys    = "app_rate_limit_tracked_keys"

	SubscriptionsTotal = "app_subscriptions_total"

	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	ServerStartTime = "app_server_start_time_seconds"
)

// Estimation outcomes.
const (
	StatusOK            = "ok"
	StatusInvalid       = "invalid"
	StatusUnprocessable = "unprocessable"
)

// RecordEstimation records one estimator run by kind and outcome.
func RecordEstimation(kind, status string, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(EstimationsTotal, 1, map[string]string{
		"kind":   kind,
		"status": status,
	})
	_ = observability.TelemetrySystem.Histogram(EstimationDuration, duration, map[string]string{
		"kind": kind,
	})
}

// RecordRateLimitDecision records whether a request was admitted by a policy.
func RecordRateLimitDecision(policy string, allowed bool) {
	decision := "allowed"
	if !allowed {
		decision = "rejected"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(RateLimitDecisionsTotal, 1, map[string]string{
			"policy":   policy,
			"decision": decision,
		})
	}
}

// SetRateLimitTrackedKeys reports how many client windows the limiter holds.
func SetRateLimitTrackedKeys(count int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(RateLimitTrackedKeys, float64(count), nil)
	}
}

// RecordSubscription records a newsletter signup; duplicates are counted separately.
func RecordSubscription(created bool) {
	result := "created"
	if !created {
		result = "duplicate"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(SubscriptionsTotal, 1, map[string]string{
			"result": result,
		})
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(ServerStartTime, float64(timestamp), nil)
	}
}
