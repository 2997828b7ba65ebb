package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionLookups counts bearer-token resolutions by outcome.
	SessionLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "habitkit_session_lookups_total",
		Help: "Total number of session token lookups by outcome",
	}, []string{"outcome"})

	// HabitOperations counts habit lifecycle operations by kind.
	HabitOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "habitkit_habit_operations_total",
		Help: "Total number of habit operations by kind",
	}, []string{"operation"})

	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "habitkit_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus HTTP middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
