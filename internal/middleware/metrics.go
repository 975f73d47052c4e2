package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanvault_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LikeToggles counts like toggle outcomes.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanvault_like_toggles_total",
		Help: "Total number of like toggles by outcome",
	}, []string{"outcome"})

	// CheckoutSessions counts checkout sessions created by kind.
	CheckoutSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanvault_checkout_sessions_total",
		Help: "Total number of checkout sessions created",
	}, []string{"kind"})

	// WebhookEvents counts billing webhook events by result.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanvault_webhook_events_total",
		Help: "Total number of billing webhook events processed",
	}, []string{"result"})

	// ActiveWebSockets tracks currently open feed websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fanvault_active_websockets",
		Help: "Number of currently open websocket connections",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
