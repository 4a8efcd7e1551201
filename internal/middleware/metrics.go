package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedAssemblyDuration records how long the ranked feed query and
	// response shaping take per request.
	FeedAssemblyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chirp_feed_assembly_duration_seconds",
		Help:    "Latency of feed assembly (query + ranking + shaping)",
		Buckets: prometheus.DefBuckets,
	})

	// MediaUploadBytes counts bytes accepted through media uploads.
	MediaUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_media_upload_bytes_total",
		Help: "Total bytes accepted through media uploads",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
