package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/Youseb010/mada-server/internal/store"
)

// Metrics holds all Prometheus collectors for the catalog backend.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CatalogChannels  prometheus.GaugeFunc
	CatalogVideos    prometheus.GaugeFunc
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	FlushDuration    prometheus.Histogram
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(st *store.Store) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mada_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mada_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mada_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mada_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	Metrics.FlushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mada_catalog_flush_duration_seconds",
			Help:    "Duration of durable catalog flushes.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Catalog size gauges — read in-memory counts from the store
	if st != nil {
		Metrics.CatalogChannels = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "mada_catalog_channels",
				Help: "Number of channels as of the last completed operation.",
			},
			func() float64 {
				channels, _ := st.Counts()
				return float64(channels)
			},
		)

		Metrics.CatalogVideos = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "mada_catalog_videos",
				Help: "Number of videos as of the last completed operation.",
			},
			func() float64 {
				_, videos := st.Counts()
				return float64(videos)
			},
		)

		prometheus.MustRegister(Metrics.CatalogChannels)
		prometheus.MustRegister(Metrics.CatalogVideos)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.FlushDuration,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if !strings.HasPrefix(path, "/api/videos/") {
		return path
	}
	rest := strings.TrimPrefix(path, "/api/videos/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		// /api/videos/:id/view etc. — keep the action segment
		return "/api/videos/:id" + rest[idx:]
	}
	return "/api/videos/:id"
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
