package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidgate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidgate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Auth Metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidgate_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidgate_signups_total",
			Help: "Total number of successful signups",
		},
	)

	// Listing Metrics
	ListingObjectsScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vidgate_listing_objects_scanned",
			Help:    "Number of object keys scanned per listing request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	PresignFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidgate_presign_failures_total",
			Help: "Total number of failed presigned URL requests",
		},
	)
)

// Middleware records request counts and latency per route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}
