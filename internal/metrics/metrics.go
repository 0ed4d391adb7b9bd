package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "anagram_study",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "anagram_study",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Participant sessions created.",
		},
	)

	WordValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "words",
			Name:      "validations_total",
			Help:      "Word validations by outcome.",
		},
		[]string{"valid"},
	)

	MessagesShown = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "anti_cheating",
			Name:      "messages_shown_total",
			Help:      "Anti-cheating message selections by message id.",
		},
		[]string{"message_id"},
	)

	EventsLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "events",
			Name:      "logged_total",
			Help:      "Game events written to the event log by phase.",
		},
		[]string{"phase"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anagram_study",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		SessionsCreated,
		WordValidations,
		MessagesShown,
		EventsLogged,
		RateLimited,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
