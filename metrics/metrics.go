// Package metrics exposes the service's Prometheus collectors.
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
	// Registry holds the application-specific collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gallery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	moderationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "moderation",
			Name:      "decisions_total",
			Help:      "Status changes applied by administrators, by target status.",
		},
		[]string{"status"},
	)

	componentSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "moderation",
			Name:      "submissions_total",
			Help:      "Components submitted for review.",
		},
	)

	votes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "votes_total",
			Help:      "Votes cast, including overwrites.",
		},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		moderationDecisions,
		componentSubmissions,
		votes,
		logins,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ModerationDecision counts an applied status change.
func ModerationDecision(status string) {
	moderationDecisions.WithLabelValues(status).Inc()
}

// ComponentSubmitted counts a new submission.
func ComponentSubmitted() {
	componentSubmissions.Inc()
}

// VoteCast counts a vote.
func VoteCast() {
	votes.Inc()
}

// Login counts a login attempt; result is "success" or "failure".
func Login(result string) {
	logins.WithLabelValues(result).Inc()
}
