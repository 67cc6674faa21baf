package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gamevault"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	syncedGames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "library_synced_games_total",
		Help:      "Games written by library syncs, by platform and outcome.",
	}, []string{"platform", "outcome"})

	syncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "library_sync_failures_total",
		Help:      "Failed library sync runs by platform.",
	}, []string{"platform"})
)

// Middleware records request counts and latency. Unmatched routes are
// grouped under "unmatched" to bound label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveSync records the outcome of one sync run.
func ObserveSync(platform string, created, updated int, err error) {
	syncedGames.WithLabelValues(platform, "created").Add(float64(created))
	syncedGames.WithLabelValues(platform, "updated").Add(float64(updated))
	if err != nil {
		syncFailures.WithLabelValues(platform).Inc()
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
