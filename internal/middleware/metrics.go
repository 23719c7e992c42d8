package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-app-server/internal/metrics"
)

// MetricsMiddleware records request counts, latency and in-flight gauge for
// every route. The route template (not the raw URL) is used as the path label
// to keep cardinality bounded.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()

		c.Next()

		collector.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
