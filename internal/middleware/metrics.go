package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/service"
)

// Metrics records method, route template, status and latency per request.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Unmatched requests fall back to the raw path so 404s stay visible.
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
