package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/service"
)

// MetricsHandler serves the liveness and Prometheus endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
}

func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Health reports process liveness. Database readiness is a separate endpoint.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lesson-api"})
}

// Prometheus exposes the metrics registry in text format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
