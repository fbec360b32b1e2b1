package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

const healthTimeout = 3 * time.Second

// HealthChecker reports whether the service dependencies are reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type SystemHandler struct {
	BaseHandler
	health HealthChecker
}

func NewSystemHandler(health HealthChecker, logger utils.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger, true),
		health:      health,
	}
}

// Root is the liveness probe used by the dashboard
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Nova API Active"})
}

// Health checks the document store
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.health.HealthCheck(ctx); err != nil {
		h.LogError(c, err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "nova-scholar-service",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nova-scholar-service",
	})
}

// Metrics exposes the Prometheus default registry
func (h *SystemHandler) Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
