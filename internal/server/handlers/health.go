package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rural-assist/internal/common/database"
	"rural-assist/internal/server/dto"
)

// UpstreamChecker checks the live data APIs.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	service  string
	version  string
	pingers  []database.Pinger
	upstream UpstreamChecker
	timeout  time.Duration
}

// NewHealthHandler creates a new health handler. upstream may be nil.
func NewHealthHandler(service, version string, pingers []database.Pinger, upstream UpstreamChecker, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		service:  service,
		version:  version,
		pingers:  pingers,
		upstream: upstream,
		timeout:  timeout,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Version: h.version,
	})
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	services, ok := database.CheckAll(c.Request.Context(), h.timeout, h.pingers...)

	resp := dto.HealthResponse{
		Status:   "ready",
		Service:  h.service,
		Services: services,
	}
	if !ok {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /health/status. A failing data API only degrades the
// service because the chain still answers from sample data.
func (h *HealthHandler) Status(c *gin.Context) {
	services, ok := database.CheckAll(c.Request.Context(), h.timeout, h.pingers...)

	status := "healthy"
	if !ok {
		status = "unhealthy"
	}

	if h.upstream != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.upstream.HealthCheck(ctx); err != nil {
			services["api_client"] = "degraded: " + err.Error()
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			services["api_client"] = "ok"
		}
	}
	services["mock_data"] = "ok"

	c.JSON(http.StatusOK, gin.H{
		"overall_status": status,
		"service":        h.service,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"services":       services,
	})
}
