package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 5 * time.Second

// Health handles GET /health - a cheap liveness summary.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.cfg.App.Name,
		"version":   h.cfg.App.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthDetailed handles GET /health/detailed - checks each dependency
// and reports per-component latency.
func (h *Handler) HealthDetailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	dbStatus, dbLatency := h.checkDatabase(ctx)
	components["database"] = gin.H{"status": dbStatus, "latency_ms": dbLatency}
	healthy = healthy && dbStatus == "healthy"

	cacheStatus, cacheLatency := h.checkCache(ctx)
	components["redis"] = gin.H{"status": cacheStatus, "latency_ms": cacheLatency}
	// Cache is degradable; it does not flip overall health.

	mqStatus := "healthy"
	if h.rabbitClient == nil || !h.rabbitClient.IsConnected() {
		mqStatus = "unhealthy"
		healthy = false
	}
	components["rabbitmq"] = gin.H{"status": mqStatus}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":     status,
		"service":    h.cfg.App.Name,
		"version":    h.cfg.App.Version,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}

// Ready handles GET /ready - readiness requires the database and the
// queue, matching what request handling actually needs.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if status, _ := h.checkDatabase(ctx); status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "reason": "database unavailable"})
		return
	}

	if h.rabbitClient == nil || !h.rabbitClient.IsConnected() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "reason": "rabbitmq unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// Live handles GET /live.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alive": true})
}

func (h *Handler) checkDatabase(ctx context.Context) (string, int64) {
	if h.dbClient == nil {
		return "unhealthy", 0
	}

	started := time.Now()
	if err := h.dbClient.HealthCheck(ctx); err != nil {
		return "unhealthy", time.Since(started).Milliseconds()
	}
	return "healthy", time.Since(started).Milliseconds()
}

func (h *Handler) checkCache(ctx context.Context) (string, int64) {
	if h.cache == nil {
		return "disabled", 0
	}

	started := time.Now()
	if err := h.cache.Ping(ctx); err != nil {
		return "unhealthy", time.Since(started).Milliseconds()
	}
	return "healthy", time.Since(started).Milliseconds()
}
