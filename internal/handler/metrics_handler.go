package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elores-client/internal/service"
)

// readyTimeout bounds the PING sent by the readiness check.
const readyTimeout = 3 * time.Second

type sessionProbe interface {
	IsConnected() bool
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	probe   sessionProbe
	addr    string
}

// NewMetricsHandler constructs a metrics handler. addr is the server
// address reported by the readiness check.
func NewMetricsHandler(metrics *service.MetricsService, probe sessionProbe, addr string) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, probe: probe, addr: addr}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the server connection is up and answers a PING.
// A gateway without a session is still ready to accept a login.
func (h *MetricsHandler) Ready(c *gin.Context) {
	body := gin.H{
		"status":    "ready",
		"server":    h.addr,
		"connected": false,
		"metrics":   h.metrics.Snapshot(),
	}
	if h.probe == nil || !h.probe.IsConnected() {
		c.JSON(http.StatusOK, body)
		return
	}

	body["connected"] = true
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()
	if err := h.probe.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
