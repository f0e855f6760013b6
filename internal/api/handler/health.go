package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/askanything/board/internal/core/ports"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Liveness handles GET /health. It only proves the process is serving.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler reports whether the storage backend answers.
type ReadinessHandler struct {
	pinger  ports.Pinger
	timeout time.Duration
}

// NewReadinessHandler accepts a nil pinger for backends with nothing to check.
func NewReadinessHandler(pinger ports.Pinger) *ReadinessHandler {
	return &ReadinessHandler{pinger: pinger, timeout: 2 * time.Second}
}

// Readiness handles GET /health/ready.
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	if h.pinger == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"store":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": "ok"})
}
