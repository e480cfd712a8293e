package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse reports that the service is up.
type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

// SystemHandler serves health probes.
type SystemHandler struct {
	app     string
	version string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(app, version string) *SystemHandler {
	return &SystemHandler{app: app, version: version}
}

// Health reports the service name and version.
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "online",
		App:     h.app,
		Version: h.version,
	})
}

// Liveness answers plain-text OK for orchestrator probes.
func (h *SystemHandler) Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
