package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/circlepe/backend/internal/interfaces/http/dto"
)

// ReadyCheck probes one backing dependency for the readiness endpoint
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler handles health, readiness and system info endpoints
type SystemHandler struct {
	BaseHandler
	startTime   time.Time
	version     string
	readyChecks []ReadyCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, checks ...ReadyCheck) *SystemHandler {
	return &SystemHandler{
		startTime:   time.Now(),
		version:     version,
		readyChecks: checks,
	}
}

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health is the liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// Ready probes backing dependencies and reports 503 if any fail
func (h *SystemHandler) Ready(c *gin.Context) {
	response := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(h.readyChecks))}
	status := http.StatusOK

	for _, check := range h.readyChecks {
		if err := check.Check(c.Request.Context()); err != nil {
			response.Checks[check.Name] = err.Error()
			response.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[check.Name] = "ok"
	}

	c.JSON(status, dto.NewSuccessResponse(response))
}

// Info returns version and uptime information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Accounts Dashboard API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// RegisterRoutes implements RouteRegistrar interface
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
	rg.GET("/system/info", h.Info)
}
