package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/circlepe/backend/internal/application/report"
)

// DashboardHandler handles portfolio roll-up endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the portfolio financial roll-up. Backend faults degrade
// to zeroed figures rather than an error response.
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.Success(c, h.dashboardService.Stats(c.Request.Context()))
}

// RegisterRoutes implements RouteRegistrar interface
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Stats)
	}
}
