package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// DisbursementHandler handles advance tranche endpoints
type DisbursementHandler struct {
	BaseHandler
	disbursementService *portfolioapp.DisbursementService
}

// NewDisbursementHandler creates a new DisbursementHandler
func NewDisbursementHandler(disbursementService *portfolioapp.DisbursementService) *DisbursementHandler {
	return &DisbursementHandler{disbursementService: disbursementService}
}

// ListByResident returns every tranche recorded for a resident
func (h *DisbursementHandler) ListByResident(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	disbursements, err := h.disbursementService.ListByResident(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, disbursements)
}

// Create records a tranche for a resident. The resident's stored advance
// snapshot is left untouched.
func (h *DisbursementHandler) Create(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	var req portfolioapp.CreateDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ResidentID = residentID

	disbursement, err := h.disbursementService.Create(c.Request.Context(), middleware.GetJWTRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, disbursement)
}

// Update modifies a tranche
func (h *DisbursementHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid disbursement ID")
		return
	}

	var req portfolioapp.UpdateDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	disbursement, err := h.disbursementService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, disbursement)
}

// Delete removes a tranche
func (h *DisbursementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid disbursement ID")
		return
	}

	if err := h.disbursementService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *DisbursementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.GET(":id/disbursements", h.ListByResident)
		residents.POST(":id/disbursements", middleware.RequireAdmin(), h.Create)
	}

	disbursements := rg.Group("/disbursements")
	{
		disbursements.PUT(":id", middleware.RequireAdmin(), h.Update)
		disbursements.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
