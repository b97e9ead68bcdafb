package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// RepaymentHandler handles rent repayment schedule endpoints
type RepaymentHandler struct {
	BaseHandler
	repaymentService *portfolioapp.RepaymentService
}

// NewRepaymentHandler creates a new RepaymentHandler
func NewRepaymentHandler(repaymentService *portfolioapp.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

// ListByResident returns a resident's repayment schedule
func (h *RepaymentHandler) ListByResident(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	repayments, err := h.repaymentService.ListByResident(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, repayments)
}

// Create adds a schedule row for a resident
func (h *RepaymentHandler) Create(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	var req portfolioapp.CreateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ResidentID = residentID

	repayment, err := h.repaymentService.Create(c.Request.Context(), middleware.GetJWTRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, repayment)
}

// Update modifies a schedule row
func (h *RepaymentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid repayment ID")
		return
	}

	var req portfolioapp.UpdateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	repayment, err := h.repaymentService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, repayment)
}

// UpdateStatus transitions a schedule row to a new payment status,
// recording or clearing the settlement amount and date alongside.
func (h *RepaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid repayment ID")
		return
	}

	var req portfolioapp.TransitionRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	repayment, err := h.repaymentService.UpdateStatus(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, repayment)
}

// Delete removes a schedule row
func (h *RepaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid repayment ID")
		return
	}

	if err := h.repaymentService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *RepaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.GET(":id/repayments", h.ListByResident)
		residents.POST(":id/repayments", middleware.RequireAdmin(), h.Create)
	}

	repayments := rg.Group("/repayments")
	{
		repayments.PUT(":id", middleware.RequireAdmin(), h.Update)
		repayments.PATCH(":id/status", middleware.RequireAdmin(), h.UpdateStatus)
		repayments.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
