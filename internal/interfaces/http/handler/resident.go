package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// ResidentHandler handles resident endpoints, including the roster view
// and the relational statement of account.
type ResidentHandler struct {
	BaseHandler
	residentService *portfolioapp.ResidentService
}

// NewResidentHandler creates a new ResidentHandler
func NewResidentHandler(residentService *portfolioapp.ResidentService) *ResidentHandler {
	return &ResidentHandler{residentService: residentService}
}

// Create adds a resident
func (h *ResidentHandler) Create(c *gin.Context) {
	var req portfolioapp.CreateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resident, err := h.residentService.Create(c.Request.Context(), middleware.GetJWTRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resident)
}

// GetByID returns a single resident
func (h *ResidentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	resident, err := h.residentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resident)
}

// List returns the resident roster with filter, sort and pagination
// applied in memory over the cached roster snapshot.
func (h *ResidentHandler) List(c *gin.Context) {
	var req portfolioapp.RosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	roster, err := h.residentService.Roster(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, roster.Entries, int64(roster.Total), roster.Page, roster.PageSize)
}

// Update modifies a resident
func (h *ResidentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	var req portfolioapp.UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resident, err := h.residentService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resident)
}

// Delete removes a resident
func (h *ResidentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	if err := h.residentService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Statement returns the full statement of account for a resident:
// the resident, their property, every tranche and every schedule row,
// with roll-up totals.
func (h *ResidentHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	statement, err := h.residentService.Statement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *ResidentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.GET("", h.List)
		residents.GET(":id", h.GetByID)
		residents.GET(":id/statement", h.Statement)
		residents.POST("", middleware.RequireAdmin(), h.Create)
		residents.PUT(":id", middleware.RequireAdmin(), h.Update)
		residents.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
