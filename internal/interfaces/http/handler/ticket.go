package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	engagementapp "github.com/circlepe/backend/internal/application/engagement"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// TicketHandler handles follow-up ticket endpoints
type TicketHandler struct {
	BaseHandler
	ticketService *engagementapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *engagementapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// ListByResident returns a resident's tickets with derived statuses
func (h *TicketHandler) ListByResident(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	tickets, err := h.ticketService.ListByResident(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tickets)
}

// Create opens a ticket against a resident
func (h *TicketHandler) Create(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req engagementapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ResidentID = residentID

	ticket, err := h.ticketService.Create(c.Request.Context(), middleware.GetJWTRole(c), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ticket)
}

// GetByID returns a single ticket
func (h *TicketHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Update modifies a ticket
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req engagementapp.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Resolve marks a ticket resolved
func (h *TicketHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.Resolve(c.Request.Context(), middleware.GetJWTRole(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// AddComment appends a comment to a ticket's thread
func (h *TicketHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req engagementapp.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ticket, err := h.ticketService.AddComment(c.Request.Context(), middleware.GetJWTRole(c), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Delete removes a ticket
func (h *TicketHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	if err := h.ticketService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.GET(":id/tickets", h.ListByResident)
		residents.POST(":id/tickets", middleware.RequireAdmin(), h.Create)
	}

	tickets := rg.Group("/tickets")
	{
		tickets.GET(":id", h.GetByID)
		tickets.PUT(":id", middleware.RequireAdmin(), h.Update)
		tickets.POST(":id/resolve", middleware.RequireAdmin(), h.Resolve)
		tickets.POST(":id/comments", middleware.RequireAdmin(), h.AddComment)
		tickets.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
