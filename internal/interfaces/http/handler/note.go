package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	engagementapp "github.com/circlepe/backend/internal/application/engagement"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// NoteHandler handles free-form resident note endpoints
type NoteHandler struct {
	BaseHandler
	noteService *engagementapp.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *engagementapp.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// ListByResident returns a resident's notes, newest first
func (h *NoteHandler) ListByResident(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	notes, err := h.noteService.ListByResident(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notes)
}

// Create adds a note to a resident
func (h *NoteHandler) Create(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	var req engagementapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.ResidentID = residentID

	note, err := h.noteService.Create(c.Request.Context(), middleware.GetJWTRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// Update rewrites a note's content
func (h *NoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	var req engagementapp.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Delete removes a note
func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.GET(":id/notes", h.ListByResident)
		residents.POST(":id/notes", middleware.RequireAdmin(), h.Create)
	}

	notes := rg.Group("/notes")
	{
		notes.PUT(":id", middleware.RequireAdmin(), h.Update)
		notes.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
