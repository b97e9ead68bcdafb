package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/interfaces/http/dto"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *portfolioapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *portfolioapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create adds a property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req portfolioapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), middleware.GetJWTRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// GetByID returns a single property
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// List returns a page of properties
func (h *PropertyHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := req.ToFilter()
	page, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update modifies a property
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req portfolioapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), middleware.GetJWTRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Delete removes an unoccupied property
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), middleware.GetJWTRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Cities returns the distinct city projection for filter dropdowns
func (h *PropertyHandler) Cities(c *gin.Context) {
	cities, err := h.propertyService.Cities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cities)
}

// Names returns the distinct property name projection
func (h *PropertyHandler) Names(c *gin.Context) {
	names, err := h.propertyService.Names(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, names)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.GET("", h.List)
		properties.GET("/cities", h.Cities)
		properties.GET("/names", h.Names)
		properties.GET(":id", h.GetByID)
		properties.POST("", middleware.RequireAdmin(), h.Create)
		properties.PUT(":id", middleware.RequireAdmin(), h.Update)
		properties.DELETE(":id", middleware.RequireAdmin(), h.Delete)
	}
}
