package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/interfaces/http/middleware"
)

// DocumentHandler handles resident document endpoints. Uploads go
// through a multipart form with a single "file" field and are capped
// by the body limit applied to the upload route.
type DocumentHandler struct {
	BaseHandler
	documentService *portfolioapp.DocumentService
	maxUploadSize   int64
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *portfolioapp.DocumentService, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload stores a document for a resident
func (h *DocumentHandler) Upload(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	document, err := h.documentService.Upload(
		c.Request.Context(),
		middleware.GetJWTRole(c),
		residentID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, document)
}

// DownloadURL returns a short-lived presigned URL for a stored document
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	result, err := h.documentService.DownloadURL(c.Request.Context(), residentID, c.Param("file"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a stored document
func (h *DocumentHandler) Delete(c *gin.Context) {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid resident ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), middleware.GetJWTRole(c), residentID, c.Param("file")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes implements RouteRegistrar interface
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	residents := rg.Group("/residents")
	{
		residents.POST(":id/documents", middleware.RequireAdmin(), middleware.BodyLimit(h.maxUploadSize), h.Upload)
		residents.GET(":id/documents/:file", h.DownloadURL)
		residents.DELETE(":id/documents/:file", middleware.RequireAdmin(), h.Delete)
	}
}
