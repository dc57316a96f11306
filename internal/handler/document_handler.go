package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docuparse/internal/csvexport"
	"docuparse/internal/domain"
	"docuparse/internal/service"
	"docuparse/internal/xlsxexport"
)

// DocumentHandler handles document extraction endpoints.
type DocumentHandler struct {
	docService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

type createDocumentRequest struct {
	FileID uuid.UUID `json:"file_id" binding:"required"`
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_id is required")
		return
	}

	doc, err := h.docService.CreateAndParse(c.Request.Context(), req.FileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	docs, total, err := h.docService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// GetResult handles GET /api/v1/documents/:id/result
func (h *DocumentHandler) GetResult(c *gin.Context) {
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.docService.GetResult(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GetValidation handles GET /api/v1/documents/:id/validation
func (h *DocumentHandler) GetValidation(c *gin.Context) {
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.docService.GetValidation(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/documents/:id/export?format=csv|xlsx|json
func (h *DocumentHandler) Export(c *gin.Context) {
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	format := c.DefaultQuery("format", "json")
	switch format {
	case "json":
		RespondOK(c, doc)
	case "csv":
		h.exportCSV(c, doc)
	case "xlsx":
		h.exportXLSX(c, doc)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be one of: json, csv, xlsx")
	}
}

func (h *DocumentHandler) exportCSV(c *gin.Context, doc *domain.Document) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)

	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteDocuments([]domain.Document{*doc}); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("document_"+doc.ID.String(), "csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *DocumentHandler) exportXLSX(c *gin.Context, doc *domain.Document) {
	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, []domain.Document{*doc}); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("document_"+doc.ID.String(), "xlsx")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.docService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
