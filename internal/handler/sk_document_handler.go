package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/service"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// SkDocumentHandler exposes decree generation endpoints.
type SkDocumentHandler struct {
	service *service.SkService
}

// NewSkDocumentHandler constructs an SK document handler.
func NewSkDocumentHandler(svc *service.SkService) *SkDocumentHandler {
	return &SkDocumentHandler{service: svc}
}

// Generate godoc
// @Summary Generate a duty decree for a teacher
// @Tags SkDocuments
// @Accept json
// @Produce json
// @Param payload body service.GenerateSkRequest true "Decree payload"
// @Success 201 {object} response.Envelope
// @Router /sk-documents/generate [post]
func (h *SkDocumentHandler) Generate(c *gin.Context) {
	var req service.GenerateSkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	doc, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Get godoc
// @Summary Get a stored decree
// @Tags SkDocuments
// @Produce json
// @Param id path string true "SK document ID"
// @Success 200 {object} response.Envelope
// @Router /sk-documents/{id} [get]
func (h *SkDocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// List godoc
// @Summary List decrees for an academic year
// @Tags SkDocuments
// @Produce json
// @Param yearId path string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /sk-documents/year/{yearId} [get]
func (h *SkDocumentHandler) List(c *gin.Context) {
	docs, err := h.service.ListByAcademicYear(c.Request.Context(), c.Param("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, nil)
}

// Download godoc
// @Summary Download a decree as PDF
// @Tags SkDocuments
// @Produce application/pdf
// @Param id path string true "SK document ID"
// @Success 200 {file} binary
// @Router /sk-documents/{id}/pdf [get]
func (h *SkDocumentHandler) Download(c *gin.Context) {
	payload, err := h.service.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sk-document.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
