package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/models"
	"github.com/akademika-id/siap-smp-api/internal/service"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// AdditionalTaskHandler handles additional task catalogue endpoints.
type AdditionalTaskHandler struct {
	service *service.AdditionalTaskService
}

// NewAdditionalTaskHandler constructs an additional task handler.
func NewAdditionalTaskHandler(svc *service.AdditionalTaskService) *AdditionalTaskHandler {
	return &AdditionalTaskHandler{service: svc}
}

// List godoc
// @Summary List additional tasks
// @Tags AdditionalTasks
// @Produce json
// @Param search query string false "Search keyword"
// @Success 200 {object} response.Envelope
// @Router /additional-tasks [get]
func (h *AdditionalTaskHandler) List(c *gin.Context) {
	var filter models.AdditionalTaskFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	tasks, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, pagination)
}

// Get godoc
// @Summary Get additional task by id
// @Tags AdditionalTasks
// @Produce json
// @Param id path string true "Additional task ID"
// @Success 200 {object} response.Envelope
// @Router /additional-tasks/{id} [get]
func (h *AdditionalTaskHandler) Get(c *gin.Context) {
	task, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Create godoc
// @Summary Create additional task
// @Tags AdditionalTasks
// @Accept json
// @Produce json
// @Param payload body service.CreateAdditionalTaskRequest true "Additional task payload"
// @Success 201 {object} response.Envelope
// @Router /additional-tasks [post]
func (h *AdditionalTaskHandler) Create(c *gin.Context) {
	var req service.CreateAdditionalTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	task, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// Update godoc
// @Summary Update additional task
// @Tags AdditionalTasks
// @Accept json
// @Produce json
// @Param id path string true "Additional task ID"
// @Param payload body service.UpdateAdditionalTaskRequest true "Additional task payload"
// @Success 200 {object} response.Envelope
// @Router /additional-tasks/{id} [put]
func (h *AdditionalTaskHandler) Update(c *gin.Context) {
	var req service.UpdateAdditionalTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	task, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Delete godoc
// @Summary Delete additional task
// @Tags AdditionalTasks
// @Produce json
// @Param id path string true "Additional task ID"
// @Success 204
// @Router /additional-tasks/{id} [delete]
func (h *AdditionalTaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
