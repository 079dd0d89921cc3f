package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/models"
	"github.com/yunshan-music/lesson-api/internal/service"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
	"github.com/yunshan-music/lesson-api/pkg/response"
)

// LargeClassHandler manages the imported lecture timetable.
type LargeClassHandler struct {
	service *service.LargeClassService
}

// NewLargeClassHandler constructs handler.
func NewLargeClassHandler(svc *service.LargeClassService) *LargeClassHandler {
	return &LargeClassHandler{service: svc}
}

// List godoc
// @Summary List large class timetable rows
// @Tags LargeClasses
// @Produce json
// @Param className query string false "Filter by class name"
// @Param teacherName query string false "Filter by teacher name"
// @Param dayOfWeek query int false "Filter by day"
// @Param importBatch query string false "Filter by import batch"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /large-classes [get]
func (h *LargeClassHandler) List(c *gin.Context) {
	var filter models.LargeClassFilter
	filter.ClassName = c.Query("className")
	filter.TeacherName = c.Query("teacherName")
	filter.ImportBatch = c.Query("importBatch")
	if day, err := strconv.Atoi(c.DefaultQuery("dayOfWeek", "0")); err == nil {
		filter.DayOfWeek = day
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Import godoc
// @Summary Import a batch of large class timetable rows
// @Tags LargeClasses
// @Accept json
// @Produce json
// @Param payload body service.ImportLargeClassesRequest true "Import payload"
// @Success 201 {object} response.Envelope
// @Router /large-classes/import [post]
func (h *LargeClassHandler) Import(c *gin.Context) {
	var req service.ImportLargeClassesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteBatch godoc
// @Summary Delete an entire import batch
// @Tags LargeClasses
// @Produce json
// @Param batch path string true "Import batch ID"
// @Success 204
// @Router /large-class-batches/{batch} [delete]
func (h *LargeClassHandler) DeleteBatch(c *gin.Context) {
	if err := h.service.DeleteBatch(c.Request.Context(), c.Param("batch")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a single timetable row
// @Tags LargeClasses
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204
// @Router /large-classes/{id} [delete]
func (h *LargeClassHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
