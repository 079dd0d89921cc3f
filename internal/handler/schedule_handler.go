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

// ScheduleHandler manages session commit, listing, allocation and deletion.
type ScheduleHandler struct {
	service *service.SchedulingService
	metrics *service.MetricsService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.SchedulingService, metrics *service.MetricsService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, metrics: metrics}
}

// List godoc
// @Summary List scheduled sessions
// @Tags Schedules
// @Produce json
// @Param teacherId query string false "Filter by teacher"
// @Param studentId query string false "Filter by student"
// @Param courseId query string false "Filter by course"
// @Param roomId query string false "Filter by room"
// @Param groupId query string false "Filter by commit group"
// @Param dayOfWeek query int false "Filter by day"
// @Param week query int false "Filter by week"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.SessionFilter
	filter.TeacherID = c.Query("teacherId")
	filter.StudentID = c.Query("studentId")
	filter.CourseID = c.Query("courseId")
	filter.RoomID = c.Query("roomId")
	filter.GroupID = c.Query("groupId")
	if day, err := strconv.Atoi(c.DefaultQuery("dayOfWeek", "0")); err == nil {
		filter.DayOfWeek = day
	}
	if week, err := strconv.Atoi(c.DefaultQuery("week", "0")); err == nil {
		filter.Week = week
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	sessions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, pagination)
}

// Commit godoc
// @Summary Commit a batch of slots for a lesson group
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CommitScheduleRequest true "Commit payload"
// @Success 201 {object} response.Envelope
// @Router /schedules/commit [post]
func (h *ScheduleHandler) Commit(c *gin.Context) {
	var req service.CommitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Commit(c.Request.Context(), req)
	if err != nil {
		h.metrics.ObserveCommit("rejected")
		response.Error(c, err)
		return
	}
	h.metrics.ObserveCommit("committed")

	var meta map[string]interface{}
	if len(result.Warnings) > 0 {
		meta = map[string]interface{}{"warnings": result.Warnings}
	}
	response.JSON(c, http.StatusCreated, result, nil, meta)
}

// AllocateWeeks godoc
// @Summary Propose weeks for one grid cell
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.AllocateWeeksPayload true "Allocation payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/allocate-weeks [post]
func (h *ScheduleHandler) AllocateWeeks(c *gin.Context) {
	var req service.AllocateWeeksPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.AllocateWeeks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Availability godoc
// @Summary Probe the weekly grid for conflicts
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.AvailabilityRequest true "Availability payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/availability [post]
func (h *ScheduleHandler) Availability(c *gin.Context) {
	var req service.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cells, err := h.service.Availability(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, nil)
}

// Delete godoc
// @Summary Delete a single session
// @Tags Schedules
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteGroup godoc
// @Summary Delete every session committed under a group id
// @Tags Schedules
// @Produce json
// @Param id path string true "Group ID"
// @Success 204
// @Router /schedule-groups/{id} [delete]
func (h *ScheduleHandler) DeleteGroup(c *gin.Context) {
	if err := h.service.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
