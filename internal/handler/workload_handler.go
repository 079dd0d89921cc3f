package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/service"
	"github.com/yunshan-music/lesson-api/pkg/response"
)

// WorkloadHandler exposes workload and progress reports.
type WorkloadHandler struct {
	service *service.WorkloadService
}

// NewWorkloadHandler constructs handler.
func NewWorkloadHandler(svc *service.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{service: svc}
}

// TeacherReport godoc
// @Summary Teacher term workload report
// @Tags Workload
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/workload [get]
func (h *WorkloadHandler) TeacherReport(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// StudentProgress godoc
// @Summary Student session progress per course
// @Tags Workload
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/progress [get]
func (h *WorkloadHandler) StudentProgress(c *gin.Context) {
	progress, err := h.service.StudentProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
