package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/middleware"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type teacherLifecycleService interface {
	Delete(ctx context.Context, id string) error
	GetAvailability(ctx context.Context, teacherID string) (*dto.TeacherAvailabilityView, error)
	ReplaceAvailability(ctx context.Context, teacherID string, req dto.UpdateAvailabilityRequest) (*dto.TeacherAvailabilityView, error)
}

type teacherWorkloadService interface {
	ComputeWorkload(ctx context.Context, teacherID, excludeModuleID string) (*dto.WorkloadSummary, error)
}

type teacherTimetableService interface {
	Teacher(ctx context.Context, teacherID string) (*dto.TimetableView, bool, error)
}

// TeacherHandler exposes teacher workload, availability and timetable endpoints.
type TeacherHandler struct {
	teachers  teacherLifecycleService
	workload  teacherWorkloadService
	timetable teacherTimetableService
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(teachers teacherLifecycleService, workload teacherWorkloadService, timetable teacherTimetableService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, workload: workload, timetable: timetable}
}

// Workload godoc
// @Summary Teacher workload against contracted hours
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Param excludeModuleId query string false "Module left out of the total"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/workload [get]
func (h *TeacherHandler) Workload(c *gin.Context) {
	teacherID, ok := pathID(c, "id", "teacher id is required")
	if !ok {
		return
	}
	exclude := strings.TrimSpace(c.Query("excludeModuleId"))
	summary, err := h.workload.ComputeWorkload(c.Request.Context(), teacherID, exclude)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// GetAvailability godoc
// @Summary Get a teacher's availability grid
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [get]
func (h *TeacherHandler) GetAvailability(c *gin.Context) {
	teacherID, ok := pathID(c, "id", "teacher id is required")
	if !ok {
		return
	}
	view, err := h.teachers.GetAvailability(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ReplaceAvailability godoc
// @Summary Replace a teacher's availability grid
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.UpdateAvailabilityRequest true "Availability cells"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [put]
func (h *TeacherHandler) ReplaceAvailability(c *gin.Context) {
	teacherID, ok := pathID(c, "id", "teacher id is required")
	if !ok {
		return
	}
	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	view, err := h.teachers.ReplaceAvailability(c.Request.Context(), teacherID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Timetable godoc
// @Summary Weekly timetable of a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/timetable [get]
func (h *TeacherHandler) Timetable(c *gin.Context) {
	teacherID, ok := pathID(c, "id", "teacher id is required")
	if !ok {
		return
	}
	start := time.Now()
	view, cacheHit, err := h.timetable.Teacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimetable(c, view, cacheHit, start)
}

// Delete godoc
// @Summary Delete a teacher
// @Description Modules taught by the teacher keep their ranges and lose the assignment.
// @Tags Teachers
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	teacherID, ok := pathID(c, "id", "teacher id is required")
	if !ok {
		return
	}
	if err := h.teachers.Delete(c.Request.Context(), teacherID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func respondTimetable(c *gin.Context, view *dto.TimetableView, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, view, meta)
}
