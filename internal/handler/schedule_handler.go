package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type scheduleAssignmentService interface {
	Submit(ctx context.Context, moduleID string, req dto.SubmitScheduleRequest) (*dto.SubmitScheduleResult, error)
	Schedule(ctx context.Context, moduleID string) (*dto.ModuleScheduleView, error)
}

type scheduleGridService interface {
	ClassifyGrid(ctx context.Context, moduleID string, req dto.GridRequest) (*dto.GridResponse, error)
	ClassifyCell(ctx context.Context, moduleID string, req dto.GridCellRequest) (*timetable.Cell, error)
}

var rejectionErrors = map[models.RejectionReason]*appErrors.Error{
	models.ReasonHourMismatch:     appErrors.ErrHourMismatch,
	models.ReasonOverContract:     appErrors.ErrOverContract,
	models.ReasonParityConflict:   appErrors.ErrParityConflict,
	models.ReasonTeacherConflict:  appErrors.ErrTeacherConflict,
	models.ReasonRoomConflict:     appErrors.ErrRoomConflict,
	models.ReasonMalformedRange:   appErrors.ErrMalformedRange,
	models.ReasonPersistenceError: appErrors.ErrPersistenceError,
}

// ScheduleHandler exposes module schedule submission and draft grid endpoints.
type ScheduleHandler struct {
	assignments scheduleAssignmentService
	grid        scheduleGridService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(assignments scheduleAssignmentService, grid scheduleGridService) *ScheduleHandler {
	return &ScheduleHandler{assignments: assignments, grid: grid}
}

// Submit godoc
// @Summary Validate and commit a module schedule
// @Description Rejections are returned with the rejection reason as error code and the full result as data.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param payload body dto.SubmitScheduleRequest true "Schedule draft"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /modules/{id}/schedule [post]
func (h *ScheduleHandler) Submit(c *gin.Context) {
	moduleID, ok := pathID(c, "id", "module id is required")
	if !ok {
		return
	}
	var req dto.SubmitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	result, err := h.assignments.Submit(c.Request.Context(), moduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Committed() {
		reasonErr, known := rejectionErrors[result.Reason]
		if !known {
			reasonErr = appErrors.ErrInternal
		}
		response.Rejected(c, appErrors.Clone(reasonErr, result.Message), result)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Get godoc
// @Summary Get the stored schedule of a module
// @Tags Schedules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /modules/{id}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	moduleID, ok := pathID(c, "id", "module id is required")
	if !ok {
		return
	}
	view, err := h.assignments.Schedule(c.Request.Context(), moduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Grid godoc
// @Summary Classify every cell of a draft schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param payload body dto.GridRequest true "Schedule draft"
// @Success 200 {object} response.Envelope
// @Router /modules/{id}/schedule/grid [post]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	moduleID, ok := pathID(c, "id", "module id is required")
	if !ok {
		return
	}
	var req dto.GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grid payload"))
		return
	}
	grid, err := h.grid.ClassifyGrid(c.Request.Context(), moduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// Cell godoc
// @Summary Classify one cell of a draft schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param payload body dto.GridCellRequest true "Draft and cell"
// @Success 200 {object} response.Envelope
// @Router /modules/{id}/schedule/grid/cell [post]
func (h *ScheduleHandler) Cell(c *gin.Context) {
	moduleID, ok := pathID(c, "id", "module id is required")
	if !ok {
		return
	}
	var req dto.GridCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grid cell payload"))
		return
	}
	cell, err := h.grid.ClassifyCell(c.Request.Context(), moduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cell)
}

func pathID(c *gin.Context, name, message string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, message))
		return "", false
	}
	return id, true
}
