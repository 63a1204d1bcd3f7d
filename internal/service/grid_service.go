package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type gridOccupancy interface {
	OccupiedAll(ctx context.Context, keys []models.OccupancyKey, excludeModuleID string) ([]timetable.OccupiedRange, error)
}

type availabilityProvider interface {
	Availability(ctx context.Context, teacherID string) (timetable.Availability, error)
}

// GridService classifies the cells of a draft schedule for interactive
// editing, using the same occupancy data as submissions.
type GridService struct {
	modules      assignmentModuleReader
	occupancy    gridOccupancy
	availability availabilityProvider
	calendar     timetable.Calendar
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewGridService constructs the service.
func NewGridService(modules assignmentModuleReader, occupancy gridOccupancy, availability availabilityProvider, calendar timetable.Calendar, validate *validator.Validate, logger *zap.Logger) *GridService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GridService{
		modules:      modules,
		occupancy:    occupancy,
		availability: availability,
		calendar:     calendar,
		validator:    validate,
		logger:       logger,
	}
}

// ClassifyGrid classifies every cell of the draft.
func (s *GridService) ClassifyGrid(ctx context.Context, moduleID string, req dto.GridRequest) (*dto.GridResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grid payload")
	}
	module, gridCtx, err := s.context(ctx, moduleID, req.ScheduleDraft)
	if err != nil {
		return nil, err
	}
	return &dto.GridResponse{
		ModuleID: module.ID,
		Labels:   s.calendar.Labels(),
		Selected: gridCtx.Selected.Count(),
		Required: module.RequiredBlocks(),
		Cells:    s.calendar.ClassifyGrid(gridCtx),
	}, nil
}

// ClassifyCell classifies a single cell of the draft.
func (s *GridService) ClassifyCell(ctx context.Context, moduleID string, req dto.GridCellRequest) (*timetable.Cell, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grid cell payload")
	}
	if !req.Weekday.Valid() || !s.calendar.ValidBlock(*req.Block) {
		return nil, appErrors.Clone(appErrors.ErrMalformedRange, "cell is outside of the block grid")
	}
	_, gridCtx, err := s.context(ctx, moduleID, req.ScheduleDraft)
	if err != nil {
		return nil, err
	}
	cell := s.calendar.ClassifyCell(gridCtx, req.Weekday, *req.Block)
	return &cell, nil
}

func (s *GridService) context(ctx context.Context, moduleID string, draft dto.ScheduleDraft) (*models.Module, timetable.GridContext, error) {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, timetable.GridContext{}, notFoundOrInternal(err, "module not found", "failed to load module")
	}
	selection, err := draftSelection(s.calendar, draft)
	if err != nil {
		return nil, timetable.GridContext{}, appErrors.Wrap(err, appErrors.ErrMalformedRange.Code, appErrors.ErrMalformedRange.Status, err.Error())
	}

	target := resolveTarget(module, draft)
	occupied, err := s.occupancy.OccupiedAll(ctx, target.occupancyKeys(), module.ID)
	if err != nil {
		return nil, timetable.GridContext{}, err
	}

	var availability timetable.Availability
	if target.TeacherID != "" {
		availability, err = s.availability.Availability(ctx, target.TeacherID)
		if err != nil {
			return nil, timetable.GridContext{}, err
		}
	}

	return module, timetable.GridContext{
		ModuleID:     module.ID,
		Selected:     selection,
		Occupied:     occupied,
		Availability: availability,
	}, nil
}
