package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type assignmentModuleReader interface {
	FindByID(ctx context.Context, id string) (*models.Module, error)
}

type assignmentRangeRepository interface {
	ListByModule(ctx context.Context, moduleID string) ([]models.ScheduleRange, error)
	ReplaceModuleRanges(ctx context.Context, assignment models.ModuleAssignment, ranges []models.ScheduleRange) error
}

type assignmentRoomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type occupancyIndex interface {
	Occupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]timetable.OccupiedRange, error)
}

type workloadAccountant interface {
	Admit(ctx context.Context, teacherID string, deltaBlocks int, excludeModuleID string) (bool, *dto.WorkloadSummary, error)
}

// AssignmentService validates module schedules and commits the ones that fit.
type AssignmentService struct {
	modules   assignmentModuleReader
	ranges    assignmentRangeRepository
	rooms     assignmentRoomReader
	occupancy occupancyIndex
	workload  workloadAccountant
	cache     *CacheService
	metrics   *MetricsService
	calendar  timetable.Calendar
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the orchestrator.
func NewAssignmentService(
	modules assignmentModuleReader,
	ranges assignmentRangeRepository,
	rooms assignmentRoomReader,
	occupancy occupancyIndex,
	workload workloadAccountant,
	cache *CacheService,
	metrics *MetricsService,
	calendar timetable.Calendar,
	validate *validator.Validate,
	logger *zap.Logger,
) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		modules:   modules,
		ranges:    ranges,
		rooms:     rooms,
		occupancy: occupancy,
		workload:  workload,
		cache:     cache,
		metrics:   metrics,
		calendar:  calendar,
		validator: validate,
		logger:    logger,
	}
}

// Submit runs a schedule draft through validation and, when every check
// passes, replaces the module's stored ranges. Rejections are reported in
// the result. An error is returned only for an invalid payload or an unknown
// module, teacher or room.
func (s *AssignmentService) Submit(ctx context.Context, moduleID string, req dto.SubmitScheduleRequest) (*dto.SubmitScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	module, err := s.loadModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	target := resolveTarget(module, req.ScheduleDraft)
	log := s.logger.With(
		zap.String("module_id", module.ID),
		zap.String("teacher_id", target.TeacherID),
		zap.String("room_id", target.RoomID),
	)
	log.Debug("schedule submission", zap.String("state", string(models.AssignmentValidating)))

	result, err := s.validateAndCommit(ctx, module, target, req.ScheduleDraft)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSubmission(result.Status, result.Reason, time.Since(started))
	if result.Committed() {
		log.Info("schedule committed", zap.Int("blocks", result.BlockCount), zap.Int("ranges", len(result.Ranges)))
		s.evictTimetables(ctx, module, target)
	} else {
		log.Info("schedule rejected", zap.String("reason", string(result.Reason)), zap.String("message", result.Message))
	}
	return result, nil
}

func (s *AssignmentService) validateAndCommit(ctx context.Context, module *models.Module, target scheduleTarget, draft dto.ScheduleDraft) (*dto.SubmitScheduleResult, error) {
	result := &dto.SubmitScheduleResult{ModuleID: module.ID, Status: models.AssignmentValidating}

	selection, err := draftSelection(s.calendar, draft)
	if err != nil {
		return reject(result, models.ReasonMalformedRange, err.Error()), nil
	}
	blocks := selection.Count()
	result.BlockCount = blocks
	result.ChronologicalHours = s.calendar.Chronological(blocks)

	if required := module.RequiredBlocks(); blocks != required {
		return reject(result, models.ReasonHourMismatch, fmt.Sprintf(
			"%s requires %d blocks (%d theory + %d practice), %d selected",
			module.Label(), required, module.TheoryBlocks, module.PracticeBlocks, blocks,
		)), nil
	}

	candidates, err := s.calendar.Aggregate(selection)
	if err != nil {
		return reject(result, models.ReasonMalformedRange, err.Error()), nil
	}

	if target.RoomID != "" {
		if _, err := s.rooms.FindByID(ctx, target.RoomID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
			}
			return reject(result, models.ReasonPersistenceError, "failed to load room"), nil
		}
	}

	if target.TeacherID != "" {
		admitted, summary, err := s.workload.Admit(ctx, target.TeacherID, blocks, module.ID)
		if err != nil {
			if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
				return nil, appErr
			}
			return reject(result, models.ReasonPersistenceError, "failed to load teacher workload"), nil
		}
		if !admitted {
			return reject(result, models.ReasonOverContract, fmt.Sprintf(
				"teacher would exceed contracted hours: %.2f h assigned + %.2f h requested > %.2f h contracted (%.2f h remaining)",
				summary.AssignedChronological, result.ChronologicalHours, summary.ContractedHours, summary.AvailableChronological,
			)), nil
		}
	}

	for _, key := range target.occupancyKeys() {
		occupied, err := s.occupancy.Occupied(ctx, key, module.ID)
		if err != nil {
			return reject(result, models.ReasonPersistenceError, fmt.Sprintf("failed to load %s occupancy", key.Kind)), nil
		}
		if conflict, found := timetable.FirstConflict(candidates, occupied); found {
			result.Conflict = &models.ScheduleConflict{
				Dimension: key.Kind,
				ModuleID:  conflict.ModuleID,
				Label:     conflict.Label,
				Weekday:   conflict.Occupied.Weekday,
				Start:     timetable.FormatClock(conflict.Occupied.StartMin),
				End:       timetable.FormatClock(conflict.Occupied.EndMin),
			}
			return reject(result, models.ConflictReason(key.Kind), conflictMessage(key.Kind, conflict)), nil
		}
	}

	stored := make([]models.ScheduleRange, 0, len(candidates))
	for _, r := range candidates {
		stored = append(stored, models.ScheduleRange{ModuleID: module.ID, Weekday: r.Weekday, StartMin: r.StartMin, EndMin: r.EndMin})
	}
	if err := s.ranges.ReplaceModuleRanges(ctx, target.assignment(), stored); err != nil {
		s.logger.Error("replace module ranges failed", zap.String("module_id", module.ID), zap.Error(err))
		return reject(result, models.ReasonPersistenceError, "failed to persist schedule, previous ranges kept"), nil
	}

	result.Status = models.AssignmentCommitted
	result.Ranges, _ = rangeViews(s.calendar, candidates, s.logger)
	return result, nil
}

// Schedule returns the stored ranges of a module.
func (s *AssignmentService) Schedule(ctx context.Context, moduleID string) (*dto.ModuleScheduleView, error) {
	module, err := s.loadModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ranges.ListByModule(ctx, module.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load module schedule")
	}
	ranges := make([]timetable.Range, 0, len(rows))
	for _, row := range rows {
		ranges = append(ranges, row.Range())
	}
	views, blocks := rangeViews(s.calendar, ranges, s.logger.With(zap.String("module_id", module.ID)))
	return &dto.ModuleScheduleView{Module: *module, Ranges: views, BlockCount: blocks}, nil
}

func (s *AssignmentService) loadModule(ctx context.Context, moduleID string) (*models.Module, error) {
	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, notFoundOrInternal(err, "module not found", "failed to load module")
	}
	return module, nil
}

// evictTimetables drops the cached views of every teacher and room the
// module was or is now assigned to.
func (s *AssignmentService) evictTimetables(ctx context.Context, module *models.Module, target scheduleTarget) {
	keys := make([]string, 0, 4)
	seen := make(map[string]bool)
	add := func(kind models.DimensionKind, id string) {
		if id == "" {
			return
		}
		key := TimetableCacheKey(kind, id)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	add(models.DimensionTeacher, target.TeacherID)
	add(models.DimensionTeacher, pickID(nil, module.TeacherID))
	add(models.DimensionRoom, target.RoomID)
	add(models.DimensionRoom, pickID(nil, module.RoomID))
	_ = s.cache.Evict(ctx, keys...)
}

func reject(result *dto.SubmitScheduleResult, reason models.RejectionReason, message string) *dto.SubmitScheduleResult {
	result.Status = models.AssignmentRejected
	result.Reason = reason
	result.Message = message
	return result
}

func conflictMessage(kind models.DimensionKind, conflict timetable.Conflict) string {
	held := fmt.Sprintf("%s on %s %s-%s",
		conflict.Label,
		conflict.Occupied.Weekday,
		timetable.FormatClock(conflict.Occupied.StartMin),
		timetable.FormatClock(conflict.Occupied.EndMin),
	)
	switch kind {
	case models.DimensionParity:
		return "overlaps a cohort of opposite semester parity: " + held
	case models.DimensionTeacher:
		return "teacher already teaches " + held
	default:
		return "room already booked by " + held
	}
}
