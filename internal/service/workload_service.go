package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type workloadTeacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type workloadModuleReader interface {
	SumBlocksByTeacher(ctx context.Context, teacherID, excludeModuleID string) (int, error)
}

// WorkloadService measures teacher load against contracted hours.
type WorkloadService struct {
	teachers workloadTeacherReader
	modules  workloadModuleReader
	calendar timetable.Calendar
	logger   *zap.Logger
}

// NewWorkloadService constructs the service.
func NewWorkloadService(teachers workloadTeacherReader, modules workloadModuleReader, calendar timetable.Calendar, logger *zap.Logger) *WorkloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{teachers: teachers, modules: modules, calendar: calendar, logger: logger}
}

// ComputeWorkload summarises a teacher's load, leaving out excludeModuleID.
func (s *WorkloadService) ComputeWorkload(ctx context.Context, teacherID, excludeModuleID string) (*dto.WorkloadSummary, error) {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	blocks, err := s.modules.SumBlocksByTeacher(ctx, teacherID, excludeModuleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher workload")
	}

	assigned := s.calendar.Chronological(blocks)
	return &dto.WorkloadSummary{
		TeacherID:              teacher.ID,
		ExcludedModuleID:       excludeModuleID,
		AssignedBlocks:         blocks,
		AssignedChronological:  assigned,
		ContractedHours:        teacher.ContractedHours,
		AvailableChronological: math.Max(teacher.ContractedHours-assigned, 0),
		UtilizationPercent:     timetable.Utilization(assigned, teacher.ContractedHours),
		MaxBlocks:              s.calendar.MaxBlocks(teacher.ContractedHours),
	}, nil
}

// Admit reports whether the teacher can take deltaBlocks more on top of the
// modules other than excludeModuleID. The summary is returned either way.
func (s *WorkloadService) Admit(ctx context.Context, teacherID string, deltaBlocks int, excludeModuleID string) (bool, *dto.WorkloadSummary, error) {
	summary, err := s.ComputeWorkload(ctx, teacherID, excludeModuleID)
	if err != nil {
		return false, nil, err
	}
	admitted := s.calendar.Admits(summary.AssignedBlocks, deltaBlocks, summary.ContractedHours)
	if !admitted {
		s.logger.Debug("workload ceiling reached",
			zap.String("teacher_id", teacherID),
			zap.Int("assigned_blocks", summary.AssignedBlocks),
			zap.Int("requested_blocks", deltaBlocks),
			zap.Float64("contracted_hours", summary.ContractedHours),
		)
	}
	return admitted, summary, nil
}
