package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type teacherRepository interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Delete(ctx context.Context, id string) error
}

type teacherAvailabilityRepository interface {
	GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherAvailability, error)
	Replace(ctx context.Context, availability *models.TeacherAvailability) error
}

// TeacherService manages teacher lifecycle and preference grids.
type TeacherService struct {
	repo         teacherRepository
	availability teacherAvailabilityRepository
	cache        *CacheService
	calendar     timetable.Calendar
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewTeacherService constructs the service.
func NewTeacherService(repo teacherRepository, availability teacherAvailabilityRepository, cache *CacheService, calendar timetable.Calendar, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		repo:         repo,
		availability: availability,
		cache:        cache,
		calendar:     calendar,
		validator:    validate,
		logger:       logger,
	}
}

// Delete removes a teacher and unassigns their modules.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err, "teacher not found", "failed to delete teacher")
	}
	_ = s.cache.Evict(ctx, TimetableCacheKey(models.DimensionTeacher, id))
	s.logger.Info("teacher deleted", zap.String("teacher_id", id))
	return nil
}

// GetAvailability returns the explicit cells of the teacher's grid.
func (s *TeacherService) GetAvailability(ctx context.Context, teacherID string) (*dto.TeacherAvailabilityView, error) {
	if _, err := s.repo.FindByID(ctx, teacherID); err != nil {
		return nil, notFoundOrInternal(err, "teacher not found", "failed to load teacher")
	}
	slots, err := s.loadSlots(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &dto.TeacherAvailabilityView{TeacherID: teacherID, Slots: slots}, nil
}

// ReplaceAvailability overwrites the teacher's grid with the given cells.
func (s *TeacherService) ReplaceAvailability(ctx context.Context, teacherID string, req dto.UpdateAvailabilityRequest) (*dto.TeacherAvailabilityView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.repo.FindByID(ctx, teacherID); err != nil {
		return nil, notFoundOrInternal(err, "teacher not found", "failed to load teacher")
	}

	cells := make(map[[2]int]models.AvailabilitySlot, len(req.Slots))
	for _, input := range req.Slots {
		if !input.Weekday.Valid() || !s.calendar.ValidBlock(*input.Block) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "availability slot outside of the block grid")
		}
		// the last entry for a cell wins
		cells[[2]int{int(input.Weekday), *input.Block}] = models.AvailabilitySlot{
			Weekday:   input.Weekday,
			Block:     *input.Block,
			Available: input.Available,
		}
	}
	slots := make([]models.AvailabilitySlot, 0, len(cells))
	for _, slot := range cells {
		slots = append(slots, slot)
	}
	sortSlots(slots)

	payload, err := json.Marshal(slots)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode availability")
	}
	if err := s.availability.Replace(ctx, &models.TeacherAvailability{TeacherID: teacherID, Slots: payload}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}
	return &dto.TeacherAvailabilityView{TeacherID: teacherID, Slots: slots}, nil
}

// Availability returns the teacher's grid for classification.
func (s *TeacherService) Availability(ctx context.Context, teacherID string) (timetable.Availability, error) {
	slots, err := s.loadSlots(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	grid := make(timetable.Availability)
	for _, slot := range slots {
		grid.Set(slot.Weekday, slot.Block, slot.Available)
	}
	return grid, nil
}

func (s *TeacherService) loadSlots(ctx context.Context, teacherID string) ([]models.AvailabilitySlot, error) {
	stored, err := s.availability.GetByTeacher(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.AvailabilitySlot{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	slots := []models.AvailabilitySlot{}
	if len(stored.Slots) > 0 {
		if err := stored.Slots.Unmarshal(&slots); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode availability")
		}
	}
	return slots, nil
}

func sortSlots(slots []models.AvailabilitySlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Weekday != slots[j].Weekday {
			return slots[i].Weekday < slots[j].Weekday
		}
		return slots[i].Block < slots[j].Block
	})
}
