package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
)

type timetableTeacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type timetableOccupancy interface {
	Occupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]timetable.OccupiedRange, error)
}

// TimetableViewService builds the weekly timetable of a teacher or a room.
// Views are read-only and may be served from cache; validation never reads them.
type TimetableViewService struct {
	teachers  timetableTeacherReader
	rooms     assignmentRoomReader
	occupancy timetableOccupancy
	cache     *CacheService
	calendar  timetable.Calendar
	ttl       time.Duration
	logger    *zap.Logger
}

// NewTimetableViewService constructs the service.
func NewTimetableViewService(teachers timetableTeacherReader, rooms assignmentRoomReader, occupancy timetableOccupancy, cache *CacheService, calendar timetable.Calendar, ttl time.Duration, logger *zap.Logger) *TimetableViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableViewService{
		teachers:  teachers,
		rooms:     rooms,
		occupancy: occupancy,
		cache:     cache,
		calendar:  calendar,
		ttl:       ttl,
		logger:    logger,
	}
}

// Teacher returns the weekly timetable of a teacher. The bool reports a cache hit.
func (s *TimetableViewService) Teacher(ctx context.Context, teacherID string) (*dto.TimetableView, bool, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		return nil, false, notFoundOrInternal(err, "teacher not found", "failed to load teacher")
	}
	return s.view(ctx, models.DimensionTeacher, teacherID)
}

// Room returns the weekly timetable of a room. The bool reports a cache hit.
func (s *TimetableViewService) Room(ctx context.Context, roomID string) (*dto.TimetableView, bool, error) {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return nil, false, notFoundOrInternal(err, "room not found", "failed to load room")
	}
	return s.view(ctx, models.DimensionRoom, roomID)
}

func (s *TimetableViewService) view(ctx context.Context, kind models.DimensionKind, id string) (*dto.TimetableView, bool, error) {
	key := TimetableCacheKey(kind, id)
	var cached dto.TimetableView
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	occupied, err := s.occupancy.Occupied(ctx, models.OccupancyKey{Kind: kind, ID: id}, "")
	if err != nil {
		return nil, false, err
	}

	view := &dto.TimetableView{OwnerID: id, Kind: kind, Entries: make([]dto.TimetableEntry, 0, len(occupied))}
	for _, held := range occupied {
		indices, err := s.calendar.Decompose(held.Range)
		if err != nil {
			s.logger.Warn("stored range off the block grid",
				zap.String("module_id", held.ModuleID),
				zap.String("range", held.Range.String()),
			)
		}
		view.BlockCount += len(indices)
		view.Entries = append(view.Entries, dto.TimetableEntry{
			ModuleID: held.ModuleID,
			Label:    held.Label,
			Weekday:  held.Weekday,
			Start:    timetable.FormatClock(held.StartMin),
			End:      timetable.FormatClock(held.EndMin),
			Blocks:   indices,
		})
	}

	_ = s.cache.Set(ctx, key, view, s.ttl)
	return view, false, nil
}
