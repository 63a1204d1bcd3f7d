package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type occupancyRepository interface {
	ListOccupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]models.OccupiedRangeRow, error)
}

// OccupancyService answers which ranges already hold a teacher, a room or a
// career cohort. Every call reads through to the repository.
type OccupancyService struct {
	repo   occupancyRepository
	logger *zap.Logger
}

// NewOccupancyService constructs the service.
func NewOccupancyService(repo occupancyRepository, logger *zap.Logger) *OccupancyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{repo: repo, logger: logger}
}

// Occupied returns the ranges committed under key by modules other than
// excludeModuleID. An empty key has no occupancy.
func (s *OccupancyService) Occupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]timetable.OccupiedRange, error) {
	if key.ID == "" {
		return nil, nil
	}
	rows, err := s.repo.ListOccupied(ctx, key, excludeModuleID)
	if err != nil {
		s.logger.Error("load occupancy failed",
			zap.String("dimension", string(key.Kind)),
			zap.String("key", key.ID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load occupancy")
	}
	occupied := make([]timetable.OccupiedRange, 0, len(rows))
	for _, row := range rows {
		occupied = append(occupied, row.Occupied())
	}
	return occupied, nil
}

// OccupiedAll concatenates the occupancy of every key, in key order.
func (s *OccupancyService) OccupiedAll(ctx context.Context, keys []models.OccupancyKey, excludeModuleID string) ([]timetable.OccupiedRange, error) {
	var all []timetable.OccupiedRange
	for _, key := range keys {
		occupied, err := s.Occupied(ctx, key, excludeModuleID)
		if err != nil {
			return nil, err
		}
		all = append(all, occupied...)
	}
	return all, nil
}
