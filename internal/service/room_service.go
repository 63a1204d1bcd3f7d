package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
)

type roomRepository interface {
	Delete(ctx context.Context, id string) error
}

// RoomService manages room lifecycle.
type RoomService struct {
	repo   roomRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewRoomService constructs the service.
func NewRoomService(repo roomRepository, cache *CacheService, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, logger: logger}
}

// Delete removes a room and clears it from the modules booked in it.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err, "room not found", "failed to delete room")
	}
	_ = s.cache.Evict(ctx, TimetableCacheKey(models.DimensionRoom, id))
	s.logger.Info("room deleted", zap.String("room_id", id))
	return nil
}
