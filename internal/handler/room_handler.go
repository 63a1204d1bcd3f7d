package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type roomLifecycleService interface {
	Delete(ctx context.Context, id string) error
}

type roomTimetableService interface {
	Room(ctx context.Context, roomID string) (*dto.TimetableView, bool, error)
}

// RoomHandler exposes room timetable and lifecycle endpoints.
type RoomHandler struct {
	rooms     roomLifecycleService
	timetable roomTimetableService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(rooms roomLifecycleService, timetable roomTimetableService) *RoomHandler {
	return &RoomHandler{rooms: rooms, timetable: timetable}
}

// Timetable godoc
// @Summary Weekly timetable of a room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/timetable [get]
func (h *RoomHandler) Timetable(c *gin.Context) {
	roomID, ok := pathID(c, "id", "room id is required")
	if !ok {
		return
	}
	start := time.Now()
	view, cacheHit, err := h.timetable.Room(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimetable(c, view, cacheHit, start)
}

// Delete godoc
// @Summary Delete a room
// @Tags Rooms
// @Param id path string true "Room ID"
// @Success 204
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, ok := pathID(c, "id", "room id is required")
	if !ok {
		return
	}
	if err := h.rooms.Delete(c.Request.Context(), roomID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
