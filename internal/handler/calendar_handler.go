package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/timetable"
	"github.com/noah-isme/timetable-api/pkg/response"
)

// CalendarHandler describes the block grid to clients.
type CalendarHandler struct {
	calendar timetable.Calendar
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar timetable.Calendar) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Get godoc
// @Summary Weekdays and block grid
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.CalendarView{
		DayStart:         timetable.FormatClock(h.calendar.DayStart),
		DayEnd:           timetable.FormatClock(h.calendar.DayEnd()),
		BlockMinutes:     h.calendar.BlockMinutes,
		BlocksPerDay:     h.calendar.BlocksPerDay,
		ConversionFactor: h.calendar.ConversionFactor(),
		Weekdays:         timetable.Weekdays,
		Labels:           h.calendar.Labels(),
	})
}
