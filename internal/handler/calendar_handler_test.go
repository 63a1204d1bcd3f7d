package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-api/internal/timetable"
)

func TestCalendarHandler(t *testing.T) {
	router := newTestRouter()
	router.GET("/calendar", NewCalendarHandler(timetable.DefaultCalendar()).Get)

	rec := performRequest(router, http.MethodGet, "/calendar", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "08:30", envelope.Data["dayStart"])
	assert.Equal(t, "22:00", envelope.Data["dayEnd"])
	assert.Equal(t, float64(18), envelope.Data["blocksPerDay"])
	assert.Equal(t, 0.75, envelope.Data["conversionFactor"])
	assert.Len(t, envelope.Data["labels"], 18)
	assert.Equal(t, []interface{}{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}, envelope.Data["weekdays"])
}
