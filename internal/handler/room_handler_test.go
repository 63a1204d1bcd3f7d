package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-api/internal/middleware"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type fakeRoomSrv struct{ err error }

func (f *fakeRoomSrv) Delete(context.Context, string) error { return f.err }

func TestRoomHandler(t *testing.T) {
	rooms := &fakeRoomSrv{}
	views := &fakeTimetableSrv{}
	router := newTestRouter()
	router.Use(middleware.WithResponseMeta())
	h := NewRoomHandler(rooms, views)
	router.GET("/rooms/:id/timetable", h.Timetable)
	router.DELETE("/rooms/:id", h.Delete)

	rec := performRequest(router, http.MethodGet, "/rooms/r1/timetable", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "ROOM", envelope.Data["kind"])
	assert.Equal(t, false, envelope.Meta["cache_hit"])

	assert.Equal(t, http.StatusNoContent, performRequest(router, http.MethodDelete, "/rooms/r1", nil).Code)

	rooms.err = appErrors.Clone(appErrors.ErrNotFound, "room not found")
	assert.Equal(t, http.StatusNotFound, performRequest(router, http.MethodDelete, "/rooms/r1", nil).Code)
}
