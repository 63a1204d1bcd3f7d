package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

func rangesRequest(teacherID, roomID string, ranges ...dto.TimeRangeInput) dto.SubmitScheduleRequest {
	req := dto.SubmitScheduleRequest{}
	if teacherID != "" {
		req.TeacherID = strPtr(teacherID)
	}
	if roomID != "" {
		req.RoomID = strPtr(roomID)
	}
	req.Ranges = ranges
	return req
}

func monday(start, end interface{}) dto.TimeRangeInput {
	return dto.TimeRangeInput{Weekday: timetable.Monday, Start: start, End: end}
}

func TestAssignmentServiceEndToEndTeacherConflictBeforeRoom(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 10)
	store.addRoom("R")
	store.addModule(models.Module{ID: "M1", Name: "Algebra", Code: "MAT-101", TheoryBlocks: 2})
	store.addModule(models.Module{ID: "M2", Name: "Physics", Code: "PHY-101", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)

	first, err := assignments.Submit(context.Background(), "M1", rangesRequest("T", "R", monday("08:30", "10:00")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, first.Status)
	assert.Equal(t, 2, first.BlockCount)
	assert.Equal(t, 1.5, first.ChronologicalHours)
	require.Len(t, first.Ranges, 1)
	assert.Equal(t, []int{0, 1}, first.Ranges[0].Blocks)
	require.Len(t, store.ranges["M1"], 1)
	assert.Equal(t, 510, store.ranges["M1"][0].StartMin)
	assert.Equal(t, 600, store.ranges["M1"][0].EndMin)
	assert.Equal(t, "T", *store.modules["M1"].TeacherID)

	second, err := assignments.Submit(context.Background(), "M2", rangesRequest("T", "R", monday("09:15", "10:00")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentRejected, second.Status)
	assert.Equal(t, models.ReasonTeacherConflict, second.Reason)
	require.NotNil(t, second.Conflict)
	assert.Equal(t, "M1", second.Conflict.ModuleID)
	assert.Equal(t, "Algebra (MAT-101)", second.Conflict.Label)
	assert.Equal(t, timetable.Monday, second.Conflict.Weekday)
	assert.Equal(t, "08:30", second.Conflict.Start)
	assert.Equal(t, "10:00", second.Conflict.End)
	assert.Contains(t, second.Message, "Algebra (MAT-101)")
	assert.Empty(t, store.ranges["M2"])
}

func TestAssignmentServiceRoomConflict(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T1", 10)
	store.addTeacher("T2", 10)
	store.addRoom("R")
	store.addModule(models.Module{ID: "M1", TheoryBlocks: 2})
	store.addModule(models.Module{ID: "M2", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)

	_, err := assignments.Submit(context.Background(), "M1", rangesRequest("T1", "R", monday("08:30", "10:00")))
	require.NoError(t, err)

	result, err := assignments.Submit(context.Background(), "M2", rangesRequest("T2", "R", monday("09:15", "10:00")))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonRoomConflict, result.Reason)
	assert.Equal(t, models.DimensionRoom, result.Conflict.Dimension)

	touching, err := assignments.Submit(context.Background(), "M2", rangesRequest("T2", "R", monday("10:00", "10:45")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, touching.Status)
}

func TestAssignmentServiceParityBoundary(t *testing.T) {
	store := newMemoryStore()
	for _, id := range []string{"TA", "TB", "TD"} {
		store.addTeacher(id, 20)
	}
	for _, id := range []string{"RA", "RB", "RD"} {
		store.addRoom(id)
	}
	career := strPtr("C")
	store.addModule(models.Module{ID: "A", CareerID: career, SemesterNumber: 1, TheoryBlocks: 1})
	store.addModule(models.Module{ID: "B", CareerID: career, SemesterNumber: 2, TheoryBlocks: 1})
	store.addModule(models.Module{ID: "D", CareerID: career, SemesterNumber: 3, TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	a, err := assignments.Submit(ctx, "A", rangesRequest("TA", "RA", monday("08:30", "09:15")))
	require.NoError(t, err)
	require.Equal(t, models.AssignmentCommitted, a.Status)

	b, err := assignments.Submit(ctx, "B", rangesRequest("TB", "RB", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonParityConflict, b.Reason)
	assert.Equal(t, "A", b.Conflict.ModuleID)

	d, err := assignments.Submit(ctx, "D", rangesRequest("TD", "RD", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, d.Status)

	// another career is never a parity conflict
	other := strPtr("OTHER")
	store.addModule(models.Module{ID: "E", CareerID: other, SemesterNumber: 2, TheoryBlocks: 1})
	e, err := assignments.Submit(ctx, "E", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, e.Status)
}

func TestAssignmentServiceContractBoundary(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 44)
	teacher := strPtr("T")
	store.addModule(models.Module{ID: "BULK", TeacherID: teacher, TheoryBlocks: 40, PracticeBlocks: 17})
	store.addModule(models.Module{ID: "FITS", TheoryBlocks: 1})
	store.addModule(models.Module{ID: "OVER", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	req := dto.SubmitScheduleRequest{}
	req.TeacherID = teacher
	req.Blocks = []dto.BlockSelectionInput{{Weekday: timetable.Friday, Blocks: []int{0}}}
	fits, err := assignments.Submit(ctx, "FITS", req)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, fits.Status, "58th block fits in 44 hours")

	req.Blocks = []dto.BlockSelectionInput{{Weekday: timetable.Friday, Blocks: []int{5}}}
	over, err := assignments.Submit(ctx, "OVER", req)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentRejected, over.Status)
	assert.Equal(t, models.ReasonOverContract, over.Reason)
	assert.Contains(t, over.Message, "0.50 h remaining")
	assert.Empty(t, store.ranges["OVER"])
}

func TestAssignmentServiceHourMismatchRunsFirst(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", Name: "Lab", Code: "LAB-1", TheoryBlocks: 1, PracticeBlocks: 1})
	store.occupancyErr = errors.New("should not be queried")
	assignments, _, _ := newTestServices(store, nil)

	result, err := assignments.Submit(context.Background(), "M", rangesRequest("", "", monday("08:30", "10:45")))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonHourMismatch, result.Reason)
	assert.Equal(t, 3, result.BlockCount)
	assert.Equal(t, "Lab (LAB-1) requires 2 blocks (1 theory + 1 practice), 3 selected", result.Message)
}

func TestAssignmentServiceMalformedRanges(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 2})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	cases := map[string]dto.SubmitScheduleRequest{
		"partial block": rangesRequest("", "", monday("08:30", "09:00")),
		"off grid":      rangesRequest("", "", monday("08:00", "09:30")),
		"bad label":     rangesRequest("", "", monday("half past eight", "10:00")),
		"overlapping":   rangesRequest("", "", monday("08:30", "09:15"), monday("08:30", "09:15")),
	}
	for name, req := range cases {
		result, err := assignments.Submit(ctx, "M", req)
		require.NoError(t, err, name)
		assert.Equal(t, models.ReasonMalformedRange, result.Reason, name)
	}
	assert.Zero(t, store.replaceCalls)
}

func TestAssignmentServiceAcceptsMixedTimeRepresentations(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 3})
	assignments, _, _ := newTestServices(store, nil)

	req := rangesRequest("", "",
		monday(float64(510), "9h15m"),
		dto.TimeRangeInput{Weekday: timetable.Tuesday, Start: "10:00:00", End: float64(645)},
	)
	req.Blocks = []dto.BlockSelectionInput{{Weekday: timetable.Monday, Blocks: []int{1}}}

	result, err := assignments.Submit(context.Background(), "M", req)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentCommitted, result.Status, result.Message)
	require.Len(t, result.Ranges, 2)
	assert.Equal(t, "08:30", result.Ranges[0].Start)
	assert.Equal(t, "10:00", result.Ranges[0].End)
	assert.Equal(t, timetable.Tuesday, result.Ranges[1].Weekday)
}

func TestAssignmentServiceIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 10)
	store.addRoom("R")
	store.addModule(models.Module{ID: "M1", TheoryBlocks: 2})
	store.addModule(models.Module{ID: "M2", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	req := rangesRequest("T", "R", monday("08:30", "10:00"))
	first, err := assignments.Submit(ctx, "M1", req)
	require.NoError(t, err)
	again, err := assignments.Submit(ctx, "M1", req)
	require.NoError(t, err)
	assert.Equal(t, first.Status, again.Status)
	assert.Equal(t, first.Reason, again.Reason)
	assert.Equal(t, first.Ranges, again.Ranges)

	clash := rangesRequest("T", "R", monday("08:30", "09:15"))
	r1, err := assignments.Submit(ctx, "M2", clash)
	require.NoError(t, err)
	r2, err := assignments.Submit(ctx, "M2", clash)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentRejected, r1.Status)
	assert.Equal(t, r1.Reason, r2.Reason)
	assert.Equal(t, r1.Conflict, r2.Conflict)
}

func TestAssignmentServicePersistenceFailureKeepsPreviousRanges(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	_, err := assignments.Submit(ctx, "M", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)
	previous := append([]models.ScheduleRange(nil), store.ranges["M"]...)

	store.replaceErr = errors.New("tx aborted")
	result, err := assignments.Submit(ctx, "M", rangesRequest("", "", monday("12:15", "13:00")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentRejected, result.Status)
	assert.Equal(t, models.ReasonPersistenceError, result.Reason)
	assert.Equal(t, previous, store.ranges["M"])
}

func TestAssignmentServiceOccupancyFailureIsPersistenceError(t *testing.T) {
	store := newMemoryStore()
	store.addRoom("R")
	store.addModule(models.Module{ID: "M", TheoryBlocks: 1})
	store.occupancyErr = errors.New("connection reset")
	assignments, _, _ := newTestServices(store, nil)

	result, err := assignments.Submit(context.Background(), "M", rangesRequest("", "R", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonPersistenceError, result.Reason)
	assert.Zero(t, store.replaceCalls)
}

func TestAssignmentServiceErrors(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	_, err := assignments.Submit(ctx, "missing", rangesRequest("", "", monday("08:30", "09:15")))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = assignments.Submit(ctx, "M", rangesRequest("ghost", "", monday("08:30", "09:15")))
	require.Error(t, err)
	assert.Equal(t, "teacher not found", appErrors.FromError(err).Message)

	_, err = assignments.Submit(ctx, "M", rangesRequest("", "ghost", monday("08:30", "09:15")))
	require.Error(t, err)
	assert.Equal(t, "room not found", appErrors.FromError(err).Message)

	_, err = assignments.Submit(ctx, "M", rangesRequest("", "", dto.TimeRangeInput{Start: "08:30", End: "09:15"}))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceFallsBackToStoredAssignment(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 10)
	store.addModule(models.Module{ID: "M1", TeacherID: strPtr("T"), TheoryBlocks: 1})
	store.addModule(models.Module{ID: "M2", TeacherID: strPtr("T"), TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	_, err := assignments.Submit(ctx, "M1", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)

	result, err := assignments.Submit(ctx, "M2", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonTeacherConflict, result.Reason)

	cleared := rangesRequest("", "", monday("08:30", "09:15"))
	cleared.TeacherID = strPtr("")
	result, err = assignments.Submit(ctx, "M2", cleared)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, result.Status)
	assert.Nil(t, store.modules["M2"].TeacherID)
}

func TestAssignmentServiceEvictsTimetableViews(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 10)
	store.addTeacher("OLD", 10)
	store.addRoom("R")
	store.addModule(models.Module{ID: "M", TeacherID: strPtr("OLD"), TheoryBlocks: 1})
	cacheRepo := newMemoryCache()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	assignments, _, _ := newTestServices(store, cache)

	result, err := assignments.Submit(context.Background(), "M", rangesRequest("T", "R", monday("08:30", "09:15")))
	require.NoError(t, err)
	require.True(t, result.Committed())
	assert.ElementsMatch(t, []string{"timetable:TEACHER:T", "timetable:TEACHER:OLD", "timetable:ROOM:R"}, cacheRepo.deleted)
}

func TestAssignmentServiceSchedule(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 3})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	req := dto.SubmitScheduleRequest{}
	req.Blocks = []dto.BlockSelectionInput{
		{Weekday: timetable.Wednesday, Blocks: []int{4, 3}},
		{Weekday: timetable.Monday, Blocks: []int{0}},
	}
	_, err := assignments.Submit(ctx, "M", req)
	require.NoError(t, err)

	view, err := assignments.Schedule(ctx, "M")
	require.NoError(t, err)
	assert.Equal(t, 3, view.BlockCount)
	require.Len(t, view.Ranges, 2)
	assert.Equal(t, timetable.Monday, view.Ranges[0].Weekday)
	assert.Equal(t, []int{3, 4}, view.Ranges[1].Blocks)

	_, err = assignments.Schedule(ctx, "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceEmptyIDsClearAssignment(t *testing.T) {
	store := newMemoryStore()
	store.addTeacher("T", 10)
	store.addRoom("R")
	store.addModule(models.Module{ID: "M", TeacherID: strPtr("T"), RoomID: strPtr("R"), CareerID: strPtr("C"), SemesterNumber: 2, TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)

	req := rangesRequest("", "", monday("08:30", "09:15"))
	req.TeacherID = strPtr("")
	req.RoomID = strPtr(" ")
	req.CareerID = strPtr("")
	result, err := assignments.Submit(context.Background(), "M", req)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentCommitted, result.Status)

	module := store.modules["M"]
	assert.Nil(t, module.TeacherID)
	assert.Nil(t, module.RoomID)
	assert.Nil(t, module.CareerID)
	assert.Equal(t, 2, module.SemesterNumber)
}

func TestAssignmentServiceModulesWithoutSemesterHaveNoCohort(t *testing.T) {
	store := newMemoryStore()
	career := strPtr("C")
	store.addModule(models.Module{ID: "Z", CareerID: career, TheoryBlocks: 1})
	store.addModule(models.Module{ID: "A", CareerID: career, SemesterNumber: 1, TheoryBlocks: 1})
	assignments, _, _ := newTestServices(store, nil)
	ctx := context.Background()

	z, err := assignments.Submit(ctx, "Z", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)
	require.Equal(t, models.AssignmentCommitted, z.Status)

	a, err := assignments.Submit(ctx, "A", rangesRequest("", "", monday("08:30", "09:15")))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCommitted, a.Status)
	assert.Empty(t, a.Reason)
}

func TestAssignmentServiceScheduleCountsOnlyGridBlocks(t *testing.T) {
	store := newMemoryStore()
	store.addModule(models.Module{ID: "M", TheoryBlocks: 2})
	store.ranges["M"] = []models.ScheduleRange{
		{ID: "r1", ModuleID: "M", Weekday: timetable.Monday, StartMin: 480, EndMin: 540},
		{ID: "r2", ModuleID: "M", Weekday: timetable.Tuesday, StartMin: 510, EndMin: 600},
	}
	core, logs := observer.New(zapcore.WarnLevel)
	cal := timetable.DefaultCalendar()
	occupancy := NewOccupancyService(store, zap.NewNop())
	workload := NewWorkloadService(memoryTeachers{store}, memoryModules{store}, cal, zap.NewNop())
	assignments := NewAssignmentService(memoryModules{store}, store, memoryRooms{store}, occupancy, workload, nil, nil, cal, nil, zap.New(core))

	view, err := assignments.Schedule(context.Background(), "M")
	require.NoError(t, err)
	assert.Equal(t, 2, view.BlockCount)
	require.Len(t, view.Ranges, 2)
	assert.Empty(t, view.Ranges[0].Blocks)
	assert.Equal(t, []int{0, 1}, view.Ranges[1].Blocks)

	entries := logs.FilterMessage("stored range off the block grid").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "M", entries[0].ContextMap()["module_id"])
}
