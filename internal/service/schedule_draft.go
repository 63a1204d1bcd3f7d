package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
)

// scheduleTarget is the assignment a draft would give a module.
type scheduleTarget struct {
	ModuleID  string
	TeacherID string
	RoomID    string
	CareerID  string
	Semester  int
}

// resolveTarget overlays the draft on the stored module. An explicit empty
// id clears the assignment.
func resolveTarget(module *models.Module, draft dto.ScheduleDraft) scheduleTarget {
	target := scheduleTarget{
		ModuleID:  module.ID,
		TeacherID: pickID(draft.TeacherID, module.TeacherID),
		RoomID:    pickID(draft.RoomID, module.RoomID),
		CareerID:  pickID(draft.CareerID, module.CareerID),
		Semester:  module.SemesterNumber,
	}
	if draft.SemesterNumber != nil {
		target.Semester = *draft.SemesterNumber
	}
	return target
}

func pickID(override, stored *string) string {
	if override != nil {
		return strings.TrimSpace(*override)
	}
	if stored != nil {
		return *stored
	}
	return ""
}

// occupancyKeys lists the lookups of a target in validation order: parity,
// teacher, room. Unassigned dimensions are skipped.
func (t scheduleTarget) occupancyKeys() []models.OccupancyKey {
	keys := make([]models.OccupancyKey, 0, 3)
	if t.CareerID != "" && t.Semester > 0 {
		keys = append(keys, models.OccupancyKey{Kind: models.DimensionParity, ID: t.CareerID, Semester: t.Semester})
	}
	if t.TeacherID != "" {
		keys = append(keys, models.OccupancyKey{Kind: models.DimensionTeacher, ID: t.TeacherID})
	}
	if t.RoomID != "" {
		keys = append(keys, models.OccupancyKey{Kind: models.DimensionRoom, ID: t.RoomID})
	}
	return keys
}

func (t scheduleTarget) assignment() models.ModuleAssignment {
	return models.ModuleAssignment{
		ModuleID:       t.ModuleID,
		TeacherID:      optionalID(t.TeacherID),
		RoomID:         optionalID(t.RoomID),
		CareerID:       optionalID(t.CareerID),
		SemesterNumber: t.Semester,
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// draftSelection normalises every requested range and merges it with the
// explicitly selected blocks.
func draftSelection(cal timetable.Calendar, draft dto.ScheduleDraft) (timetable.BlockSet, error) {
	ranges := make([]timetable.Range, 0, len(draft.Ranges))
	for _, input := range draft.Ranges {
		start, err := timetable.NormalizeTime(input.Start)
		if err != nil {
			return nil, timetable.Malformed(input.Weekday, "start: %v", err)
		}
		end, err := timetable.NormalizeTime(input.End)
		if err != nil {
			return nil, timetable.Malformed(input.Weekday, "end: %v", err)
		}
		ranges = append(ranges, timetable.Range{Weekday: input.Weekday, StartMin: start, EndMin: end})
	}

	blocks := make(timetable.BlockSet)
	for _, selection := range draft.Blocks {
		blocks[selection.Weekday] = append(blocks[selection.Weekday], selection.Blocks...)
	}
	return cal.Select(ranges, blocks)
}

// rangeViews renders ranges with their block indices and returns the number
// of grid blocks they cover. Ranges off the grid are logged and add no blocks.
func rangeViews(cal timetable.Calendar, ranges []timetable.Range, logger *zap.Logger) ([]dto.RangeView, int) {
	views := make([]dto.RangeView, 0, len(ranges))
	blocks := 0
	for _, r := range ranges {
		indices, err := cal.Decompose(r)
		if err != nil {
			logger.Warn("stored range off the block grid", zap.String("range", r.String()), zap.Error(err))
		}
		blocks += len(indices)
		views = append(views, dto.RangeView{
			Weekday: r.Weekday,
			Start:   timetable.FormatClock(r.StartMin),
			End:     timetable.FormatClock(r.EndMin),
			Blocks:  indices,
		})
	}
	return views, blocks
}
