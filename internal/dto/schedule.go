package dto

import (
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
)

// TimeRangeInput is a requested range. Start and End accept a clock label
// ("08:30"), a duration string ("8h30m") or minutes since midnight.
type TimeRangeInput struct {
	Weekday timetable.Weekday `json:"weekday" validate:"required"`
	Start   interface{}       `json:"start" validate:"required"`
	End     interface{}       `json:"end" validate:"required"`
}

// BlockSelectionInput selects block indices on one weekday.
type BlockSelectionInput struct {
	Weekday timetable.Weekday `json:"weekday" validate:"required"`
	Blocks  []int             `json:"blocks" validate:"required,min=1,dive,min=0"`
}

// ScheduleDraft is the shared shape of submissions and grid previews. Nil
// assignment fields fall back to what the module already stores; an empty
// id clears the assignment.
type ScheduleDraft struct {
	TeacherID      *string               `json:"teacherId"`
	RoomID         *string               `json:"roomId"`
	CareerID       *string               `json:"careerId"`
	SemesterNumber *int                  `json:"semesterNumber" validate:"omitempty,min=1,max=20"`
	Ranges         []TimeRangeInput      `json:"ranges" validate:"omitempty,dive"`
	Blocks         []BlockSelectionInput `json:"blocks" validate:"omitempty,dive"`
}

// SubmitScheduleRequest asks for a module's weekly schedule to be validated and committed.
type SubmitScheduleRequest struct {
	ScheduleDraft
}

// RangeView renders a stored or aggregated range.
type RangeView struct {
	Weekday timetable.Weekday `json:"weekday"`
	Start   string            `json:"start"`
	End     string            `json:"end"`
	Blocks  []int             `json:"blocks"`
}

// SubmitScheduleResult is the outcome of a submission. Rejections are
// results, not errors.
type SubmitScheduleResult struct {
	ModuleID           string                   `json:"moduleId"`
	Status             models.AssignmentState   `json:"status"`
	Reason             models.RejectionReason   `json:"reason,omitempty"`
	Message            string                   `json:"message,omitempty"`
	Conflict           *models.ScheduleConflict `json:"conflict,omitempty"`
	Ranges             []RangeView              `json:"ranges,omitempty"`
	BlockCount         int                      `json:"blockCount"`
	ChronologicalHours float64                  `json:"chronologicalHours"`
}

// Committed reports whether the submission was stored.
func (r *SubmitScheduleResult) Committed() bool {
	return r != nil && r.Status == models.AssignmentCommitted
}

// GridRequest asks for the classification of every cell of a draft.
type GridRequest struct {
	ScheduleDraft
}

// GridCellRequest asks for the classification of a single cell.
type GridCellRequest struct {
	ScheduleDraft
	Weekday timetable.Weekday `json:"weekday" validate:"required"`
	Block   *int              `json:"block" validate:"required,min=0"`
}

// GridResponse returns the classified draft grid.
type GridResponse struct {
	ModuleID string           `json:"moduleId"`
	Labels   []string         `json:"labels"`
	Selected int              `json:"selected"`
	Required int              `json:"required"`
	Cells    []timetable.Cell `json:"cells"`
}

// ModuleScheduleView is the stored schedule of a module.
type ModuleScheduleView struct {
	Module     models.Module `json:"module"`
	Ranges     []RangeView   `json:"ranges"`
	BlockCount int           `json:"blockCount"`
}

// WorkloadSummary reports a teacher's load against their contract.
type WorkloadSummary struct {
	TeacherID              string  `json:"teacherId"`
	ExcludedModuleID       string  `json:"excludedModuleId,omitempty"`
	AssignedBlocks         int     `json:"assignedBlocks"`
	AssignedChronological  float64 `json:"assignedChronological"`
	ContractedHours        float64 `json:"contractedHours"`
	AvailableChronological float64 `json:"availableChronological"`
	UtilizationPercent     float64 `json:"utilizationPercent"`
	MaxBlocks              int     `json:"maxBlocks"`
}

// AvailabilitySlotInput sets the preference of one cell.
type AvailabilitySlotInput struct {
	Weekday   timetable.Weekday `json:"weekday" validate:"required"`
	Block     *int              `json:"block" validate:"required,min=0"`
	Available bool              `json:"available"`
}

// UpdateAvailabilityRequest replaces a teacher's whole preference grid.
type UpdateAvailabilityRequest struct {
	Slots []AvailabilitySlotInput `json:"slots" validate:"dive"`
}

// TeacherAvailabilityView lists the explicit cells of a teacher's preference grid.
type TeacherAvailabilityView struct {
	TeacherID string                    `json:"teacherId"`
	Slots     []models.AvailabilitySlot `json:"slots"`
}

// TimetableEntry is one range of a weekly timetable view.
type TimetableEntry struct {
	ModuleID string            `json:"moduleId"`
	Label    string            `json:"label"`
	Weekday  timetable.Weekday `json:"weekday"`
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Blocks   []int             `json:"blocks"`
}

// TimetableView is the weekly timetable of a teacher or a room.
type TimetableView struct {
	OwnerID    string               `json:"ownerId"`
	Kind       models.DimensionKind `json:"kind"`
	BlockCount int                  `json:"blockCount"`
	Entries    []TimetableEntry     `json:"entries"`
}

// CalendarView describes the block grid to clients.
type CalendarView struct {
	DayStart         string              `json:"dayStart"`
	DayEnd           string              `json:"dayEnd"`
	BlockMinutes     int                 `json:"blockMinutes"`
	BlocksPerDay     int                 `json:"blocksPerDay"`
	ConversionFactor float64             `json:"conversionFactor"`
	Weekdays         []timetable.Weekday `json:"weekdays"`
	Labels           []string            `json:"labels"`
}
