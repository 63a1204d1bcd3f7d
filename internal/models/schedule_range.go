package models

import (
	"time"

	"github.com/noah-isme/timetable-api/internal/timetable"
)

// ScheduleRange is one stored contiguous weekly range of a module.
type ScheduleRange struct {
	ID        string            `db:"id" json:"id"`
	ModuleID  string            `db:"module_id" json:"module_id"`
	Weekday   timetable.Weekday `db:"weekday" json:"weekday"`
	StartMin  int               `db:"start_min" json:"start_min"`
	EndMin    int               `db:"end_min" json:"end_min"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// Range returns the calendar range of the row.
func (r ScheduleRange) Range() timetable.Range {
	return timetable.Range{Weekday: r.Weekday, StartMin: r.StartMin, EndMin: r.EndMin}
}

// OccupiedRangeRow is a stored range joined with its module for occupancy lookups.
type OccupiedRangeRow struct {
	ModuleID   string            `db:"module_id"`
	ModuleName string            `db:"module_name"`
	ModuleCode string            `db:"module_code"`
	Weekday    timetable.Weekday `db:"weekday"`
	StartMin   int               `db:"start_min"`
	EndMin     int               `db:"end_min"`
}

// Occupied converts the row into an occupied calendar range.
func (r OccupiedRangeRow) Occupied() timetable.OccupiedRange {
	return timetable.OccupiedRange{
		Range:    timetable.Range{Weekday: r.Weekday, StartMin: r.StartMin, EndMin: r.EndMin},
		ModuleID: r.ModuleID,
		Label:    Module{Name: r.ModuleName, Code: r.ModuleCode}.Label(),
	}
}

// DimensionKind names the resource an occupancy lookup is keyed on.
type DimensionKind string

const (
	DimensionTeacher DimensionKind = "TEACHER"
	DimensionRoom    DimensionKind = "ROOM"
	DimensionParity  DimensionKind = "PARITY"
)

// OccupancyKey identifies the occupancy to look up. For parity lookups ID
// is the career and Semester the requesting module's semester.
type OccupancyKey struct {
	Kind     DimensionKind
	ID       string
	Semester int
}

// ScheduleConflict describes an existing range that blocks a submission.
type ScheduleConflict struct {
	Dimension DimensionKind     `json:"dimension"`
	ModuleID  string            `json:"module_id"`
	Label     string            `json:"label"`
	Weekday   timetable.Weekday `json:"weekday"`
	Start     string            `json:"start"`
	End       string            `json:"end"`
}
