package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/timetable-api/internal/timetable"
)

// AvailabilitySlot is one explicit cell of a teacher's preference grid.
type AvailabilitySlot struct {
	Weekday   timetable.Weekday `json:"weekday"`
	Block     int               `json:"block"`
	Available bool              `json:"available"`
}

// TeacherAvailability stores the explicit preference cells of a teacher.
// Cells that are not listed count as available.
type TeacherAvailability struct {
	ID        string         `db:"id" json:"id"`
	TeacherID string         `db:"teacher_id" json:"teacher_id"`
	Slots     types.JSONText `db:"slots" json:"slots"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
