package models

import (
	"fmt"
	"time"
)

// Module is a course offered in one semester of a career.
type Module struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Code                string    `db:"code" json:"code"`
	CareerID            *string   `db:"career_id" json:"career_id,omitempty"`
	SemesterNumber      int       `db:"semester_number" json:"semester_number"`
	TeacherID           *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	RoomID              *string   `db:"room_id" json:"room_id,omitempty"`
	TheoryBlocks        int       `db:"theory_blocks" json:"theory_blocks"`
	PracticeBlocks      int       `db:"practice_blocks" json:"practice_blocks"`
	ProjectedEnrollment int       `db:"projected_enrollment" json:"projected_enrollment"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// RequiredBlocks is the weekly number of academic blocks the module must fill.
func (m Module) RequiredBlocks() int {
	return m.TheoryBlocks + m.PracticeBlocks
}

// Label renders the module the way conflicts refer to it.
func (m Module) Label() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Code)
}

// ModuleAssignment holds the fields written together with a module's ranges.
type ModuleAssignment struct {
	ModuleID       string  `db:"id"`
	TeacherID      *string `db:"teacher_id"`
	RoomID         *string `db:"room_id"`
	CareerID       *string `db:"career_id"`
	SemesterNumber int     `db:"semester_number"`
}

// Parity groups semesters into odd (1) and even (0) cohorts.
func Parity(semester int) int {
	return semester % 2
}
