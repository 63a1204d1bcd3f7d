package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const occupancySelect = `SELECT m.id AS module_id, m.name AS module_name, m.code AS module_code, r.weekday, r.start_min, r.end_min
	FROM schedule_ranges r
	JOIN modules m ON m.id = r.module_id
	WHERE `

// OccupancyRepository lists the committed ranges holding a teacher, a room
// or a career cohort.
type OccupancyRepository struct {
	db *sqlx.DB
}

// NewOccupancyRepository constructs the repository.
func NewOccupancyRepository(db *sqlx.DB) *OccupancyRepository {
	return &OccupancyRepository{db: db}
}

// ListOccupied returns every stored range matching key, ordered by weekday
// and start. Parity lookups return the ranges of the career's modules whose
// semester has the opposite parity of key.Semester; modules without a
// semester belong to no cohort.
func (r *OccupancyRepository) ListOccupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]models.OccupiedRangeRow, error) {
	var (
		condition string
		args      []interface{}
	)
	switch key.Kind {
	case models.DimensionTeacher:
		condition = `m.teacher_id = $1`
		args = append(args, key.ID)
	case models.DimensionRoom:
		condition = `m.room_id = $1`
		args = append(args, key.ID)
	case models.DimensionParity:
		condition = `m.career_id = $1 AND m.semester_number > 0 AND m.semester_number % 2 = $2`
		args = append(args, key.ID, (models.Parity(key.Semester)+1)%2)
	default:
		return nil, fmt.Errorf("unknown occupancy dimension %q", key.Kind)
	}

	query := occupancySelect + condition
	if excludeModuleID != "" {
		query += fmt.Sprintf(` AND m.id <> $%d`, len(args)+1)
		args = append(args, excludeModuleID)
	}
	query += ` ORDER BY r.weekday ASC, r.start_min ASC, m.id ASC`

	var rows []models.OccupiedRangeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s occupancy: %w", key.Kind, err)
	}
	return rows, nil
}
