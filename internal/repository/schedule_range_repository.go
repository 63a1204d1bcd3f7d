package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

// ScheduleRangeRepository persists the weekly ranges of modules.
type ScheduleRangeRepository struct {
	db *sqlx.DB
}

// NewScheduleRangeRepository constructs the repository.
func NewScheduleRangeRepository(db *sqlx.DB) *ScheduleRangeRepository {
	return &ScheduleRangeRepository{db: db}
}

// ListByModule returns the stored ranges of a module ordered by weekday and start.
func (r *ScheduleRangeRepository) ListByModule(ctx context.Context, moduleID string) ([]models.ScheduleRange, error) {
	const query = `SELECT id, module_id, weekday, start_min, end_min, created_at FROM schedule_ranges WHERE module_id = $1 ORDER BY weekday ASC, start_min ASC`
	var ranges []models.ScheduleRange
	if err := r.db.SelectContext(ctx, &ranges, query, moduleID); err != nil {
		return nil, fmt.Errorf("list module ranges: %w", err)
	}
	return ranges, nil
}

// ReplaceModuleRanges stores the module assignment and swaps its ranges for
// the given ones in a single transaction. On failure nothing is changed.
func (r *ScheduleRangeRepository) ReplaceModuleRanges(ctx context.Context, assignment models.ModuleAssignment, ranges []models.ScheduleRange) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace module ranges: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const updateModule = `UPDATE modules SET teacher_id = :teacher_id, room_id = :room_id, career_id = :career_id, semester_number = :semester_number, updated_at = NOW() WHERE id = :id`
	res, err := tx.NamedExecContext(ctx, updateModule, assignment)
	if err != nil {
		return fmt.Errorf("update module assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update module assignment: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_ranges WHERE module_id = $1`, assignment.ModuleID); err != nil {
		return fmt.Errorf("delete module ranges: %w", err)
	}

	if err = r.insertRanges(ctx, tx, assignment.ModuleID, ranges); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace module ranges: %w", err)
	}
	return nil
}

func (r *ScheduleRangeRepository) insertRanges(ctx context.Context, exec sqlx.ExtContext, moduleID string, ranges []models.ScheduleRange) error {
	const query = `INSERT INTO schedule_ranges (id, module_id, weekday, start_min, end_min, created_at) VALUES (:id, :module_id, :weekday, :start_min, :end_min, :created_at)`
	now := time.Now().UTC()
	for i := range ranges {
		payload := ranges[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		payload.ModuleID = moduleID
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, query, payload); err != nil {
			return fmt.Errorf("insert schedule range: %w", err)
		}
	}
	return nil
}
