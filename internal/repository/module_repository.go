package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const moduleColumns = `id, name, code, career_id, semester_number, teacher_id, room_id, theory_blocks, practice_blocks, projected_enrollment, created_at, updated_at`

// ModuleRepository reads modules and their block requirements.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// FindByID loads a module by id.
func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*models.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE id = $1`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// SumBlocksByTeacher totals the required blocks of every module assigned to
// the teacher, leaving out excludeModuleID when set.
func (r *ModuleRepository) SumBlocksByTeacher(ctx context.Context, teacherID, excludeModuleID string) (int, error) {
	query := `SELECT COALESCE(SUM(theory_blocks + practice_blocks), 0) FROM modules WHERE teacher_id = $1`
	args := []interface{}{teacherID}
	if excludeModuleID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeModuleID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("sum teacher blocks: %w", err)
	}
	return total, nil
}
