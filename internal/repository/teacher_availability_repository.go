package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

// TeacherAvailabilityRepository persists teacher preference grids.
type TeacherAvailabilityRepository struct {
	db *sqlx.DB
}

// NewTeacherAvailabilityRepository constructs the repository.
func NewTeacherAvailabilityRepository(db *sqlx.DB) *TeacherAvailabilityRepository {
	return &TeacherAvailabilityRepository{db: db}
}

// GetByTeacher returns the stored grid of a teacher.
func (r *TeacherAvailabilityRepository) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherAvailability, error) {
	const query = `SELECT id, teacher_id, slots, created_at, updated_at FROM teacher_availability WHERE teacher_id = $1`
	var availability models.TeacherAvailability
	if err := r.db.GetContext(ctx, &availability, query, teacherID); err != nil {
		return nil, err
	}
	return &availability, nil
}

// Replace stores the grid, overwriting any previous one of the same teacher.
func (r *TeacherAvailabilityRepository) Replace(ctx context.Context, availability *models.TeacherAvailability) error {
	if availability.ID == "" {
		availability.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if availability.CreatedAt.IsZero() {
		availability.CreatedAt = now
	}
	availability.UpdatedAt = now
	if len(availability.Slots) == 0 {
		availability.Slots = []byte("[]")
	}

	const query = `INSERT INTO teacher_availability (id, teacher_id, slots, created_at, updated_at)
		VALUES (:id, :teacher_id, :slots, :created_at, :updated_at)
		ON CONFLICT (teacher_id) DO UPDATE
		SET slots = EXCLUDED.slots,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, availability); err != nil {
		return fmt.Errorf("replace teacher availability: %w", err)
	}
	return nil
}
