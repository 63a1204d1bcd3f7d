package models

import "time"

// Teacher represents an instructor and the weekly hours they are contracted for.
type Teacher struct {
	ID              string    `db:"id" json:"id"`
	FullName        string    `db:"full_name" json:"full_name"`
	Email           *string   `db:"email" json:"email,omitempty"`
	ContractedHours float64   `db:"contracted_hours" json:"contracted_hours"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
