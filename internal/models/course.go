package models

import "time"

// RequiredSessions is the fixed number of deduplicated sessions a course must
// accumulate over the term.
const RequiredSessions = 16

// DefaultTotalWeeks is the standard term length.
const DefaultTotalWeeks = 16

// Course is a small-group or one-to-one lesson course.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Program   string    `db:"program" json:"program"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
