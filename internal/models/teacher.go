package models

import "time"

// Teacher is a member of the teaching staff.
type Teacher struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Faculty       Faculty   `db:"faculty" json:"faculty"`
	DefaultRoomID *string   `db:"default_room_id" json:"default_room_id,omitempty"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	Search    string
	Faculty   string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
