package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yunshan-music/lesson-api/internal/models"
)

const roomColumns = "id, name, faculty, capacity, created_at, updated_at"

// RoomRepository provides persistence for teaching rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByID loads a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM rooms WHERE id = $1", roomColumns)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// FirstByFaculty returns the faculty's fallback room, the first room by name.
func (r *RoomRepository) FirstByFaculty(ctx context.Context, faculty models.Faculty) (*models.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM rooms WHERE faculty = $1 ORDER BY name ASC LIMIT 1", roomColumns)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, faculty); err != nil {
		return nil, err
	}
	return &room, nil
}
