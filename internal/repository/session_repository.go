package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yunshan-music/lesson-api/internal/models"
)

const sessionColumns = "id, course_id, course_name, teacher_id, teacher_name, student_id, student_name, student_role, class_name, room_id, room_name, day_of_week, period, start_week, end_week, group_id, kind, created_at, updated_at"

// SessionRepository provides persistence for scheduled sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns sessions with optional filtering and pagination.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.ScheduledSession, int, error) {
	base := "FROM scheduled_sessions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.DayOfWeek > 0 {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.Week > 0 {
		conditions = append(conditions, fmt.Sprintf("start_week <= $%d AND end_week >= $%d", len(args)+1, len(args)+2))
		args = append(args, filter.Week, filter.Week)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "day_of_week"
	}
	allowedSorts := map[string]bool{
		"day_of_week": true,
		"period":      true,
		"start_week":  true,
		"created_at":  true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "day_of_week"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, period ASC LIMIT %d OFFSET %d", sessionColumns, base, sortBy, order, size, offset)
	var sessions []models.ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	return sessions, total, nil
}

// ListAll loads the full occupancy snapshot used by conflict checks.
func (r *SessionRepository) ListAll(ctx context.Context) ([]models.ScheduledSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions", sessionColumns)
	var sessions []models.ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list all sessions: %w", err)
	}
	return sessions, nil
}

// ListByTeacher returns a teacher's sessions ordered by day and period.
func (r *SessionRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduledSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions WHERE teacher_id = $1 ORDER BY day_of_week ASC, period ASC", sessionColumns)
	var sessions []models.ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query, teacherID); err != nil {
		return nil, fmt.Errorf("list sessions by teacher: %w", err)
	}
	return sessions, nil
}

// ListByStudent returns a student's sessions ordered by day and period.
func (r *SessionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ScheduledSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions WHERE student_id = $1 ORDER BY day_of_week ASC, period ASC", sessionColumns)
	var sessions []models.ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query, studentID); err != nil {
		return nil, fmt.Errorf("list sessions by student: %w", err)
	}
	return sessions, nil
}

// ListByCourse returns all sessions committed for a course.
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID string) ([]models.ScheduledSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions WHERE course_id = $1 ORDER BY day_of_week ASC, period ASC", sessionColumns)
	var sessions []models.ScheduledSession
	if err := r.db.SelectContext(ctx, &sessions, query, courseID); err != nil {
		return nil, fmt.Errorf("list sessions by course: %w", err)
	}
	return sessions, nil
}

// FindByID loads a session by id.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.ScheduledSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions WHERE id = $1", sessionColumns)
	var session models.ScheduledSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// BulkCreate inserts many sessions within a single transaction.
func (r *SessionRepository) BulkCreate(ctx context.Context, sessions []models.ScheduledSession) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create sessions: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.BulkCreateWithTx(ctx, tx, sessions); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create sessions: %w", err)
	}
	return nil
}

// BulkCreateWithTx inserts sessions using an existing transaction.
func (r *SessionRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, sessions []models.ScheduledSession) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	return r.bulkInsertSessions(ctx, tx, sessions)
}

func (r *SessionRepository) bulkInsertSessions(ctx context.Context, exec sqlx.ExtContext, sessions []models.ScheduledSession) error {
	now := time.Now().UTC()
	for i := range sessions {
		payload := sessions[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		payload.UpdatedAt = now

		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO scheduled_sessions (id, course_id, course_name, teacher_id, teacher_name, student_id, student_name, student_role, class_name, room_id, room_name, day_of_week, period, start_week, end_week, group_id, kind, created_at, updated_at) VALUES (:id, :course_id, :course_name, :teacher_id, :teacher_name, :student_id, :student_name, :student_role, :class_name, :room_id, :room_name, :day_of_week, :period, :start_week, :end_week, :group_id, :kind, :created_at, :updated_at)`, &payload); err != nil {
			return fmt.Errorf("bulk insert session: %w", err)
		}
		sessions[i] = payload
	}
	return nil
}

// DeleteByGroup removes every session sharing a group id and reports how
// many rows were removed.
func (r *SessionRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_sessions WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete session group: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete session group rows: %w", err)
	}
	return rows, nil
}

// Delete removes a session by id.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
