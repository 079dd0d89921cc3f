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

const largeClassColumns = "id, class_name, course_name, teacher_name, day_of_week, period_start, period_end, week_range, import_batch, created_at"

// LargeClassRepository provides persistence for the imported lecture
// timetable.
type LargeClassRepository struct {
	db *sqlx.DB
}

// NewLargeClassRepository creates a new large-class repository.
func NewLargeClassRepository(db *sqlx.DB) *LargeClassRepository {
	return &LargeClassRepository{db: db}
}

// List returns timetable rows with optional filtering and pagination.
func (r *LargeClassRepository) List(ctx context.Context, filter models.LargeClassFilter) ([]models.LargeClassEntry, int, error) {
	base := "FROM large_class_entries WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("class_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.ClassName+"%")
	}
	if filter.TeacherName != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.TeacherName+"%")
	}
	if filter.DayOfWeek > 0 {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.ImportBatch != "" {
		conditions = append(conditions, fmt.Sprintf("import_batch = $%d", len(args)+1))
		args = append(args, filter.ImportBatch)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "day_of_week"
	}
	allowedSorts := map[string]bool{
		"day_of_week":  true,
		"period_start": true,
		"class_name":   true,
		"created_at":   true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, period_start ASC LIMIT %d OFFSET %d", largeClassColumns, base, sortBy, order, size, offset)
	var entries []models.LargeClassEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list large classes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count large classes: %w", err)
	}

	return entries, total, nil
}

// ListAll loads every timetable row for blackout evaluation.
func (r *LargeClassRepository) ListAll(ctx context.Context) ([]models.LargeClassEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM large_class_entries", largeClassColumns)
	var entries []models.LargeClassEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list all large classes: %w", err)
	}
	return entries, nil
}

// BulkCreate inserts a whole import batch within a transaction.
func (r *LargeClassRepository) BulkCreate(ctx context.Context, entries []models.LargeClassEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin large class import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for i := range entries {
		payload := entries[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, `INSERT INTO large_class_entries (id, class_name, course_name, teacher_name, day_of_week, period_start, period_end, week_range, import_batch, created_at) VALUES (:id, :class_name, :course_name, :teacher_name, :day_of_week, :period_start, :period_end, :week_range, :import_batch, :created_at)`, &payload); err != nil {
			return fmt.Errorf("insert large class entry: %w", err)
		}
		entries[i] = payload
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit large class import: %w", err)
	}
	return nil
}

// DeleteByBatch removes every row imported under one batch id.
func (r *LargeClassRepository) DeleteByBatch(ctx context.Context, batch string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM large_class_entries WHERE import_batch = $1`, batch)
	if err != nil {
		return 0, fmt.Errorf("delete import batch: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete import batch rows: %w", err)
	}
	return rows, nil
}

// Delete removes a single timetable row.
func (r *LargeClassRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM large_class_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete large class entry: %w", err)
	}
	return nil
}
