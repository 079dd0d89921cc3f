package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunshan-music/lesson-api/internal/models"
)

func largeClassRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "class_name", "course_name", "teacher_name", "day_of_week",
		"period_start", "period_end", "week_range", "import_batch", "created_at",
	}).AddRow(
		"lc1", "音乐学2301", "大学英语", "张老师", 2,
		1, 2, "1-16", "batch1", now,
	)
}

func TestLargeClassListFiltersByClassName(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLargeClassRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM large_class_entries WHERE 1=1 AND class_name ILIKE $1 ORDER BY day_of_week ASC, period_start ASC LIMIT 20 OFFSET 0")).
		WithArgs("%音乐学%").
		WillReturnRows(largeClassRows(now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM large_class_entries WHERE 1=1 AND class_name ILIKE $1")).
		WithArgs("%音乐学%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.LargeClassFilter{ClassName: "音乐学"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "大学英语", entries[0].CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLargeClassBulkCreateAssignsIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLargeClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO large_class_entries").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entries := []models.LargeClassEntry{
		{ClassName: "音乐学2301", CourseName: "大学英语", DayOfWeek: 2, PeriodStart: 1, PeriodEnd: 2, WeekRange: "1-16", ImportBatch: "batch1"},
	}
	err := repo.BulkCreate(context.Background(), entries)
	require.NoError(t, err)
	assert.NotEmpty(t, entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLargeClassDeleteByBatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLargeClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM large_class_entries WHERE import_batch = $1")).
		WithArgs("batch1").
		WillReturnResult(sqlmock.NewResult(0, 12))

	rows, err := repo.DeleteByBatch(context.Background(), "batch1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
