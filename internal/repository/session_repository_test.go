package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunshan-music/lesson-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func sessionRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "course_id", "course_name", "teacher_id", "teacher_name",
		"student_id", "student_name", "student_role", "class_name",
		"room_id", "room_name", "day_of_week", "period", "start_week",
		"end_week", "group_id", "kind", "created_at", "updated_at",
	}).AddRow(
		"ses1", "c1", "钢琴基础", "t1", "李老师",
		"s1", "王同学", models.RolePrimary, "音乐学2301",
		"r1", "琴房101", 1, 1, 1,
		16, "g1", models.SessionKindLesson, now, now,
	)
}

func TestSessionListWithFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_id, course_name, teacher_id, teacher_name, student_id, student_name, student_role, class_name, room_id, room_name, day_of_week, period, start_week, end_week, group_id, kind, created_at, updated_at FROM scheduled_sessions WHERE 1=1 AND teacher_id = $1 AND start_week <= $2 AND end_week >= $3 ORDER BY day_of_week ASC, period ASC LIMIT 20 OFFSET 0")).
		WithArgs("t1", 4, 4).
		WillReturnRows(sessionRows(now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM scheduled_sessions WHERE 1=1 AND teacher_id = $1 AND start_week <= $2 AND end_week >= $3")).
		WithArgs("t1", 4, 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sessions, total, err := repo.List(context.Background(), models.SessionFilter{TeacherID: "t1", Week: 4})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "王同学", sessions[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionListRejectsUnknownSort(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY day_of_week ASC, period ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(sessionRows(now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM scheduled_sessions WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.List(context.Background(), models.SessionFilter{SortBy: "1; DROP TABLE", SortOrder: "sideways"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionListByTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduled_sessions WHERE teacher_id = $1 ORDER BY day_of_week ASC, period ASC")).
		WithArgs("t1").
		WillReturnRows(sessionRows(now))

	sessions, err := repo.ListByTeacher(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionBulkCreateRunsInTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO scheduled_sessions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO scheduled_sessions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sessions := []models.ScheduledSession{
		{CourseID: "c1", TeacherID: "t1", StudentID: "s1", DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 8, GroupID: "g1", Kind: models.SessionKindLesson},
		{CourseID: "c1", TeacherID: "t1", StudentID: "s2", DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 8, GroupID: "g1", Kind: models.SessionKindLesson},
	}
	err := repo.BulkCreate(context.Background(), sessions)
	require.NoError(t, err)
	assert.NotEmpty(t, sessions[0].ID, "ids are assigned on insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionDeleteByGroupReportsRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduled_sessions WHERE group_id = $1")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	rows, err := repo.DeleteByGroup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
