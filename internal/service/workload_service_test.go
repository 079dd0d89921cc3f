package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

type mockWorkloadSessions struct {
	byTeacher map[string][]models.ScheduledSession
	byStudent map[string][]models.ScheduledSession
}

func (m *mockWorkloadSessions) ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduledSession, error) {
	return m.byTeacher[teacherID], nil
}

func (m *mockWorkloadSessions) ListByStudent(ctx context.Context, studentID string) ([]models.ScheduledSession, error) {
	return m.byStudent[studentID], nil
}

type mockWorkloadTeachers struct {
	items map[string]*models.Teacher
}

func (m *mockWorkloadTeachers) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockWorkloadCourses struct {
	byTeacher map[string][]models.Course
}

func (m *mockWorkloadCourses) ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error) {
	return m.byTeacher[teacherID], nil
}

func TestCoefficientTable(t *testing.T) {
	tests := []struct {
		program     string
		composition string
		size        int
		weeks       int
		want        float64
	}{
		{models.ProgramGeneral, models.CompositionPrimary, 1, 16, 0.35},
		{models.ProgramGeneral, models.CompositionSecondary, 1, 16, 0.175},
		{models.ProgramGeneral, models.CompositionPrimary, 2, 16, 0.8},
		{models.ProgramGeneral, models.CompositionSecondary, 2, 16, 0.4},
		{models.ProgramGeneral, models.CompositionSecondary, 2, 8, 0.8},
		{models.ProgramGeneral, models.CompositionSecondary, 1, 8, 0.35},
		{models.ProgramGeneral, models.CompositionMixed, 2, 16, 0.6},
		{models.ProgramGeneral, models.CompositionSecondary, 3, 16, 0.9},
		{models.ProgramGeneral, models.CompositionMixed, 3, 16, 0.9},
		{models.ProgramGeneral, models.CompositionSecondary, 4, 16, 0.9},
		{models.ProgramGeneral, models.CompositionSecondary, 5, 16, 1.0},
		{models.ProgramGeneral, models.CompositionSecondary, 8, 16, 1.0},
		{models.ProgramUpgrade, models.CompositionSecondary, 1, 16, 0.35},
		{models.ProgramUpgrade, models.CompositionSecondary, 2, 16, 0.8},
		{models.ProgramSixSemester, models.CompositionPrimary, 1, 16, 0.7},
		{models.ProgramSixSemester, models.CompositionSecondary, 1, 16, 0.35},
		{models.ProgramSixSemester, models.CompositionSecondary, 1, 8, 0.7},
		{models.ProgramSixSemester, models.CompositionSecondary, 2, 16, 0.8},
	}
	for _, tt := range tests {
		got := Coefficient(tt.program, tt.composition, tt.size, tt.weeks)
		assert.InDelta(t, tt.want, got, 1e-9, "%s/%s size=%d weeks=%d", tt.program, tt.composition, tt.size, tt.weeks)
	}
}

func TestCoefficientDefaultFallback(t *testing.T) {
	assert.InDelta(t, 0.35, Coefficient(models.ProgramUpgrade, models.CompositionPrimary, 1, 16), 1e-9)
	assert.InDelta(t, 0.35, Coefficient(models.ProgramGeneral, models.CompositionMixed, 4, 16), 1e-9)
	assert.InDelta(t, 0.35, Coefficient("unknown", models.CompositionPrimary, 1, 16), 1e-9)
}

func TestCoefficientWeekBucketing(t *testing.T) {
	// 8 weeks or fewer uses the half-term rows, anything longer the full-term.
	assert.InDelta(t, 0.7, Coefficient(models.ProgramSixSemester, models.CompositionSecondary, 1, 6), 1e-9)
	assert.InDelta(t, 0.35, Coefficient(models.ProgramSixSemester, models.CompositionSecondary, 1, 12), 1e-9)
}

func TestWorkload(t *testing.T) {
	assert.InDelta(t, 5.6, Workload(0.35, 16), 1e-9)
	assert.InDelta(t, 0, Workload(0.8, 0), 1e-9)
}

func TestDedupSessionCount(t *testing.T) {
	sessions := []models.ScheduledSession{
		{DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 4},
		{DayOfWeek: 1, Period: 1, StartWeek: 3, EndWeek: 6},
		{DayOfWeek: 2, Period: 1, StartWeek: 1, EndWeek: 1},
	}
	assert.Equal(t, 7, DedupSessionCount(sessions))
	assert.Zero(t, DedupSessionCount(nil))
}

func TestReportGroupsByCourse(t *testing.T) {
	sessions := &mockWorkloadSessions{byTeacher: map[string][]models.ScheduledSession{
		"t1": {
			{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s1", StudentRole: models.RolePrimary, DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 16, Kind: models.SessionKindLesson},
			{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s2", StudentRole: models.RoleSecondary, DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 16, Kind: models.SessionKindLesson},
			{CourseID: "c2", CourseName: "声乐小组", StudentID: "s3", StudentRole: models.RoleSecondary, DayOfWeek: 2, Period: 3, StartWeek: 1, EndWeek: 8, Kind: models.SessionKindLesson},
			{CourseID: "lec", CourseName: "乐理", DayOfWeek: 3, Period: 1, StartWeek: 1, EndWeek: 16, Kind: models.SessionKindLecture},
		},
	}}
	teachers := &mockWorkloadTeachers{items: map[string]*models.Teacher{
		"t1": {ID: "t1", Name: "李老师", Faculty: models.FacultyPiano},
	}}
	courses := &mockWorkloadCourses{byTeacher: map[string][]models.Course{
		"t1": {
			{ID: "c1", Name: "钢琴基础", Category: models.CategoryPiano, Program: models.ProgramGeneral},
			{ID: "c2", Name: "声乐小组", Category: models.CategoryVocal, Program: models.ProgramGeneral},
		},
	}}

	svc := NewWorkloadService(sessions, teachers, courses, nil, zap.NewNop())
	report, err := svc.Report(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "李老师", report.TeacherName)
	require.Len(t, report.Courses, 2, "lectures are excluded")

	piano := report.Courses[0]
	assert.Equal(t, "c1", piano.CourseID)
	assert.Equal(t, models.CompositionMixed, piano.Composition)
	assert.Equal(t, 2, piano.GroupSize)
	assert.Equal(t, 16, piano.Weeks)
	assert.InDelta(t, 0.6, piano.Coefficient, 1e-9)
	assert.InDelta(t, 9.6, piano.Workload, 1e-9)

	vocal := report.Courses[1]
	assert.Equal(t, models.CompositionSecondary, vocal.Composition)
	assert.Equal(t, 8, vocal.Weeks)
	assert.InDelta(t, 0.35, vocal.Coefficient, 1e-9)
	assert.InDelta(t, 2.8, vocal.Workload, 1e-9)

	assert.InDelta(t, 9.6, report.FacultyTotals[string(models.FacultyPiano)], 1e-9)
	assert.InDelta(t, 2.8, report.FacultyTotals[string(models.FacultyVocal)], 1e-9)
	assert.InDelta(t, 12.4, report.Total, 1e-9)
}

func TestReportTeacherNotFound(t *testing.T) {
	svc := NewWorkloadService(&mockWorkloadSessions{}, &mockWorkloadTeachers{}, &mockWorkloadCourses{}, nil, zap.NewNop())

	_, err := svc.Report(context.Background(), "missing")
	require.Error(t, err)
}

func TestStudentProgressAggregation(t *testing.T) {
	sessions := &mockWorkloadSessions{byStudent: map[string][]models.ScheduledSession{
		"s1": {
			{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s1", StudentName: "王同学", DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 10, Kind: models.SessionKindLesson},
			{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s1", StudentName: "王同学", DayOfWeek: 1, Period: 1, StartWeek: 8, EndWeek: 12, Kind: models.SessionKindLesson},
		},
	}}
	svc := NewWorkloadService(sessions, &mockWorkloadTeachers{}, &mockWorkloadCourses{}, nil, zap.NewNop())

	progress, err := svc.StudentProgress(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, progress.Courses, 1)
	assert.Equal(t, "王同学", progress.StudentName)
	assert.Equal(t, 12, progress.Courses[0].Completed)
	assert.Equal(t, models.RequiredSessions, progress.Courses[0].Required)
	assert.Equal(t, 4, progress.Courses[0].Remaining)
}

func TestBuildStudentProgressCapsRemainingAtZero(t *testing.T) {
	sessions := []models.ScheduledSession{
		{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s1", DayOfWeek: 1, Period: 1, StartWeek: 1, EndWeek: 16, Kind: models.SessionKindLesson},
		{CourseID: "c1", CourseName: "钢琴基础", StudentID: "s1", DayOfWeek: 2, Period: 1, StartWeek: 1, EndWeek: 16, Kind: models.SessionKindLesson},
	}

	progress := BuildStudentProgress("s1", sessions)
	require.Len(t, progress.Courses, 1)
	assert.Equal(t, 32, progress.Courses[0].Completed)
	assert.Zero(t, progress.Courses[0].Remaining)
}
