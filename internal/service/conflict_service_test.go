package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

func occupied(teacher, student, room, kind string, day, period, startWeek, endWeek int) models.ScheduledSession {
	return models.ScheduledSession{
		ID:          "existing",
		CourseID:    "c-prev",
		CourseName:  "已有课程",
		TeacherID:   teacher,
		TeacherName: "李老师",
		StudentID:   student,
		StudentName: "王同学",
		RoomID:      room,
		RoomName:    "琴房101",
		DayOfWeek:   day,
		Period:      period,
		StartWeek:   startWeek,
		EndWeek:     endWeek,
		Kind:        kind,
	}
}

func slotCheck(day, period, startWeek, endWeek int) SlotCheck {
	return SlotCheck{
		DayOfWeek:  day,
		Period:     period,
		StartWeek:  startWeek,
		EndWeek:    endWeek,
		TeacherID:  "t1",
		StudentIDs: []string{"s1"},
		RoomID:     "r1",
	}
}

func TestCheckRoomConflictWinsOverTeacher(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t2", "s9", "r1", models.SessionKindLesson, 1, 1, 1, 16),
	})

	conflict := checker.Check(slotCheck(1, 1, 1, 16), idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictRoom, conflict.Kind)
	assert.Equal(t, "琴房101", conflict.Party)
}

func TestCheckOwnRoomOccupancyReportsTeacher(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "s9", "r1", models.SessionKindLesson, 1, 1, 1, 16),
	})

	conflict := checker.Check(slotCheck(1, 1, 1, 16), idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictTeacher, conflict.Kind, "own session in the room is the teacher's conflict, not the room's")
}

func TestCheckTeacherConflict(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "s9", "r9", models.SessionKindLesson, 1, 1, 1, 16),
	})

	conflict := checker.Check(slotCheck(1, 1, 1, 16), idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictTeacher, conflict.Kind)
}

func TestCheckTeacherLectureConflict(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "", "r9", models.SessionKindLecture, 1, 1, 1, 16),
	})

	conflict := checker.Check(slotCheck(1, 1, 1, 16), idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictTeacherLecture, conflict.Kind)
}

func TestCheckLessonHitReportedBeforeLecture(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "", "r8", models.SessionKindLecture, 1, 1, 1, 16),
		occupied("t1", "s9", "r9", models.SessionKindLesson, 1, 1, 1, 16),
	})

	conflict := checker.Check(slotCheck(1, 1, 1, 16), idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictTeacher, conflict.Kind)
}

func TestCheckBlackoutBeforeStudent(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t9", "s1", "r9", models.SessionKindLesson, 2, 3, 1, 16),
	})
	day := 2
	rules := []models.BlackoutRule{{ID: "b1", RuleType: models.BlackoutRecurring, DayOfWeek: &day, Reason: "教研活动"}}

	check := slotCheck(2, 3, 1, 1)
	check.RoomID = ""
	conflict := checker.Check(check, idx, rules, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictBlackout, conflict.Kind)
	assert.Equal(t, "教研活动", conflict.Message)
}

func TestCheckStudentConflict(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t9", "s1", "r9", models.SessionKindLesson, 1, 1, 4, 8),
	})

	check := slotCheck(1, 1, 8, 10)
	conflict := checker.Check(check, idx, nil, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictStudent, conflict.Kind)
	assert.Equal(t, "王同学", conflict.Party)
}

func TestCheckStudentBeforeLargeClass(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t9", "s1", "r9", models.SessionKindLesson, 1, 1, 1, 16),
	})
	entries := []models.LargeClassEntry{{
		ClassName: "音乐学2301", CourseName: "大学英语",
		DayOfWeek: 1, PeriodStart: 1, PeriodEnd: 2, WeekRange: "1-16",
	}}

	check := slotCheck(1, 1, 1, 1)
	check.ClassNames = []string{"音乐学2301"}
	conflict := checker.Check(check, idx, nil, entries)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictStudent, conflict.Kind)
}

func TestCheckLargeClassConflict(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex(nil)
	entries := []models.LargeClassEntry{{
		ClassName: "音乐学2301", CourseName: "大学英语",
		DayOfWeek: 1, PeriodStart: 1, PeriodEnd: 2, WeekRange: "3-5",
	}}

	check := slotCheck(1, 1, 4, 4)
	check.ClassNames = []string{"音乐学2301"}
	conflict := checker.Check(check, idx, nil, entries)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictLargeClass, conflict.Kind)
	assert.Equal(t, 4, conflict.Week)
}

func TestCheckLargeClassConflictByTeacherName(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex(nil)
	entries := []models.LargeClassEntry{{
		ClassName: "音乐学2301", CourseName: "音乐理论", TeacherName: "李老师",
		DayOfWeek: 1, PeriodStart: 1, PeriodEnd: 2, WeekRange: "1-16",
	}}

	check := slotCheck(1, 1, 5, 5)
	check.TeacherName = "李老师"
	check.ClassNames = []string{"舞蹈2201"}
	conflict := checker.Check(check, idx, nil, entries)
	require.NotNil(t, conflict)
	assert.Equal(t, models.ConflictLargeClass, conflict.Kind)
	assert.Equal(t, 5, conflict.Week)

	check.TeacherName = "张老师"
	assert.Nil(t, checker.Check(check, idx, nil, entries))
}

func TestCheckDisjointWeeksAdmit(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "s1", "r1", models.SessionKindLesson, 1, 1, 1, 8),
	})

	assert.Nil(t, checker.Check(slotCheck(1, 1, 9, 16), idx, nil, nil))
}

func TestCheckDifferentCellAdmits(t *testing.T) {
	checker := NewConflictService(zap.NewNop())
	idx := NewAvailabilityIndex([]models.ScheduledSession{
		occupied("t1", "s1", "r1", models.SessionKindLesson, 1, 1, 1, 16),
	})

	assert.Nil(t, checker.Check(slotCheck(1, 2, 1, 16), idx, nil, nil))
}
