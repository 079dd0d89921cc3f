package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
)

// coeffRow is one row of the workload coefficient tables. Sizes are an
// inclusive range so the 5-8 secondary row needs no duplication.
type coeffRow struct {
	program     string
	composition string
	minSize     int
	maxSize     int
	weeks       int
	value       float64
}

// The coefficient tables, copied row for row from the faculty workload
// regulations. Lookups that match no row fall back to 0.35.
var coefficientTable = []coeffRow{
	{models.ProgramGeneral, models.CompositionPrimary, 1, 1, 16, 0.35},
	{models.ProgramGeneral, models.CompositionSecondary, 1, 1, 16, 0.175},
	{models.ProgramGeneral, models.CompositionPrimary, 2, 2, 16, 0.8},
	{models.ProgramGeneral, models.CompositionSecondary, 2, 2, 16, 0.4},
	{models.ProgramGeneral, models.CompositionSecondary, 2, 2, 8, 0.8},
	{models.ProgramGeneral, models.CompositionSecondary, 1, 1, 8, 0.35},
	{models.ProgramGeneral, models.CompositionMixed, 2, 2, 16, 0.6},
	{models.ProgramGeneral, models.CompositionSecondary, 3, 3, 16, 0.9},
	{models.ProgramGeneral, models.CompositionMixed, 3, 3, 16, 0.9},
	{models.ProgramGeneral, models.CompositionSecondary, 4, 4, 16, 0.9},
	{models.ProgramGeneral, models.CompositionSecondary, 5, 8, 16, 1.0},

	{models.ProgramUpgrade, models.CompositionSecondary, 1, 1, 16, 0.35},
	{models.ProgramUpgrade, models.CompositionSecondary, 2, 2, 16, 0.8},

	{models.ProgramSixSemester, models.CompositionPrimary, 1, 1, 16, 0.7},
	{models.ProgramSixSemester, models.CompositionSecondary, 1, 1, 16, 0.35},
	{models.ProgramSixSemester, models.CompositionSecondary, 1, 1, 8, 0.7},
	{models.ProgramSixSemester, models.CompositionSecondary, 2, 2, 16, 0.8},
}

// defaultCoefficient applies when no table row matches.
const defaultCoefficient = 0.35

// Coefficient looks up the workload coefficient for a group shape. The weeks
// argument is bucketed to the 8-week or 16-week table variant.
func Coefficient(program, composition string, groupSize, weeks int) float64 {
	bucket := 16
	if weeks > 0 && weeks <= 8 {
		bucket = 8
	}
	for _, row := range coefficientTable {
		if row.program == program && row.composition == composition &&
			groupSize >= row.minSize && groupSize <= row.maxSize && row.weeks == bucket {
			return row.value
		}
	}
	return defaultCoefficient
}

// Workload converts a coefficient and the number of scheduled weeks into
// workload units.
func Workload(coefficient float64, scheduledWeeks int) float64 {
	return coefficient * float64(scheduledWeeks)
}

// WorkloadSessionReader loads committed sessions for reporting.
type WorkloadSessionReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduledSession, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ScheduledSession, error)
}

// WorkloadTeacherReader resolves teacher records.
type WorkloadTeacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// WorkloadCourseReader resolves the teacher's courses.
type WorkloadCourseReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error)
}

// WorkloadService produces coefficient-based term workload reports and
// session progress summaries. Both views are read-mostly and may be served
// from the short-lived snapshot cache.
type WorkloadService struct {
	sessions WorkloadSessionReader
	teachers WorkloadTeacherReader
	courses  WorkloadCourseReader
	cache    *CacheService
	logger   *zap.Logger
}

// NewWorkloadService constructs the service.
func NewWorkloadService(sessions WorkloadSessionReader, teachers WorkloadTeacherReader, courses WorkloadCourseReader, cache *CacheService, logger *zap.Logger) *WorkloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{sessions: sessions, teachers: teachers, courses: courses, cache: cache, logger: logger}
}

// Report builds the teacher's term workload summary grouped by course.
func (s *WorkloadService) Report(ctx context.Context, teacherID string) (*models.TeacherWorkloadReport, error) {
	cacheKey := TeacherWorkloadKey(teacherID)
	if s.cache != nil {
		var cached models.TeacherWorkloadReport
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	sessions, err := s.sessions.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list teacher sessions")
	}

	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list teacher courses")
	}
	courseByID := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	report := &models.TeacherWorkloadReport{
		TeacherID:     teacher.ID,
		TeacherName:   teacher.Name,
		Faculty:       teacher.Faculty,
		FacultyTotals: make(map[string]float64),
	}

	for _, courseID := range sortedCourseIDs(sessions) {
		courseSessions := sessionsForCourse(sessions, courseID)
		row := buildCourseWorkload(courseID, courseSessions, courseByID)
		report.Courses = append(report.Courses, row)
		report.FacultyTotals[string(models.FacultyForCategory(row.Category))] += row.Workload
		report.Total += row.Workload
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, report, 0)
	}
	return report, nil
}

// StudentProgress summarises a student's committed sessions per course
// against the fixed quota.
func (s *WorkloadService) StudentProgress(ctx context.Context, studentID string) (*models.StudentProgress, error) {
	cacheKey := StudentProgressKey(studentID)
	if s.cache != nil {
		var cached models.StudentProgress
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	sessions, err := s.sessions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list student sessions")
	}
	progress := BuildStudentProgress(studentID, sessions)
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, &progress, 0)
	}
	return &progress, nil
}

// BuildStudentProgress aggregates sessions per course. Sessions are
// deduplicated by (day, period, week) before counting.
func BuildStudentProgress(studentID string, sessions []models.ScheduledSession) models.StudentProgress {
	progress := models.StudentProgress{StudentID: studentID}
	for _, courseID := range sortedCourseIDs(sessions) {
		courseSessions := sessionsForCourse(sessions, courseID)
		completed := DedupSessionCount(courseSessions)
		remaining := models.RequiredSessions - completed
		if remaining < 0 {
			remaining = 0
		}
		progress.Courses = append(progress.Courses, models.CourseProgress{
			CourseID:  courseID,
			Course:    courseSessions[0].CourseName,
			Completed: completed,
			Required:  models.RequiredSessions,
			Remaining: remaining,
		})
		if progress.StudentName == "" {
			progress.StudentName = courseSessions[0].StudentName
		}
	}
	return progress
}

// DedupSessionCount counts distinct (day, period, week) cells covered by the
// sessions, expanding week ranges.
func DedupSessionCount(sessions []models.ScheduledSession) int {
	type cell struct{ day, period, week int }
	seen := make(map[cell]struct{})
	for _, s := range sessions {
		for week := s.StartWeek; week <= s.EndWeek; week++ {
			seen[cell{day: s.DayOfWeek, period: s.Period, week: week}] = struct{}{}
		}
	}
	return len(seen)
}

func buildCourseWorkload(courseID string, sessions []models.ScheduledSession, courseByID map[string]models.Course) models.CourseWorkload {
	students := make(map[string]struct{})
	weeks := make(map[int]struct{})
	hasPrimary := false
	hasSecondary := false
	for _, s := range sessions {
		if s.StudentID != "" {
			students[s.StudentID] = struct{}{}
		}
		for w := s.StartWeek; w <= s.EndWeek; w++ {
			weeks[w] = struct{}{}
		}
		switch s.StudentRole {
		case models.RolePrimary:
			hasPrimary = true
		case models.RoleSecondary:
			hasSecondary = true
		}
	}

	composition := models.CompositionSecondary
	switch {
	case hasPrimary && hasSecondary:
		composition = models.CompositionMixed
	case hasPrimary:
		composition = models.CompositionPrimary
	}

	courseName := sessions[0].CourseName
	program := models.ProgramGeneral
	category := instrumentCategory(models.CategoryPrefix(courseName))
	if course, ok := courseByID[courseID]; ok {
		if course.Program != "" {
			program = course.Program
		}
		if course.Category != "" {
			category = course.Category
		}
	}

	coefficient := Coefficient(program, composition, len(students), len(weeks))
	return models.CourseWorkload{
		CourseID:    courseID,
		CourseName:  courseName,
		Category:    category,
		Composition: composition,
		GroupSize:   len(students),
		Weeks:       len(weeks),
		Coefficient: coefficient,
		Workload:    Workload(coefficient, len(weeks)),
	}
}

func sortedCourseIDs(sessions []models.ScheduledSession) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range sessions {
		if s.Kind == models.SessionKindLecture {
			continue
		}
		if _, ok := seen[s.CourseID]; ok {
			continue
		}
		seen[s.CourseID] = struct{}{}
		ids = append(ids, s.CourseID)
	}
	sort.Strings(ids)
	return ids
}

func sessionsForCourse(sessions []models.ScheduledSession, courseID string) []models.ScheduledSession {
	var out []models.ScheduledSession
	for _, s := range sessions {
		if s.CourseID == courseID && s.Kind != models.SessionKindLecture {
			out = append(out, s)
		}
	}
	return out
}
