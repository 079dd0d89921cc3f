package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

// slotKey identifies one weekly grid cell.
type slotKey struct {
	day    int
	period int
}

// AvailabilityIndex holds a committed-session snapshot keyed for fast
// occupancy lookups per grid cell. Week overlap is resolved at query time.
type AvailabilityIndex struct {
	byTeacher map[string]map[slotKey][]models.ScheduledSession
	byStudent map[string]map[slotKey][]models.ScheduledSession
	byRoom    map[string]map[slotKey][]models.ScheduledSession
}

// NewAvailabilityIndex builds an index over the snapshot.
func NewAvailabilityIndex(snapshot []models.ScheduledSession) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		byTeacher: make(map[string]map[slotKey][]models.ScheduledSession),
		byStudent: make(map[string]map[slotKey][]models.ScheduledSession),
		byRoom:    make(map[string]map[slotKey][]models.ScheduledSession),
	}
	for _, session := range snapshot {
		key := slotKey{day: session.DayOfWeek, period: session.Period}
		insertSession(idx.byTeacher, session.TeacherID, key, session)
		if session.StudentID != "" {
			insertSession(idx.byStudent, session.StudentID, key, session)
		}
		if session.RoomID != "" {
			insertSession(idx.byRoom, session.RoomID, key, session)
		}
	}
	return idx
}

func insertSession(m map[string]map[slotKey][]models.ScheduledSession, id string, key slotKey, s models.ScheduledSession) {
	if id == "" {
		return
	}
	if m[id] == nil {
		m[id] = make(map[slotKey][]models.ScheduledSession)
	}
	m[id][key] = append(m[id][key], s)
}

func overlapping(sessions []models.ScheduledSession, startWeek, endWeek int) []models.ScheduledSession {
	var hits []models.ScheduledSession
	for _, s := range sessions {
		if s.OverlapsWeeks(startWeek, endWeek) {
			hits = append(hits, s)
		}
	}
	return hits
}

// TeacherSessions returns the teacher's sessions in the cell overlapping the
// week range.
func (idx *AvailabilityIndex) TeacherSessions(teacherID string, day, period, startWeek, endWeek int) []models.ScheduledSession {
	return overlapping(idx.byTeacher[teacherID][slotKey{day: day, period: period}], startWeek, endWeek)
}

// StudentSessions returns the student's sessions in the cell overlapping the
// week range.
func (idx *AvailabilityIndex) StudentSessions(studentID string, day, period, startWeek, endWeek int) []models.ScheduledSession {
	return overlapping(idx.byStudent[studentID][slotKey{day: day, period: period}], startWeek, endWeek)
}

// RoomSessions returns the room's sessions in the cell overlapping the week
// range.
func (idx *AvailabilityIndex) RoomSessions(roomID string, day, period, startWeek, endWeek int) []models.ScheduledSession {
	return overlapping(idx.byRoom[roomID][slotKey{day: day, period: period}], startWeek, endWeek)
}

// SlotCheck describes one candidate placement to verify.
type SlotCheck struct {
	DayOfWeek   int
	Period      int
	StartWeek   int
	EndWeek     int
	TeacherID   string
	TeacherName string
	StudentIDs  []string
	RoomID      string
	ClassNames  []string
}

// ConflictService runs slot admission checks in fixed precedence order:
// room, teacher, teacher lecture, blackout, student, large class. The first
// failing dimension wins and later ones are not evaluated.
type ConflictService struct {
	logger *zap.Logger
}

// NewConflictService constructs the checker.
func NewConflictService(logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{logger: logger}
}

// Check verifies the candidate slot against the snapshot index, blackout
// rules and lecture timetable. A nil result means the slot is admissible.
func (c *ConflictService) Check(req SlotCheck, idx *AvailabilityIndex, rules []models.BlackoutRule, entries []models.LargeClassEntry) *models.Conflict {
	if req.RoomID != "" {
		for _, hit := range idx.RoomSessions(req.RoomID, req.DayOfWeek, req.Period, req.StartWeek, req.EndWeek) {
			// The requesting teacher's own session holding the room is a
			// teacher conflict, reported by the next pass.
			if hit.TeacherID == req.TeacherID {
				continue
			}
			return &models.Conflict{
				Kind:              models.ConflictRoom,
				DayOfWeek:         req.DayOfWeek,
				Period:            req.Period,
				Party:             hit.RoomName,
				ConflictingCourse: hit.CourseName,
				Message:           fmt.Sprintf("room %s is occupied by %s", hit.RoomName, hit.CourseName),
			}
		}
	}

	teacherHits := idx.TeacherSessions(req.TeacherID, req.DayOfWeek, req.Period, req.StartWeek, req.EndWeek)
	for _, hit := range teacherHits {
		if hit.Kind != models.SessionKindLecture {
			return &models.Conflict{
				Kind:              models.ConflictTeacher,
				DayOfWeek:         req.DayOfWeek,
				Period:            req.Period,
				Party:             hit.TeacherName,
				ConflictingCourse: hit.CourseName,
				Message:           fmt.Sprintf("teacher %s is occupied by %s", hit.TeacherName, hit.CourseName),
			}
		}
	}
	for _, hit := range teacherHits {
		if hit.Kind == models.SessionKindLecture {
			return &models.Conflict{
				Kind:              models.ConflictTeacherLecture,
				DayOfWeek:         req.DayOfWeek,
				Period:            req.Period,
				Party:             hit.TeacherName,
				ConflictingCourse: hit.CourseName,
				Message:           fmt.Sprintf("teacher %s holds lecture %s", hit.TeacherName, hit.CourseName),
			}
		}
	}

	for week := req.StartWeek; week <= req.EndWeek; week++ {
		if result := EvaluateBlackoutRules(week, req.DayOfWeek, req.Period, req.ClassNames, rules); result.Blocked() {
			return &models.Conflict{
				Kind:      models.ConflictBlackout,
				Week:      week,
				DayOfWeek: req.DayOfWeek,
				Period:    req.Period,
				Message:   result.Reason,
			}
		}
	}

	for _, studentID := range req.StudentIDs {
		if hits := idx.StudentSessions(studentID, req.DayOfWeek, req.Period, req.StartWeek, req.EndWeek); len(hits) > 0 {
			hit := hits[0]
			return &models.Conflict{
				Kind:              models.ConflictStudent,
				DayOfWeek:         req.DayOfWeek,
				Period:            req.Period,
				Party:             hit.StudentName,
				ConflictingCourse: hit.CourseName,
				Message:           fmt.Sprintf("student %s is occupied by %s", hit.StudentName, hit.CourseName),
			}
		}
	}

	for week := req.StartWeek; week <= req.EndWeek; week++ {
		if result := EvaluateLargeClasses(week, req.DayOfWeek, req.Period, req.ClassNames, req.TeacherName, entries); result.Blocked() {
			return &models.Conflict{
				Kind:      models.ConflictLargeClass,
				Week:      week,
				DayOfWeek: req.DayOfWeek,
				Period:    req.Period,
				Message:   result.Reason,
			}
		}
	}

	return nil
}
