package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
)

// SessionStore abstracts persistence for scheduled sessions.
type SessionStore interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.ScheduledSession, int, error)
	ListAll(ctx context.Context) ([]models.ScheduledSession, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ScheduledSession, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.ScheduledSession, error)
	FindByID(ctx context.Context, id string) (*models.ScheduledSession, error)
	BulkCreate(ctx context.Context, sessions []models.ScheduledSession) error
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// StudentReader resolves student records.
type StudentReader interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Student, error)
}

// CourseReader resolves course records.
type CourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// RoomReader resolves rooms, including the faculty fallback room.
type RoomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FirstByFaculty(ctx context.Context, faculty models.Faculty) (*models.Room, error)
}

// SchedulingService orchestrates the commit pipeline: snapshot, group
// validation, conflict checks, room resolution, quota guard and the final
// transactional insert. Commits always read occupancy from the repository,
// never from the snapshot cache.
type SchedulingService struct {
	sessions  SessionStore
	students  StudentReader
	courses   CourseReader
	teachers  WorkloadTeacherReader
	rooms     RoomReader
	rules     BlackoutRuleStore
	large     LargeClassReader
	conflicts *ConflictService
	groups    *GroupService
	allocator *AllocatorService
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger

	totalWeeks int
}

// NewSchedulingService constructs the orchestrator.
func NewSchedulingService(
	sessions SessionStore,
	students StudentReader,
	courses CourseReader,
	teachers WorkloadTeacherReader,
	rooms RoomReader,
	rules BlackoutRuleStore,
	large LargeClassReader,
	conflicts *ConflictService,
	groups *GroupService,
	allocator *AllocatorService,
	cache *CacheService,
	totalWeeks int,
	v *validator.Validate,
	logger *zap.Logger,
) *SchedulingService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if totalWeeks <= 0 {
		totalWeeks = models.DefaultTotalWeeks
	}
	return &SchedulingService{
		sessions:   sessions,
		students:   students,
		courses:    courses,
		teachers:   teachers,
		rooms:      rooms,
		rules:      rules,
		large:      large,
		conflicts:  conflicts,
		groups:     groups,
		allocator:  allocator,
		cache:      cache,
		validator:  v,
		logger:     logger,
		totalWeeks: totalWeeks,
	}
}

// CommitSlot is one weekly grid cell with its week coverage.
type CommitSlot struct {
	DayOfWeek int `json:"dayOfWeek" validate:"required,min=1,max=7"`
	Period    int `json:"period" validate:"required,min=1,max=10"`
	StartWeek int `json:"startWeek" validate:"required,min=1"`
	EndWeek   int `json:"endWeek" validate:"required,min=1"`
}

// CommitMember is one student joining the commit, with the role and
// instrument recorded for this group.
type CommitMember struct {
	StudentID  string `json:"studentId" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=primary secondary"`
	Instrument string `json:"instrument" validate:"required"`
}

// CommitScheduleRequest commits a batch of slots for a lesson group.
type CommitScheduleRequest struct {
	CourseID           string         `json:"courseId" validate:"required"`
	TeacherID          string         `json:"teacherId" validate:"required"`
	RoomID             string         `json:"roomId"`
	Slots              []CommitSlot   `json:"slots" validate:"required,min=1,dive"`
	Members            []CommitMember `json:"members" validate:"required,min=1,dive"`
	AllowQuotaOverride bool           `json:"allowQuotaOverride"`
}

// MemberProgress reports one student's per-course progress after a commit.
type MemberProgress struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Completed   int    `json:"completed"`
	Required    int    `json:"required"`
}

// CommitScheduleResult is the outcome of a successful commit.
type CommitScheduleResult struct {
	GroupID  string                    `json:"group_id"`
	Sessions []models.ScheduledSession `json:"sessions"`
	Progress []MemberProgress          `json:"progress"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// Commit runs the full pipeline. The whole batch aborts on the first
// conflict, in request order, so partially committed groups cannot occur.
func (s *SchedulingService) Commit(ctx context.Context, req CommitScheduleRequest) (*CommitScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid commit payload")
	}
	for _, slot := range req.Slots {
		if slot.EndWeek < slot.StartWeek || slot.EndWeek > s.totalWeeks {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid week range %d-%d", slot.StartWeek, slot.EndWeek))
		}
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	studentIDs := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		studentIDs = append(studentIDs, m.StudentID)
	}
	students, err := s.students.ListByIDs(ctx, studentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load students")
	}
	studentByID := make(map[string]models.Student, len(students))
	for _, st := range students {
		studentByID[st.ID] = st
	}
	for _, id := range studentIDs {
		if _, ok := studentByID[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
		}
	}

	members := make([]models.GroupMember, 0, len(req.Members))
	classNames := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		st := studentByID[m.StudentID]
		members = append(members, models.GroupMember{
			StudentID:            st.ID,
			StudentName:          st.Name,
			ClassName:            st.ClassName,
			Program:              st.Program,
			Role:                 m.Role,
			Instrument:           m.Instrument,
			SecondaryInstruments: st.SecondaryInstruments,
		})
		classNames = append(classNames, st.ClassName)
	}

	// Single-student commits are regular one-to-one lessons and skip the
	// group composition rules.
	if len(members) >= 2 {
		if validation := s.groups.Validate(*course, members); !validation.Valid {
			return nil, appErrors.Clone(appErrors.ErrGroupInvalid, firstViolation(validation))
		}
	}

	room, err := s.resolveRoom(ctx, req.RoomID, teacher)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session snapshot")
	}
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load blackout rules")
	}
	entries, err := s.large.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load large classes")
	}
	idx := NewAvailabilityIndex(snapshot)

	for _, slot := range req.Slots {
		check := SlotCheck{
			DayOfWeek:   slot.DayOfWeek,
			Period:      slot.Period,
			StartWeek:   slot.StartWeek,
			EndWeek:     slot.EndWeek,
			TeacherID:   teacher.ID,
			TeacherName: teacher.Name,
			StudentIDs:  studentIDs,
			RoomID:      room.ID,
			ClassNames:  classNames,
		}
		if conflict := s.conflicts.Check(check, idx, rules, entries); conflict != nil {
			s.logger.Info("commit rejected",
				zap.String("course_id", course.ID),
				zap.String("kind", string(conflict.Kind)),
				zap.Int("day", conflict.DayOfWeek),
				zap.Int("period", conflict.Period))
			return nil, conflictError(conflict)
		}
	}

	var warnings []string
	existing, err := s.sessions.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load course sessions")
	}
	projected := DedupSessionCount(existing) + newCellCount(req.Slots)
	if projected > models.RequiredSessions {
		message := fmt.Sprintf("course %s would reach %d of %d sessions", course.Name, projected, models.RequiredSessions)
		if !req.AllowQuotaOverride {
			return nil, appErrors.Clone(appErrors.ErrQuotaExceeded, message)
		}
		warnings = append(warnings, message)
	}

	groupID := uuid.NewString()
	now := time.Now().UTC()
	created := make([]models.ScheduledSession, 0, len(req.Slots)*len(members))
	for _, slot := range req.Slots {
		for _, member := range members {
			created = append(created, models.ScheduledSession{
				ID:          uuid.NewString(),
				CourseID:    course.ID,
				CourseName:  course.Name,
				TeacherID:   teacher.ID,
				TeacherName: teacher.Name,
				StudentID:   member.StudentID,
				StudentName: member.StudentName,
				StudentRole: member.Role,
				ClassName:   member.ClassName,
				RoomID:      room.ID,
				RoomName:    room.Name,
				DayOfWeek:   slot.DayOfWeek,
				Period:      slot.Period,
				StartWeek:   slot.StartWeek,
				EndWeek:     slot.EndWeek,
				GroupID:     groupID,
				Kind:        models.SessionKindLesson,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}

	if err := s.sessions.BulkCreate(ctx, created); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit sessions")
	}
	s.invalidateSnapshots(ctx)

	result := &CommitScheduleResult{
		GroupID:  groupID,
		Sessions: created,
		Warnings: warnings,
	}
	for _, member := range members {
		courseSessions := append(studentCourseSessions(snapshot, member.StudentID, course.ID), studentCourseSessions(created, member.StudentID, course.ID)...)
		result.Progress = append(result.Progress, MemberProgress{
			StudentID:   member.StudentID,
			StudentName: member.StudentName,
			Completed:   DedupSessionCount(courseSessions),
			Required:    models.RequiredSessions,
		})
	}

	s.logger.Info("schedule committed",
		zap.String("group_id", groupID),
		zap.String("course_id", course.ID),
		zap.Int("sessions", len(created)))
	return result, nil
}

// List returns committed sessions with pagination.
func (s *SchedulingService) List(ctx context.Context, filter models.SessionFilter) ([]models.ScheduledSession, *models.Pagination, error) {
	sessions, total, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list sessions")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return sessions, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// DeleteGroup removes every sibling session committed under one group id.
func (s *SchedulingService) DeleteGroup(ctx context.Context, groupID string) error {
	rows, err := s.sessions.DeleteByGroup(ctx, groupID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete session group")
	}
	if rows == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "session group not found")
	}
	s.invalidateSnapshots(ctx)
	s.logger.Info("session group deleted", zap.String("group_id", groupID), zap.Int64("rows", rows))
	return nil
}

// DeleteSession removes a single session row.
func (s *SchedulingService) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.sessions.FindByID(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete session")
	}
	s.invalidateSnapshots(ctx)
	return nil
}

// AvailabilityRequest probes the whole grid for one week.
type AvailabilityRequest struct {
	TeacherID  string   `json:"teacherId" validate:"required"`
	Week       int      `json:"week" validate:"required,min=1"`
	StudentIDs []string `json:"studentIds"`
	RoomID     string   `json:"roomId"`
}

// AvailabilityCell is the probe outcome for one grid cell.
type AvailabilityCell struct {
	DayOfWeek int                 `json:"day_of_week"`
	Period    int                 `json:"period"`
	Available bool                `json:"available"`
	Kind      models.ConflictKind `json:"kind,omitempty"`
	Reason    string              `json:"reason,omitempty"`
}

// Availability evaluates every (day, period) cell of one week for the given
// teacher and students, the grid the booking screen renders.
func (s *SchedulingService) Availability(ctx context.Context, req AvailabilityRequest) ([]AvailabilityCell, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if req.Week > s.totalWeeks {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("week %d is outside the term", req.Week))
	}
	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	var classNames []string
	if len(req.StudentIDs) > 0 {
		students, err := s.students.ListByIDs(ctx, req.StudentIDs)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load students")
		}
		for _, st := range students {
			classNames = append(classNames, st.ClassName)
		}
	}

	snapshot, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session snapshot")
	}
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load blackout rules")
	}
	entries, err := s.large.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load large classes")
	}
	idx := NewAvailabilityIndex(snapshot)

	cells := make([]AvailabilityCell, 0, models.MaxDayOfWeek*models.MaxPeriod)
	for day := models.MinDayOfWeek; day <= models.MaxDayOfWeek; day++ {
		for period := models.MinPeriod; period <= models.MaxPeriod; period++ {
			check := SlotCheck{
				DayOfWeek:   day,
				Period:      period,
				StartWeek:   req.Week,
				EndWeek:     req.Week,
				TeacherID:   teacher.ID,
				TeacherName: teacher.Name,
				StudentIDs:  req.StudentIDs,
				RoomID:      req.RoomID,
				ClassNames:  classNames,
			}
			cell := AvailabilityCell{DayOfWeek: day, Period: period, Available: true}
			if conflict := s.conflicts.Check(check, idx, rules, entries); conflict != nil {
				cell.Available = false
				cell.Kind = conflict.Kind
				cell.Reason = conflict.Message
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

// ValidateGroupRequest asks whether a proposed group is admissible for a
// course, without committing anything.
type ValidateGroupRequest struct {
	CourseID string         `json:"courseId" validate:"required"`
	Members  []CommitMember `json:"members" validate:"required,min=1,dive"`
}

// ValidateGroup resolves the members against student records and runs the
// full composition rule set.
func (s *SchedulingService) ValidateGroup(ctx context.Context, req ValidateGroupRequest) (*models.GroupValidation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	ids := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		ids = append(ids, m.StudentID)
	}
	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load students")
	}
	studentByID := make(map[string]models.Student, len(students))
	for _, st := range students {
		studentByID[st.ID] = st
	}

	members := make([]models.GroupMember, 0, len(req.Members))
	for _, m := range req.Members {
		st, ok := studentByID[m.StudentID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", m.StudentID))
		}
		members = append(members, models.GroupMember{
			StudentID:            st.ID,
			StudentName:          st.Name,
			ClassName:            st.ClassName,
			Program:              st.Program,
			Role:                 m.Role,
			Instrument:           m.Instrument,
			SecondaryInstruments: st.SecondaryInstruments,
		})
	}

	validation := s.groups.Validate(*course, members)
	return &validation, nil
}

// AllocateWeeksPayload extends the allocator request with the occupancy
// context the rejection predicate needs.
type AllocateWeeksPayload struct {
	AllocateWeeksRequest
	TeacherID  string   `json:"teacherId" validate:"required"`
	StudentIDs []string `json:"studentIds"`
	RoomID     string   `json:"roomId"`
}

// AllocateWeeks proposes a batch of weeks for one grid cell, rejecting weeks
// that fail the conflict check against a fresh snapshot.
func (s *SchedulingService) AllocateWeeks(ctx context.Context, req AllocateWeeksPayload) (*AllocationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}
	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	var classNames []string
	if len(req.StudentIDs) > 0 {
		students, err := s.students.ListByIDs(ctx, req.StudentIDs)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load students")
		}
		for _, st := range students {
			classNames = append(classNames, st.ClassName)
		}
	}

	snapshot, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session snapshot")
	}
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load blackout rules")
	}
	entries, err := s.large.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load large classes")
	}
	idx := NewAvailabilityIndex(snapshot)

	reject := func(week int) *models.Conflict {
		return s.conflicts.Check(SlotCheck{
			DayOfWeek:   req.DayOfWeek,
			Period:      req.Period,
			StartWeek:   week,
			EndWeek:     week,
			TeacherID:   teacher.ID,
			TeacherName: teacher.Name,
			StudentIDs:  req.StudentIDs,
			RoomID:      req.RoomID,
			ClassNames:  classNames,
		}, idx, rules, entries)
	}

	result := s.allocator.Allocate(req.AllocateWeeksRequest, reject)
	return &result, nil
}

// resolveRoom picks the explicit room when given, then the teacher's fixed
// room, then the faculty's fallback room.
func (s *SchedulingService) resolveRoom(ctx context.Context, roomID string, teacher *models.Teacher) (*models.Room, error) {
	if roomID != "" {
		room, err := s.rooms.FindByID(ctx, roomID)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return room, nil
	}
	if teacher.DefaultRoomID != nil && *teacher.DefaultRoomID != "" {
		room, err := s.rooms.FindByID(ctx, *teacher.DefaultRoomID)
		if err == nil {
			return room, nil
		}
		s.logger.Warn("teacher default room missing", zap.String("teacher_id", teacher.ID), zap.String("room_id", *teacher.DefaultRoomID))
	}
	room, err := s.rooms.FirstByFaculty(ctx, teacher.Faculty)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no room available for the teacher's faculty")
	}
	return room, nil
}

func (s *SchedulingService) invalidateSnapshots(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSnapshots(ctx); err != nil {
		s.logger.Warn("snapshot invalidation failed", zap.Error(err))
	}
}

func conflictError(conflict *models.Conflict) *appErrors.Error {
	base := appErrors.ErrConflict
	switch conflict.Kind {
	case models.ConflictRoom:
		base = appErrors.ErrRoomConflict
	case models.ConflictTeacher:
		base = appErrors.ErrTeacherConflict
	case models.ConflictTeacherLecture:
		base = appErrors.ErrTeacherLectureConflict
	case models.ConflictBlackout:
		base = appErrors.ErrBlackoutConflict
	case models.ConflictStudent:
		base = appErrors.ErrStudentConflict
	case models.ConflictLargeClass:
		base = appErrors.ErrLargeClassConflict
	}
	return appErrors.Clone(base, conflict.Message)
}

func firstViolation(v models.GroupValidation) string {
	if len(v.Violations) == 0 {
		return ""
	}
	return v.Violations[0]
}

func newCellCount(slots []CommitSlot) int {
	type cell struct{ day, period, week int }
	seen := make(map[cell]struct{})
	for _, slot := range slots {
		for week := slot.StartWeek; week <= slot.EndWeek; week++ {
			seen[cell{day: slot.DayOfWeek, period: slot.Period, week: week}] = struct{}{}
		}
	}
	return len(seen)
}

func studentCourseSessions(sessions []models.ScheduledSession, studentID, courseID string) []models.ScheduledSession {
	var out []models.ScheduledSession
	for _, s := range sessions {
		if s.StudentID == studentID && s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out
}
