package models

import "time"

// Session kinds. Lectures are whole-class theory sessions that occupy the
// teacher but have no per-student rows.
const (
	SessionKindLesson  = "lesson"
	SessionKindLecture = "lecture"
)

// ScheduledSession is one committed occupancy row: a single student in a
// single weekly slot over an inclusive week range. Sessions committed
// together share a group id so they can be removed as one unit.
type ScheduledSession struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	CourseName  string    `db:"course_name" json:"course_name"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	StudentID   string    `db:"student_id" json:"student_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	StudentRole string    `db:"student_role" json:"student_role"`
	ClassName   string    `db:"class_name" json:"class_name"`
	RoomID      string    `db:"room_id" json:"room_id"`
	RoomName    string    `db:"room_name" json:"room_name"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	Period      int       `db:"period" json:"period"`
	StartWeek   int       `db:"start_week" json:"start_week"`
	EndWeek     int       `db:"end_week" json:"end_week"`
	GroupID     string    `db:"group_id" json:"group_id"`
	Kind        string    `db:"kind" json:"kind"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// OverlapsWeeks reports whether the session touches any week in [start, end].
func (s ScheduledSession) OverlapsWeeks(start, end int) bool {
	return WeeksOverlap(s.StartWeek, s.EndWeek, start, end)
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	TeacherID string
	StudentID string
	CourseID  string
	RoomID    string
	GroupID   string
	DayOfWeek int
	Week      int
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
