package models

// ConflictKind names the occupancy dimension a slot check failed on, in
// precedence order.
type ConflictKind string

const (
	ConflictRoom           ConflictKind = "ROOM_CONFLICT"
	ConflictTeacher        ConflictKind = "TEACHER_CONFLICT"
	ConflictTeacherLecture ConflictKind = "TEACHER_LECTURE_CONFLICT"
	ConflictBlackout       ConflictKind = "BLACKOUT_CONFLICT"
	ConflictStudent        ConflictKind = "STUDENT_CONFLICT"
	ConflictLargeClass     ConflictKind = "LARGE_CLASS_CONFLICT"
)

// Conflict describes why a slot was rejected. Party names the occupied
// teacher/student/room and ConflictingCourse the course already holding the
// slot, where applicable.
type Conflict struct {
	Kind              ConflictKind `json:"kind"`
	Week              int          `json:"week,omitempty"`
	DayOfWeek         int          `json:"day_of_week"`
	Period            int          `json:"period"`
	Party             string       `json:"party,omitempty"`
	ConflictingCourse string       `json:"conflicting_course,omitempty"`
	Message           string       `json:"message"`
}

// BlockStatus is the outcome of a blackout evaluation for one slot.
type BlockStatus string

const (
	NotBlocked       BlockStatus = "NOT_BLOCKED"
	PartiallyBlocked BlockStatus = "PARTIALLY_BLOCKED"
	FullyBlocked     BlockStatus = "FULLY_BLOCKED"
)

// BlockResult couples a status with a human-readable reason.
type BlockResult struct {
	Status BlockStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// Blocked reports whether the slot is unusable to any degree.
func (r BlockResult) Blocked() bool {
	return r.Status != NotBlocked
}
