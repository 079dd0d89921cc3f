package models

// Group compositions for coefficient lookup.
const (
	CompositionPrimary   = "primary"
	CompositionSecondary = "secondary"
	CompositionMixed     = "mixed"
)

// CourseWorkload is one detail row of a teacher's term workload.
type CourseWorkload struct {
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	Category    string  `json:"category"`
	Composition string  `json:"composition"`
	GroupSize   int     `json:"group_size"`
	Weeks       int     `json:"weeks"`
	Coefficient float64 `json:"coefficient"`
	Workload    float64 `json:"workload"`
}

// TeacherWorkloadReport is a teacher's coefficient-based term summary.
type TeacherWorkloadReport struct {
	TeacherID     string             `json:"teacher_id"`
	TeacherName   string             `json:"teacher_name"`
	Faculty       Faculty            `json:"faculty"`
	Courses       []CourseWorkload   `json:"courses"`
	FacultyTotals map[string]float64 `json:"faculty_totals"`
	Total         float64            `json:"total"`
}

// CourseProgress tracks one course's committed sessions against the quota.
type CourseProgress struct {
	CourseID  string `json:"course_id"`
	Course    string `json:"course"`
	Completed int    `json:"completed"`
	Required  int    `json:"required"`
	Remaining int    `json:"remaining"`
}

// StudentProgress aggregates a student's progress across courses.
type StudentProgress struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Courses     []CourseProgress `json:"courses"`
}
