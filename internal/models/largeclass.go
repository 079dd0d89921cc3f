package models

import "time"

// LargeClassEntry is one imported row of the whole-school lecture timetable.
// Week coverage is stored in compact expression form ("1-8,10") and expanded
// on evaluation.
type LargeClassEntry struct {
	ID          string    `db:"id" json:"id"`
	ClassName   string    `db:"class_name" json:"class_name"`
	CourseName  string    `db:"course_name" json:"course_name"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	PeriodStart int       `db:"period_start" json:"period_start"`
	PeriodEnd   int       `db:"period_end" json:"period_end"`
	WeekRange   string    `db:"week_range" json:"week_range"`
	ImportBatch string    `db:"import_batch" json:"import_batch"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Weeks expands the entry's week-range expression.
func (e LargeClassEntry) Weeks() []int {
	return ExpandWeekRange(e.WeekRange)
}

// CoversSlot reports whether the entry occupies (week, day, period).
func (e LargeClassEntry) CoversSlot(week, day, period int) bool {
	if e.DayOfWeek != day {
		return false
	}
	if period < e.PeriodStart || period > e.PeriodEnd {
		return false
	}
	for _, w := range e.Weeks() {
		if w == week {
			return true
		}
	}
	return false
}

// LargeClassFilter narrows large-class listings.
type LargeClassFilter struct {
	ClassName   string
	TeacherName string
	DayOfWeek   int
	ImportBatch string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
