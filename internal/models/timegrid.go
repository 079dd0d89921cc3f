package models

// The teaching grid is fixed: seven days, ten periods per day, with the
// period clock times used on every printed timetable.
const (
	MinDayOfWeek = 1
	MaxDayOfWeek = 7
	MinPeriod    = 1
	MaxPeriod    = 10
)

// PeriodTime holds the wall-clock bounds of a teaching period.
type PeriodTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PeriodTimes maps period number to its clock times.
var PeriodTimes = map[int]PeriodTime{
	1:  {Start: "08:10", End: "08:55"},
	2:  {Start: "09:05", End: "09:50"},
	3:  {Start: "10:20", End: "11:05"},
	4:  {Start: "11:15", End: "12:00"},
	5:  {Start: "13:45", End: "14:30"},
	6:  {Start: "14:40", End: "15:25"},
	7:  {Start: "15:40", End: "16:25"},
	8:  {Start: "16:35", End: "17:20"},
	9:  {Start: "18:30", End: "19:15"},
	10: {Start: "19:25", End: "20:10"},
}

// DayNames maps ISO-style day numbers (Monday = 1) to display names.
var DayNames = map[int]string{
	1: "周一",
	2: "周二",
	3: "周三",
	4: "周四",
	5: "周五",
	6: "周六",
	7: "周日",
}

// ValidDay reports whether d is a usable day-of-week value.
func ValidDay(d int) bool {
	return d >= MinDayOfWeek && d <= MaxDayOfWeek
}

// ValidPeriod reports whether p is a usable period number.
func ValidPeriod(p int) bool {
	return p >= MinPeriod && p <= MaxPeriod
}

// ValidWeek reports whether w falls inside the term.
func ValidWeek(w, totalWeeks int) bool {
	return w >= 1 && w <= totalWeeks
}

// WeeksOverlap reports whether two inclusive week ranges share any week.
func WeeksOverlap(start1, end1, start2, end2 int) bool {
	return !(end1 < start2 || end2 < start1)
}
