package models

import "strings"

// Faculty identifies the teaching department a teacher or room belongs to.
type Faculty string

const (
	FacultyPiano      Faculty = "PIANO"
	FacultyVocal      Faculty = "VOCAL"
	FacultyInstrument Faculty = "INSTRUMENT"
	FacultyTheory     Faculty = "THEORY"
)

// Course categories as they appear in course names.
const (
	CategoryPiano      = "钢琴"
	CategoryVocal      = "声乐"
	CategoryInstrument = "器乐"
)

// LargeGroupInstruments are the instruments whose secondary-study groups may
// grow to eight students instead of the usual four.
var LargeGroupInstruments = []string{"古筝", "竹笛", "葫芦丝"}

// IsLargeGroupInstrument reports whether the instrument allows the larger
// secondary group size.
func IsLargeGroupInstrument(instrument string) bool {
	for _, name := range LargeGroupInstruments {
		if strings.Contains(instrument, name) {
			return true
		}
	}
	return false
}

// FacultyForCategory maps a course category to the department that staffs it.
func FacultyForCategory(category string) Faculty {
	switch category {
	case CategoryPiano:
		return FacultyPiano
	case CategoryVocal:
		return FacultyVocal
	case CategoryInstrument:
		return FacultyInstrument
	default:
		return FacultyTheory
	}
}

// CategoryPrefix returns the leading two characters of a course name, the
// convention used to compare whether two courses teach the same category.
func CategoryPrefix(courseName string) string {
	runes := []rune(courseName)
	if len(runes) < 2 {
		return courseName
	}
	return string(runes[:2])
}

// MaxGroupSize returns the hard cap on group size for a category.
func MaxGroupSize(category string) int {
	if category == CategoryInstrument {
		return 8
	}
	return 5
}
