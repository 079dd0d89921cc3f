package models

import (
	"strconv"
	"time"

	"github.com/lib/pq"
)

// Study programs. The program determines which coefficient table applies and
// which students may share a group.
const (
	ProgramGeneral     = "general"
	ProgramUpgrade     = "upgrade"
	ProgramSixSemester = "six_semester"
)

// Student is an enrolled music student.
type Student struct {
	ID                   string         `db:"id" json:"id"`
	Name                 string         `db:"name" json:"name"`
	ClassName            string         `db:"class_name" json:"class_name"`
	Program              string         `db:"program" json:"program"`
	PrimaryInstrument    string         `db:"primary_instrument" json:"primary_instrument"`
	SecondaryInstruments pq.StringArray `db:"secondary_instruments" json:"secondary_instruments"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at" json:"updated_at"`
}

// GradeCode extracts the two-digit enrollment year from a class name, e.g.
// "音乐学2301" yields 23. Returns 0 when the name carries no such code.
func GradeCode(className string) int {
	runes := []rune(className)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] >= '0' && runes[i] <= '9' && runes[i+1] >= '0' && runes[i+1] <= '9' {
			code, err := strconv.Atoi(string(runes[i : i+2]))
			if err != nil {
				return 0
			}
			return code
		}
	}
	return 0
}
