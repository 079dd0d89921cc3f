package models

// Group member roles. The role is recorded when the member joins the group,
// not re-derived from student data.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
)

// GroupMember is one student inside a proposed lesson group, together with
// the role and instrument they hold in this group.
type GroupMember struct {
	StudentID            string   `json:"student_id"`
	StudentName          string   `json:"student_name"`
	ClassName            string   `json:"class_name"`
	Program              string   `json:"program"`
	Role                 string   `json:"role"`
	Instrument           string   `json:"instrument"`
	SecondaryInstruments []string `json:"secondary_instruments,omitempty"`
}

// GroupValidation is the outcome of checking a group's composition.
type GroupValidation struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}
