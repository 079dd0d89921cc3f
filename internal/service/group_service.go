package service

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

// GroupService checks whether a proposed lesson group is admissible for a
// course. The check is pure and order-independent: members are normalised by
// student id before any rule runs.
type GroupService struct {
	logger *zap.Logger
}

// NewGroupService constructs the validator.
func NewGroupService(logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{logger: logger}
}

// Validate runs every composition rule and reports all violations.
func (s *GroupService) Validate(course models.Course, members []models.GroupMember) models.GroupValidation {
	sorted := make([]models.GroupMember, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StudentID < sorted[j].StudentID })

	var violations []string

	category := course.Category
	if category == "" {
		category = models.CategoryPrefix(course.Name)
	}

	if v := checkGroupSize(category, sorted); v != "" {
		violations = append(violations, v)
	}
	if v := checkCategoryMatch(category, sorted); v != "" {
		violations = append(violations, v)
	}
	if v := checkProgramHomogeneity(sorted); v != "" {
		violations = append(violations, v)
	}
	if v := checkGradeHomogeneity(sorted); v != "" {
		violations = append(violations, v)
	}
	if v := checkInstrumentHomogeneity(sorted); v != "" {
		violations = append(violations, v)
	}
	if course.Program == models.ProgramUpgrade {
		if v := checkUpgradeComposition(category, sorted); v != "" {
			violations = append(violations, v)
		}
	} else {
		if v := checkRoleMix(sorted); v != "" {
			violations = append(violations, v)
		}
	}

	return models.GroupValidation{Valid: len(violations) == 0, Violations: violations}
}

func checkGroupSize(category string, members []models.GroupMember) string {
	if len(members) < 2 {
		return "a group needs at least 2 members"
	}
	max := models.MaxGroupSize(category)
	if len(members) > max {
		return fmt.Sprintf("%s groups allow at most %d members, got %d", category, max, len(members))
	}
	return ""
}

func checkCategoryMatch(category string, members []models.GroupMember) string {
	var offenders []string
	for _, m := range members {
		if instrumentCategory(m.Instrument) != category {
			offenders = append(offenders, m.StudentName)
		}
	}
	if len(offenders) == 0 {
		return ""
	}
	if len(offenders) > 2 {
		offenders = offenders[:2]
	}
	return fmt.Sprintf("instrument does not match course category %s: %s", category, strings.Join(offenders, ", "))
}

func checkProgramHomogeneity(members []models.GroupMember) string {
	var first string
	for _, m := range members {
		if m.Program == "" {
			continue
		}
		if first == "" {
			first = m.Program
			continue
		}
		if m.Program != first {
			return "group mixes students from different programs"
		}
	}
	return ""
}

// checkGradeHomogeneity compares the two-digit enrollment year parsed from
// class names. Students whose class name carries no code are skipped rather
// than rejected.
func checkGradeHomogeneity(members []models.GroupMember) string {
	first := 0
	for _, m := range members {
		code := models.GradeCode(m.ClassName)
		if code == 0 {
			continue
		}
		if first == 0 {
			first = code
			continue
		}
		if code != first {
			return "group mixes students from different grades"
		}
	}
	return ""
}

func checkInstrumentHomogeneity(members []models.GroupMember) string {
	first := ""
	for _, m := range members {
		if m.Instrument == "" {
			continue
		}
		if first == "" {
			first = m.Instrument
			continue
		}
		if m.Instrument != first {
			return fmt.Sprintf("group mixes instruments %s and %s", first, m.Instrument)
		}
	}
	return ""
}

// checkRoleMix enforces the primary/secondary thresholds for regular groups.
// Secondary-only groups stay at four students unless someone in the group
// studies a large-group instrument as a secondary.
func checkRoleMix(members []models.GroupMember) string {
	primary := 0
	secondary := 0
	largeGroup := false
	for _, m := range members {
		switch m.Role {
		case models.RolePrimary:
			primary++
		case models.RoleSecondary:
			secondary++
		}
		for _, instr := range m.SecondaryInstruments {
			if models.IsLargeGroupInstrument(instr) {
				largeGroup = true
			}
		}
	}

	switch {
	case primary > 2:
		return fmt.Sprintf("at most 2 primary students per group, got %d", primary)
	case primary == 2 && secondary > 0:
		return "two primary students cannot share a group with secondary students"
	case primary == 1 && secondary > 2:
		return fmt.Sprintf("one primary student allows at most 2 secondary students, got %d", secondary)
	case primary == 0:
		limit := 4
		if largeGroup {
			limit = 8
		}
		if secondary > limit {
			return fmt.Sprintf("secondary-only groups allow at most %d students, got %d", limit, secondary)
		}
	}
	return ""
}

// checkUpgradeComposition caps upgrade-program groups at two students whose
// secondary studies include the course category.
func checkUpgradeComposition(category string, members []models.GroupMember) string {
	count := 0
	for _, m := range members {
		for _, instr := range m.SecondaryInstruments {
			if instrumentCategory(instr) == category {
				count++
				break
			}
		}
	}
	if count > 2 {
		return fmt.Sprintf("at most 2 upgrade students with %s as secondary study, got %d", category, count)
	}
	return ""
}

func instrumentCategory(instrument string) string {
	switch {
	case strings.Contains(instrument, models.CategoryPiano):
		return models.CategoryPiano
	case strings.Contains(instrument, models.CategoryVocal):
		return models.CategoryVocal
	case instrument == "":
		return ""
	default:
		return models.CategoryInstrument
	}
}
