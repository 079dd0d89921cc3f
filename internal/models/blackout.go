package models

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Blackout rule types.
const (
	BlackoutRecurring = "recurring"
	BlackoutSpecific  = "specific"
)

// WeekDayPair pins a rule to one day of one week.
type WeekDayPair struct {
	Week int `json:"week"`
	Day  int `json:"day"`
}

// BlackoutRule blocks slots either every week (recurring) or in named weeks
// (specific). A nil period range means the whole day; a specific rule with a
// week but neither day nor periods blocks that entire week. Class
// associations restrict the rule to matching class names; empty means the
// rule applies to everyone.
type BlackoutRule struct {
	ID                string         `db:"id" json:"id"`
	RuleType          string         `db:"rule_type" json:"rule_type"`
	DayOfWeek         *int           `db:"day_of_week" json:"day_of_week,omitempty"`
	PeriodStart       *int           `db:"period_start" json:"period_start,omitempty"`
	PeriodEnd         *int           `db:"period_end" json:"period_end,omitempty"`
	WeekNumber        *int           `db:"week_number" json:"week_number,omitempty"`
	SpecificWeekDays  types.JSONText `db:"specific_week_days" json:"specific_week_days,omitempty"`
	ClassAssociations pq.StringArray `db:"class_associations" json:"class_associations"`
	Reason            string         `db:"reason" json:"reason"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// WeekDayPairs decodes the specific (week, day) pin list. Malformed payloads
// yield an empty list.
func (r BlackoutRule) WeekDayPairs() []WeekDayPair {
	if len(r.SpecificWeekDays) == 0 {
		return nil
	}
	var pairs []WeekDayPair
	if err := json.Unmarshal(r.SpecificWeekDays, &pairs); err != nil {
		return nil
	}
	return pairs
}
