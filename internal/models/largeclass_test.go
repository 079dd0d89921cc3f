package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeeksOverlap(t *testing.T) {
	assert.True(t, WeeksOverlap(1, 8, 8, 16))
	assert.True(t, WeeksOverlap(4, 6, 1, 16))
	assert.False(t, WeeksOverlap(1, 8, 9, 16))
	assert.False(t, WeeksOverlap(10, 12, 1, 9))
}

func TestScheduledSessionOverlapsWeeks(t *testing.T) {
	s := ScheduledSession{StartWeek: 3, EndWeek: 5}
	assert.True(t, s.OverlapsWeeks(5, 7))
	assert.False(t, s.OverlapsWeeks(6, 9))
}

func TestLargeClassEntryCoversSlot(t *testing.T) {
	entry := LargeClassEntry{
		ClassName:   "音乐学2301",
		DayOfWeek:   2,
		PeriodStart: 3,
		PeriodEnd:   4,
		WeekRange:   "1-8,10",
	}

	assert.True(t, entry.CoversSlot(5, 2, 3))
	assert.True(t, entry.CoversSlot(10, 2, 4))
	assert.False(t, entry.CoversSlot(9, 2, 3), "week outside range")
	assert.False(t, entry.CoversSlot(5, 3, 3), "wrong day")
	assert.False(t, entry.CoversSlot(5, 2, 5), "period outside range")
}

func TestBlackoutRuleWeekDayPairs(t *testing.T) {
	rule := BlackoutRule{SpecificWeekDays: []byte(`[{"week":3,"day":1},{"week":4,"day":2}]`)}
	pairs := rule.WeekDayPairs()
	assert.Equal(t, []WeekDayPair{{Week: 3, Day: 1}, {Week: 4, Day: 2}}, pairs)

	assert.Nil(t, BlackoutRule{}.WeekDayPairs())
	assert.Nil(t, BlackoutRule{SpecificWeekDays: []byte(`not-json`)}.WeekDayPairs())
}
