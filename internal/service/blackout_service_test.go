package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

type mockBlackoutStore struct {
	rules   []models.BlackoutRule
	created []models.BlackoutRule
	deleted []string
}

func (m *mockBlackoutStore) List(ctx context.Context) ([]models.BlackoutRule, error) {
	return m.rules, nil
}

func (m *mockBlackoutStore) FindByID(ctx context.Context, id string) (*models.BlackoutRule, error) {
	for i := range m.rules {
		if m.rules[i].ID == id {
			return &m.rules[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockBlackoutStore) Create(ctx context.Context, rule *models.BlackoutRule) error {
	m.created = append(m.created, *rule)
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockBlackoutStore) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockLargeClassReader struct {
	entries []models.LargeClassEntry
}

func (m *mockLargeClassReader) ListAll(ctx context.Context) ([]models.LargeClassEntry, error) {
	return m.entries, nil
}

func intPtr(v int) *int { return &v }

func TestEvaluateBlackoutRulesRecurring(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:          "b1",
		RuleType:    models.BlackoutRecurring,
		DayOfWeek:   intPtr(3),
		PeriodStart: intPtr(5),
		PeriodEnd:   intPtr(6),
		Reason:      "系例会",
	}}

	assert.True(t, EvaluateBlackoutRules(1, 3, 5, nil, rules).Blocked())
	assert.True(t, EvaluateBlackoutRules(16, 3, 6, nil, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(1, 3, 7, nil, rules).Blocked(), "period outside range")
	assert.False(t, EvaluateBlackoutRules(1, 4, 5, nil, rules).Blocked(), "different day")
}

func TestEvaluateBlackoutRulesSpecificWeekDay(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:         "b2",
		RuleType:   models.BlackoutSpecific,
		WeekNumber: intPtr(7),
		DayOfWeek:  intPtr(1),
	}}

	assert.True(t, EvaluateBlackoutRules(7, 1, 4, nil, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(6, 1, 4, nil, rules).Blocked(), "wrong week")
	assert.False(t, EvaluateBlackoutRules(7, 2, 4, nil, rules).Blocked(), "wrong day")
}

func TestEvaluateBlackoutRulesWholeWeek(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:         "b3",
		RuleType:   models.BlackoutSpecific,
		WeekNumber: intPtr(9),
		Reason:     "期中考试周",
	}}

	result := EvaluateBlackoutRules(9, 4, 2, nil, rules)
	assert.Equal(t, models.FullyBlocked, result.Status)
	assert.False(t, EvaluateBlackoutRules(10, 4, 2, nil, rules).Blocked())
}

func TestEvaluateBlackoutRulesWeekDayPairs(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:               "b4",
		RuleType:         models.BlackoutSpecific,
		SpecificWeekDays: []byte(`[{"week":3,"day":5},{"week":4,"day":5}]`),
	}}

	assert.True(t, EvaluateBlackoutRules(3, 5, 1, nil, rules).Blocked())
	assert.True(t, EvaluateBlackoutRules(4, 5, 10, nil, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(5, 5, 1, nil, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(3, 4, 1, nil, rules).Blocked())
}

func TestEvaluateBlackoutRulesWeekWithPeriodsAppliesEveryDay(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:          "b5",
		RuleType:    models.BlackoutSpecific,
		WeekNumber:  intPtr(2),
		PeriodStart: intPtr(1),
		PeriodEnd:   intPtr(2),
	}}

	assert.True(t, EvaluateBlackoutRules(2, 1, 1, nil, rules).Blocked())
	assert.True(t, EvaluateBlackoutRules(2, 7, 2, nil, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(2, 1, 3, nil, rules).Blocked())
}

func TestEvaluateBlackoutRulesClassAssociations(t *testing.T) {
	rules := []models.BlackoutRule{{
		ID:                "b6",
		RuleType:          models.BlackoutRecurring,
		DayOfWeek:         intPtr(2),
		ClassAssociations: []string{"音乐学23"},
	}}

	assert.True(t, EvaluateBlackoutRules(1, 2, 1, []string{"音乐学2301"}, rules).Blocked(), "substring match")
	assert.False(t, EvaluateBlackoutRules(1, 2, 1, []string{"舞蹈2201"}, rules).Blocked())
	assert.False(t, EvaluateBlackoutRules(1, 2, 1, nil, rules).Blocked(), "no candidate classes")
}

func TestWeekFullyBlockedByDayCover(t *testing.T) {
	var rules []models.BlackoutRule
	for day := 1; day <= 7; day++ {
		rules = append(rules, models.BlackoutRule{
			ID:         "b",
			RuleType:   models.BlackoutSpecific,
			WeekNumber: intPtr(5),
			DayOfWeek:  intPtr(day),
		})
	}

	assert.True(t, WeekFullyBlocked(5, nil, rules))
	assert.False(t, WeekFullyBlocked(6, nil, rules))
	assert.False(t, WeekFullyBlocked(5, nil, rules[:6]), "one day still open")
}

func TestWeekFullyBlockedExplicitFullPeriodSpan(t *testing.T) {
	var rules []models.BlackoutRule
	for day := 1; day <= 7; day++ {
		rules = append(rules, models.BlackoutRule{
			ID:          "b",
			RuleType:    models.BlackoutRecurring,
			DayOfWeek:   intPtr(day),
			PeriodStart: intPtr(1),
			PeriodEnd:   intPtr(10),
		})
	}

	assert.True(t, WeekFullyBlocked(1, nil, rules), "spelled-out full span covers the day like open bounds")

	partial := rules
	partial[3].PeriodEnd = intPtr(9)
	assert.False(t, WeekFullyBlocked(1, nil, partial), "period 10 stays usable on one day")
}

func TestEvaluateLargeClassesPartialBlock(t *testing.T) {
	entries := []models.LargeClassEntry{{
		ClassName:   "音乐学2301",
		CourseName:  "思想政治",
		DayOfWeek:   4,
		PeriodStart: 1,
		PeriodEnd:   2,
		WeekRange:   "1-16",
	}}

	result := EvaluateLargeClasses(3, 4, 1, []string{"音乐学2301"}, "", entries)
	assert.Equal(t, models.PartiallyBlocked, result.Status)
	assert.Contains(t, result.Reason, "思想政治")

	assert.False(t, EvaluateLargeClasses(3, 4, 3, []string{"音乐学2301"}, "", entries).Blocked())
	assert.False(t, EvaluateLargeClasses(3, 4, 1, []string{"舞蹈2201"}, "", entries).Blocked())
}

func TestEvaluateLargeClassesMatchesLecturingTeacher(t *testing.T) {
	entries := []models.LargeClassEntry{{
		ClassName:   "音乐学2301",
		CourseName:  "音乐理论",
		TeacherName: "李老师",
		DayOfWeek:   1,
		PeriodStart: 1,
		PeriodEnd:   2,
		WeekRange:   "1-16",
	}}

	result := EvaluateLargeClasses(5, 1, 1, []string{"舞蹈2201"}, "李老师", entries)
	assert.Equal(t, models.PartiallyBlocked, result.Status, "lecturing teacher is busy even for other classes")

	assert.False(t, EvaluateLargeClasses(5, 1, 1, []string{"舞蹈2201"}, "张老师", entries).Blocked())
	assert.False(t, EvaluateLargeClasses(5, 1, 1, []string{"舞蹈2201"}, "", entries).Blocked())
	assert.False(t, EvaluateLargeClasses(5, 1, 1, nil, "李老", entries).Blocked(), "teacher match is exact")
}

func TestEvaluateSlotRulesTakePrecedence(t *testing.T) {
	rules := []models.BlackoutRule{{ID: "b7", RuleType: models.BlackoutRecurring, DayOfWeek: intPtr(1), Reason: "教研活动"}}
	entries := []models.LargeClassEntry{{
		ClassName: "音乐学2301", CourseName: "大学英语",
		DayOfWeek: 1, PeriodStart: 1, PeriodEnd: 10, WeekRange: "1-16",
	}}

	result := EvaluateSlot(1, 1, 1, []string{"音乐学2301"}, "", rules, entries)
	assert.Equal(t, models.PartiallyBlocked, result.Status)
	assert.Equal(t, "教研活动", result.Reason, "rule reason wins over the lecture collision")
}

func TestEvaluateBlackoutRulesSlotHitIsPartial(t *testing.T) {
	rules := []models.BlackoutRule{
		{ID: "b9", RuleType: models.BlackoutRecurring, DayOfWeek: intPtr(2), PeriodStart: intPtr(3), PeriodEnd: intPtr(4)},
		{ID: "b10", RuleType: models.BlackoutSpecific, WeekNumber: intPtr(12)},
	}

	hit := EvaluateBlackoutRules(1, 2, 3, nil, rules)
	assert.Equal(t, models.PartiallyBlocked, hit.Status, "a single blocked slot leaves the rest of the week open")

	wholeWeek := EvaluateBlackoutRules(12, 5, 1, nil, rules)
	assert.Equal(t, models.FullyBlocked, wholeWeek.Status)
}

func TestCreateRuleRecurringRequiresDay(t *testing.T) {
	svc := NewBlackoutService(&mockBlackoutStore{}, &mockLargeClassReader{}, nil, zap.NewNop())

	_, err := svc.CreateRule(context.Background(), CreateBlackoutRuleRequest{RuleType: models.BlackoutRecurring})
	require.Error(t, err)
}

func TestCreateRuleSpecificRequiresWeekOrPairs(t *testing.T) {
	svc := NewBlackoutService(&mockBlackoutStore{}, &mockLargeClassReader{}, nil, zap.NewNop())

	_, err := svc.CreateRule(context.Background(), CreateBlackoutRuleRequest{RuleType: models.BlackoutSpecific})
	require.Error(t, err)
}

func TestCreateRuleRejectsInvertedPeriods(t *testing.T) {
	svc := NewBlackoutService(&mockBlackoutStore{}, &mockLargeClassReader{}, nil, zap.NewNop())

	_, err := svc.CreateRule(context.Background(), CreateBlackoutRuleRequest{
		RuleType:    models.BlackoutRecurring,
		DayOfWeek:   intPtr(1),
		PeriodStart: intPtr(6),
		PeriodEnd:   intPtr(3),
	})
	require.Error(t, err)
}

func TestCreateRuleStoresWeekDayPairs(t *testing.T) {
	store := &mockBlackoutStore{}
	svc := NewBlackoutService(store, &mockLargeClassReader{}, nil, zap.NewNop())

	rule, err := svc.CreateRule(context.Background(), CreateBlackoutRuleRequest{
		RuleType:         models.BlackoutSpecific,
		SpecificWeekDays: []models.WeekDayPair{{Week: 3, Day: 1}},
		Reason:           "调课",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	assert.Equal(t, []models.WeekDayPair{{Week: 3, Day: 1}}, rule.WeekDayPairs())
	assert.Len(t, store.created, 1)
}

func TestDeleteRuleNotFound(t *testing.T) {
	svc := NewBlackoutService(&mockBlackoutStore{}, &mockLargeClassReader{}, nil, zap.NewNop())

	err := svc.DeleteRule(context.Background(), "missing")
	require.Error(t, err)
}

func TestEvaluateSlotLoadsRulesAndTimetable(t *testing.T) {
	store := &mockBlackoutStore{rules: []models.BlackoutRule{{
		ID: "b8", RuleType: models.BlackoutRecurring, DayOfWeek: intPtr(6),
	}}}
	svc := NewBlackoutService(store, &mockLargeClassReader{}, nil, zap.NewNop())

	result, err := svc.EvaluateSlot(context.Background(), 1, 6, 1, nil, "")
	require.NoError(t, err)
	assert.Equal(t, models.PartiallyBlocked, result.Status)
}
