package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
)

// BlackoutRuleStore abstracts persistence for blackout rules.
type BlackoutRuleStore interface {
	List(ctx context.Context) ([]models.BlackoutRule, error)
	FindByID(ctx context.Context, id string) (*models.BlackoutRule, error)
	Create(ctx context.Context, rule *models.BlackoutRule) error
	Delete(ctx context.Context, id string) error
}

// LargeClassReader loads the imported lecture timetable.
type LargeClassReader interface {
	ListAll(ctx context.Context) ([]models.LargeClassEntry, error)
}

// BlackoutService evaluates whether slots are blocked by blackout rules or by
// the whole-school lecture timetable, and manages the rules themselves.
type BlackoutService struct {
	rules     BlackoutRuleStore
	largeRepo LargeClassReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBlackoutService constructs the service.
func NewBlackoutService(rules BlackoutRuleStore, largeRepo LargeClassReader, v *validator.Validate, logger *zap.Logger) *BlackoutService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlackoutService{rules: rules, largeRepo: largeRepo, validator: v, logger: logger}
}

// CreateBlackoutRuleRequest carries a new rule.
type CreateBlackoutRuleRequest struct {
	RuleType          string               `json:"ruleType" validate:"required,oneof=recurring specific"`
	DayOfWeek         *int                 `json:"dayOfWeek" validate:"omitempty,min=1,max=7"`
	PeriodStart       *int                 `json:"periodStart" validate:"omitempty,min=1,max=10"`
	PeriodEnd         *int                 `json:"periodEnd" validate:"omitempty,min=1,max=10"`
	WeekNumber        *int                 `json:"weekNumber" validate:"omitempty,min=1"`
	SpecificWeekDays  []models.WeekDayPair `json:"specificWeekDays" validate:"omitempty,dive"`
	ClassAssociations []string             `json:"classAssociations"`
	Reason            string               `json:"reason"`
}

// CreateRule validates and stores a blackout rule.
func (s *BlackoutService) CreateRule(ctx context.Context, req CreateBlackoutRuleRequest) (*models.BlackoutRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blackout rule payload")
	}
	if req.RuleType == models.BlackoutRecurring && req.DayOfWeek == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recurring rules require a day of week")
	}
	if req.RuleType == models.BlackoutSpecific && req.WeekNumber == nil && len(req.SpecificWeekDays) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "specific rules require a week number or week-day pairs")
	}
	if req.PeriodStart != nil && req.PeriodEnd != nil && *req.PeriodEnd < *req.PeriodStart {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period range is inverted")
	}

	rule := &models.BlackoutRule{
		ID:                uuid.NewString(),
		RuleType:          req.RuleType,
		DayOfWeek:         req.DayOfWeek,
		PeriodStart:       req.PeriodStart,
		PeriodEnd:         req.PeriodEnd,
		WeekNumber:        req.WeekNumber,
		ClassAssociations: req.ClassAssociations,
		Reason:            req.Reason,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	if len(req.SpecificWeekDays) > 0 {
		payload, err := encodeWeekDayPairs(req.SpecificWeekDays)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week-day pairs")
		}
		rule.SpecificWeekDays = payload
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create blackout rule")
	}
	s.logger.Info("blackout rule created", zap.String("rule_id", rule.ID), zap.String("rule_type", rule.RuleType))
	return rule, nil
}

// ListRules returns every stored rule.
func (s *BlackoutService) ListRules(ctx context.Context) ([]models.BlackoutRule, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list blackout rules")
	}
	return rules, nil
}

// DeleteRule removes a rule by id.
func (s *BlackoutService) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.rules.FindByID(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "blackout rule not found")
	}
	if err := s.rules.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete blackout rule")
	}
	return nil
}

// EvaluateSlot loads the active rules and lecture timetable and evaluates one
// (week, day, period) slot for the given class names and teacher.
func (s *BlackoutService) EvaluateSlot(ctx context.Context, week, day, period int, classNames []string, teacherName string) (models.BlockResult, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return models.BlockResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list blackout rules")
	}
	entries, err := s.largeRepo.ListAll(ctx)
	if err != nil {
		return models.BlockResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list large classes")
	}
	return EvaluateSlot(week, day, period, classNames, teacherName, rules, entries), nil
}

// IsWeekFullyBlocked reports whether an entire week is unusable for the
// given classes.
func (s *BlackoutService) IsWeekFullyBlocked(ctx context.Context, week int, classNames []string) (bool, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list blackout rules")
	}
	return WeekFullyBlocked(week, classNames, rules), nil
}

// EvaluateSlot combines rule and lecture-timetable evaluation. Rules are
// checked first; lecture collisions only apply when no rule blocks the slot.
func EvaluateSlot(week, day, period int, classNames []string, teacherName string, rules []models.BlackoutRule, entries []models.LargeClassEntry) models.BlockResult {
	if result := EvaluateBlackoutRules(week, day, period, classNames, rules); result.Blocked() {
		return result
	}
	return EvaluateLargeClasses(week, day, period, classNames, teacherName, entries)
}

// EvaluateBlackoutRules checks the slot against blackout rules only. A rule
// hitting the slot itself is a partial block; only a week with no usable day
// left is fully blocked.
func EvaluateBlackoutRules(week, day, period int, classNames []string, rules []models.BlackoutRule) models.BlockResult {
	if WeekFullyBlocked(week, classNames, rules) {
		return models.BlockResult{Status: models.FullyBlocked, Reason: fmt.Sprintf("week %d is fully blocked", week)}
	}

	for _, rule := range rules {
		if !classAssociationsMatch(rule.ClassAssociations, classNames) {
			continue
		}
		if ruleBlocksSlot(rule, week, day, period) {
			return models.BlockResult{Status: models.PartiallyBlocked, Reason: blockReason(rule)}
		}
	}
	return models.BlockResult{Status: models.NotBlocked}
}

// EvaluateLargeClasses checks the slot against the imported lecture
// timetable. An entry applies when it names one of the candidate classes or
// when the lecturing teacher is the requesting teacher.
func EvaluateLargeClasses(week, day, period int, classNames []string, teacherName string, entries []models.LargeClassEntry) models.BlockResult {
	for _, entry := range entries {
		if !classNameMatches(entry.ClassName, classNames) && !teacherNameMatches(entry.TeacherName, teacherName) {
			continue
		}
		if entry.CoversSlot(week, day, period) {
			reason := fmt.Sprintf("large class %s (%s)", entry.CourseName, entry.ClassName)
			return models.BlockResult{Status: models.PartiallyBlocked, Reason: reason}
		}
	}
	return models.BlockResult{Status: models.NotBlocked}
}

// WeekFullyBlocked reports whether the rules leave no usable day in the week
// for the given classes. That happens when a specific rule blocks the whole
// week outright, or when whole-day blocks cover all seven days.
func WeekFullyBlocked(week int, classNames []string, rules []models.BlackoutRule) bool {
	coveredDays := make(map[int]bool)

	for _, rule := range rules {
		if !classAssociationsMatch(rule.ClassAssociations, classNames) {
			continue
		}

		wholeDay := wholeDaySpan(rule)
		pairs := rule.WeekDayPairs()

		switch rule.RuleType {
		case models.BlackoutRecurring:
			if rule.DayOfWeek != nil && wholeDay {
				coveredDays[*rule.DayOfWeek] = true
			}
		case models.BlackoutSpecific:
			if rule.WeekNumber != nil && *rule.WeekNumber == week {
				if rule.DayOfWeek == nil && wholeDay && len(pairs) == 0 {
					return true
				}
				if rule.DayOfWeek != nil && wholeDay {
					coveredDays[*rule.DayOfWeek] = true
				}
			}
			for _, pair := range pairs {
				if pair.Week == week && wholeDay {
					coveredDays[pair.Day] = true
				}
			}
		}
	}

	for day := models.MinDayOfWeek; day <= models.MaxDayOfWeek; day++ {
		if !coveredDays[day] {
			return false
		}
	}
	return true
}

func ruleBlocksSlot(rule models.BlackoutRule, week, day, period int) bool {
	switch rule.RuleType {
	case models.BlackoutRecurring:
		return rule.DayOfWeek != nil && *rule.DayOfWeek == day && periodWithin(rule, period)
	case models.BlackoutSpecific:
		for _, pair := range rule.WeekDayPairs() {
			if pair.Week == week && pair.Day == day && periodWithin(rule, period) {
				return true
			}
		}
		if rule.WeekNumber == nil || *rule.WeekNumber != week {
			return false
		}
		if rule.DayOfWeek == nil && rule.PeriodStart == nil && rule.PeriodEnd == nil && len(rule.WeekDayPairs()) == 0 {
			// Whole-week rule, handled by WeekFullyBlocked as well.
			return true
		}
		if rule.DayOfWeek != nil {
			return *rule.DayOfWeek == day && periodWithin(rule, period)
		}
		// Week plus period range but no day applies to every day of the week.
		if rule.PeriodStart != nil || rule.PeriodEnd != nil {
			return periodWithin(rule, period)
		}
		return false
	default:
		return false
	}
}

// wholeDaySpan reports whether the rule covers every period of a day, either
// by leaving the bounds open or by spanning the full period range explicitly.
func wholeDaySpan(rule models.BlackoutRule) bool {
	return periodWithin(rule, models.MinPeriod) && periodWithin(rule, models.MaxPeriod)
}

func periodWithin(rule models.BlackoutRule, period int) bool {
	start := models.MinPeriod
	end := models.MaxPeriod
	if rule.PeriodStart != nil {
		start = *rule.PeriodStart
	}
	if rule.PeriodEnd != nil {
		end = *rule.PeriodEnd
	}
	return period >= start && period <= end
}

// classAssociationsMatch reports whether the rule applies to any of the
// candidate classes. A rule without associations applies to everyone.
// Matching is exact or substring in either direction, because imported class
// names are frequently abbreviated.
func classAssociationsMatch(associations []string, classNames []string) bool {
	if len(associations) == 0 {
		return true
	}
	for _, assoc := range associations {
		if classNameMatches(assoc, classNames) {
			return true
		}
	}
	return false
}

func classNameMatches(name string, classNames []string) bool {
	if len(classNames) == 0 {
		return false
	}
	for _, candidate := range classNames {
		if candidate == "" || name == "" {
			continue
		}
		if candidate == name || strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			return true
		}
	}
	return false
}

// teacherNameMatches is exact: timetable imports carry the lecturer's full
// name and partial matches would block unrelated teachers.
func teacherNameMatches(entryTeacher, teacherName string) bool {
	return teacherName != "" && entryTeacher == teacherName
}

func blockReason(rule models.BlackoutRule) string {
	if rule.Reason != "" {
		return rule.Reason
	}
	return "blocked by blackout rule"
}

func encodeWeekDayPairs(pairs []models.WeekDayPair) (types.JSONText, error) {
	raw, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}
