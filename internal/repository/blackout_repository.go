package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yunshan-music/lesson-api/internal/models"
)

const blackoutColumns = "id, rule_type, day_of_week, period_start, period_end, week_number, specific_week_days, class_associations, reason, created_at, updated_at"

// BlackoutRepository provides persistence for blackout rules.
type BlackoutRepository struct {
	db *sqlx.DB
}

// NewBlackoutRepository creates a new blackout repository.
func NewBlackoutRepository(db *sqlx.DB) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

// List returns every stored rule ordered by creation time.
func (r *BlackoutRepository) List(ctx context.Context) ([]models.BlackoutRule, error) {
	query := fmt.Sprintf("SELECT %s FROM blackout_rules ORDER BY created_at ASC", blackoutColumns)
	var rules []models.BlackoutRule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("list blackout rules: %w", err)
	}
	return rules, nil
}

// FindByID loads a rule by id.
func (r *BlackoutRepository) FindByID(ctx context.Context, id string) (*models.BlackoutRule, error) {
	query := fmt.Sprintf("SELECT %s FROM blackout_rules WHERE id = $1", blackoutColumns)
	var rule models.BlackoutRule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Create stores a new rule.
func (r *BlackoutRepository) Create(ctx context.Context, rule *models.BlackoutRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	const query = `INSERT INTO blackout_rules (id, rule_type, day_of_week, period_start, period_end, week_number, specific_week_days, class_associations, reason, created_at, updated_at) VALUES (:id, :rule_type, :day_of_week, :period_start, :period_end, :week_number, :specific_week_days, :class_associations, :reason, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create blackout rule: %w", err)
	}
	return nil
}

// Delete removes a rule by id.
func (r *BlackoutRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blackout_rules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete blackout rule: %w", err)
	}
	return nil
}
