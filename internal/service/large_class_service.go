package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
)

// LargeClassStore abstracts persistence for the imported lecture timetable.
type LargeClassStore interface {
	List(ctx context.Context, filter models.LargeClassFilter) ([]models.LargeClassEntry, int, error)
	ListAll(ctx context.Context) ([]models.LargeClassEntry, error)
	BulkCreate(ctx context.Context, entries []models.LargeClassEntry) error
	DeleteByBatch(ctx context.Context, batch string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// LargeClassService manages the whole-school lecture timetable that feeds
// blackout evaluation.
type LargeClassService struct {
	store     LargeClassStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLargeClassService constructs the service.
func NewLargeClassService(store LargeClassStore, v *validator.Validate, logger *zap.Logger) *LargeClassService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LargeClassService{store: store, validator: v, logger: logger}
}

// LargeClassEntryRequest is one timetable row to import.
type LargeClassEntryRequest struct {
	ClassName   string `json:"className" validate:"required"`
	CourseName  string `json:"courseName" validate:"required"`
	TeacherName string `json:"teacherName"`
	DayOfWeek   int    `json:"dayOfWeek" validate:"required,min=1,max=7"`
	PeriodStart int    `json:"periodStart" validate:"required,min=1,max=10"`
	PeriodEnd   int    `json:"periodEnd" validate:"required,min=1,max=10"`
	WeekRange   string `json:"weekRange" validate:"required"`
}

// ImportLargeClassesRequest imports a batch of timetable rows. All rows share
// one import batch id so a bad import can be rolled back as a unit.
type ImportLargeClassesRequest struct {
	Entries []LargeClassEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// ImportResult reports the stored batch.
type ImportResult struct {
	ImportBatch string `json:"import_batch"`
	Imported    int    `json:"imported"`
	Skipped     int    `json:"skipped"`
}

// Import validates and stores the batch. Rows whose week-range expression
// expands to nothing are skipped, mirroring the tolerant expression parser.
func (s *LargeClassService) Import(ctx context.Context, req ImportLargeClassesRequest) (*ImportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	batch := uuid.NewString()
	now := time.Now().UTC()
	entries := make([]models.LargeClassEntry, 0, len(req.Entries))
	skipped := 0
	for _, row := range req.Entries {
		if row.PeriodEnd < row.PeriodStart {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("inverted period range %d-%d for %s", row.PeriodStart, row.PeriodEnd, row.CourseName))
		}
		if len(models.ExpandWeekRange(row.WeekRange)) == 0 {
			skipped++
			continue
		}
		entries = append(entries, models.LargeClassEntry{
			ID:          uuid.NewString(),
			ClassName:   row.ClassName,
			CourseName:  row.CourseName,
			TeacherName: row.TeacherName,
			DayOfWeek:   row.DayOfWeek,
			PeriodStart: row.PeriodStart,
			PeriodEnd:   row.PeriodEnd,
			WeekRange:   row.WeekRange,
			ImportBatch: batch,
			CreatedAt:   now,
		})
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no importable rows in payload")
	}

	if err := s.store.BulkCreate(ctx, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "import large classes")
	}
	s.logger.Info("large classes imported", zap.String("batch", batch), zap.Int("rows", len(entries)), zap.Int("skipped", skipped))
	return &ImportResult{ImportBatch: batch, Imported: len(entries), Skipped: skipped}, nil
}

// List returns timetable rows with pagination.
func (s *LargeClassService) List(ctx context.Context, filter models.LargeClassFilter) ([]models.LargeClassEntry, *models.Pagination, error) {
	entries, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list large classes")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// DeleteBatch removes every row of one import.
func (s *LargeClassService) DeleteBatch(ctx context.Context, batch string) error {
	rows, err := s.store.DeleteByBatch(ctx, batch)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete import batch")
	}
	if rows == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "import batch not found")
	}
	return nil
}

// Delete removes a single timetable row.
func (s *LargeClassService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete large class entry")
	}
	return nil
}
