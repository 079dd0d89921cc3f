package service

import (
	"sort"

	"go.uber.org/zap"

	"github.com/yunshan-music/lesson-api/internal/models"
)

// Allocation statuses.
const (
	AllocationFilled        = "FILLED"
	AllocationShortfall     = "SHORTFALL"
	AllocationNoneAvailable = "NONE_AVAILABLE"
)

// AllocateWeeksRequest asks for a batch of candidate weeks in one grid cell.
type AllocateWeeksRequest struct {
	DayOfWeek       int   `json:"dayOfWeek" validate:"required,min=1,max=7"`
	Period          int   `json:"period" validate:"required,min=1,max=10"`
	Required        int   `json:"required" validate:"required,min=1"`
	AlreadySelected []int `json:"alreadySelected"`
	TotalWeeks      int   `json:"totalWeeks"`
	PivotWeek       int   `json:"pivotWeek"`
}

// AllocationResult is the allocator's proposal.
type AllocationResult struct {
	Weeks     []int  `json:"weeks"`
	Status    string `json:"status"`
	Requested int    `json:"requested"`
	Missing   int    `json:"missing"`
}

// AllocatorService proposes week batches for a fixed (day, period) cell. The
// caller supplies the rejection predicate, typically a conflict check over a
// fresh snapshot.
type AllocatorService struct {
	totalWeeks int
	logger     *zap.Logger
}

// NewAllocatorService constructs the allocator with the term length used
// when a request does not carry its own.
func NewAllocatorService(totalWeeks int, logger *zap.Logger) *AllocatorService {
	if totalWeeks <= 0 {
		totalWeeks = models.DefaultTotalWeeks
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocatorService{totalWeeks: totalWeeks, logger: logger}
}

// Allocate walks the available weeks circularly starting at the pivot and
// collects the remaining count: required minus the distinct weeks already
// selected. Already selected weeks are never proposed again, and the walk is
// bounded by the number of available weeks.
func (s *AllocatorService) Allocate(req AllocateWeeksRequest, reject func(week int) *models.Conflict) AllocationResult {
	totalWeeks := req.TotalWeeks
	if totalWeeks <= 0 {
		totalWeeks = s.totalWeeks
	}

	selected := make(map[int]struct{}, len(req.AlreadySelected))
	for _, w := range req.AlreadySelected {
		selected[w] = struct{}{}
	}

	remaining := req.Required - len(selected)
	if remaining < 0 {
		remaining = 0
	}

	result := AllocationResult{Requested: req.Required}
	if remaining == 0 {
		result.Status = AllocationFilled
		return result
	}

	var available []int
	for week := 1; week <= totalWeeks; week++ {
		if _, taken := selected[week]; taken {
			continue
		}
		if reject != nil && reject(week) != nil {
			continue
		}
		available = append(available, week)
	}

	if len(available) == 0 {
		result.Status = AllocationNoneAvailable
		result.Missing = remaining
		return result
	}

	start := pivotIndex(available, req.PivotWeek)
	for visited := 0; visited < len(available) && len(result.Weeks) < remaining; visited++ {
		result.Weeks = append(result.Weeks, available[(start+visited)%len(available)])
	}
	sort.Ints(result.Weeks)

	if len(result.Weeks) == remaining {
		result.Status = AllocationFilled
	} else {
		result.Status = AllocationShortfall
		result.Missing = remaining - len(result.Weeks)
	}
	return result
}

// pivotIndex finds the walk start: the pivot week itself when available,
// otherwise the first available week at or after it, otherwise index 0.
func pivotIndex(available []int, pivotWeek int) int {
	if pivotWeek <= 0 {
		return 0
	}
	for i, w := range available {
		if w >= pivotWeek {
			return i
		}
	}
	return 0
}
