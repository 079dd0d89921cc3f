package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
)

// Snapshot cache keys. Everything lives under one prefix so a commit can
// drop the whole read-side state with a single pattern delete.
const snapshotPattern = "schedule:*"

// TeacherWorkloadKey is the cache key for a teacher's term workload report.
func TeacherWorkloadKey(teacherID string) string {
	return "schedule:workload:teacher:" + teacherID
}

// StudentProgressKey is the cache key for a student's progress summary.
func StudentProgressKey(studentID string) string {
	return "schedule:progress:student:" + studentID
}

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the short-lived snapshot cache for workload and
// progress reads. Commits never read through it; they only invalidate.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs the snapshot cache service. A nil repo or
// enabled=false turns every operation into a no-op.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

func (s *CacheService) recordLookup(hit bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
}

// Get attempts to read a cached snapshot into dest. It reports whether the
// cache was hit; a miss or a transport failure both return hit=false.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}

	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	if err != nil {
		s.recordLookup(false, start)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("snapshot cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}

	s.recordLookup(true, start)
	return true, nil
}

// Set stores a snapshot under key. A non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		s.logger.Warn("snapshot cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// InvalidateSnapshots drops every cached workload and progress view. Called
// after any commit or delete so reads never serve a stale term state longer
// than the TTL.
func (s *CacheService) InvalidateSnapshots(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, snapshotPattern); err != nil {
		s.logger.Warn("snapshot cache invalidate failed", zap.Error(err))
		return err
	}
	return nil
}
