package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/models"
)

// platformAPI is the slice of the API client the services need. Kept
// narrow so tests can substitute a mock.
type platformAPI interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body interface{}) (*api.Envelope, error)
}

// BundleService loads the student aggregate. It prefers the platform's
// single bundle endpoint and falls back to assembling the sections from
// individual endpoints when the aggregate is unavailable.
type BundleService struct {
	api    platformAPI
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewBundleService creates the bundle service. cache may be nil to
// disable caching entirely.
func NewBundleService(apiClient platformAPI, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *BundleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BundleService{api: apiClient, cache: cache, ttl: ttl, logger: logger}
}

func bundleCacheKey(studentID string) string {
	return "bundle:student:" + studentID
}

// Load returns the normalized student bundle. Sections that cannot be
// fetched come back empty rather than failing the whole load; only a
// completely unreachable student record is an error.
func (s *BundleService) Load(ctx context.Context, studentID string) (models.StudentBundle, error) {
	cached, err := s.readCache(ctx, studentID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("bundle cache read failed", zap.String("student_id", studentID), zap.Error(err))
	}

	bundle, err := s.loadAggregate(ctx, studentID)
	if err != nil {
		s.logger.Warn("bundle endpoint unavailable, assembling sections individually",
			zap.String("student_id", studentID), zap.Error(err))
		bundle, err = s.loadSections(ctx, studentID)
		if err != nil {
			return models.StudentBundle{}, err
		}
	}

	bundle.Normalize()
	s.toCache(ctx, studentID, bundle)
	return bundle, nil
}

// Invalidate drops the cached bundle, used after writes that change it.
func (s *BundleService) Invalidate(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, bundleCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn("bundle cache invalidation failed", zap.String("student_id", studentID), zap.Error(err))
	}
}

func (s *BundleService) loadAggregate(ctx context.Context, studentID string) (models.StudentBundle, error) {
	envelope, err := s.api.Get(ctx, "/api/students/"+studentID+"/bundle")
	if err != nil {
		return models.StudentBundle{}, err
	}
	if !envelope.Success {
		return models.StudentBundle{}, appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	var bundle models.StudentBundle
	if err := envelope.Decode(&bundle); err != nil {
		return models.StudentBundle{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode bundle")
	}
	return bundle, nil
}

// loadSections fetches the bundle sections concurrently. Each section
// degrades independently; the student record is the only required one.
func (s *BundleService) loadSections(ctx context.Context, studentID string) (models.StudentBundle, error) {
	var (
		bundle     models.StudentBundle
		studentErr error
		wg         sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		var student models.Student
		if err := s.fetch(ctx, "/api/students/"+studentID, &student); err != nil {
			studentErr = err
			return
		}
		bundle.Student = &student
	}()
	go func() {
		defer wg.Done()
		var sub models.Subscription
		if err := s.fetch(ctx, "/api/students/"+studentID+"/subscription", &sub); err != nil {
			s.logger.Warn("subscription section unavailable", zap.String("student_id", studentID), zap.Error(err))
			return
		}
		if sub.ID != "" {
			bundle.Subscription = &sub
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.fetch(ctx, "/api/billing-plans", &bundle.BillingPlans); err != nil {
			s.logger.Warn("billing plans section unavailable", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.fetch(ctx, "/api/students/"+studentID+"/financial", &bundle.Financial); err != nil {
			s.logger.Warn("financial section unavailable", zap.String("student_id", studentID), zap.Error(err))
		}
	}()
	wg.Wait()

	if studentErr != nil {
		return models.StudentBundle{}, studentErr
	}
	return bundle, nil
}

func (s *BundleService) fetch(ctx context.Context, path string, dest interface{}) error {
	envelope, err := s.api.Get(ctx, path)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return envelope.Decode(dest)
}

// readCache returns ErrCacheMiss when caching is disabled, the key is
// absent or the cached payload has gone stale in shape.
func (s *BundleService) readCache(ctx context.Context, studentID string) (models.StudentBundle, error) {
	if s.cache == nil {
		return models.StudentBundle{}, appErrors.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, bundleCacheKey(studentID)).Bytes()
	if err == redis.Nil {
		return models.StudentBundle{}, appErrors.ErrCacheMiss
	}
	if err != nil {
		return models.StudentBundle{}, err
	}
	var bundle models.StudentBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return models.StudentBundle{}, appErrors.ErrCacheMiss
	}
	return bundle, nil
}

func (s *BundleService) toCache(ctx context.Context, studentID string, bundle models.StudentBundle) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, bundleCacheKey(studentID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("bundle cache write failed", zap.String("student_id", studentID), zap.Error(err))
	}
}
