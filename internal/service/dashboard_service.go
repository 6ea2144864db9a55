package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studentpro/studentpro-api/internal/models"
	"github.com/studentpro/studentpro-api/internal/view"
)

type collectionLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type collectionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardServiceConfig tunes the record view endpoint.
type DashboardServiceConfig struct {
	CacheTTL        time.Duration
	DefaultPageSize int
}

// DashboardService derives the visible record page server-side. The full
// collection is re-fetched on every request and cached wholesale; writes
// invalidate the snapshot rather than patching it.
type DashboardService struct {
	repo   collectionLister
	cache  collectionCache
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(repo collectionLister, cache collectionCache, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = view.DefaultPageSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, logger: logger, cfg: cfg}
}

// DefaultPageSize exposes the configured page size fallback.
func (s *DashboardService) DefaultPageSize() int {
	return s.cfg.DefaultPageSize
}

// Collection returns the full record collection and whether it came from
// cache.
func (s *DashboardService) Collection(ctx context.Context) ([]models.Student, bool, error) {
	var students []models.Student
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, CacheKeyAll, &students)
		if err == nil && hit {
			return students, true, nil
		}
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, CacheKeyAll, students, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("collection cache set failed", zap.Error(err))
		}
	}
	return students, false, nil
}

// View derives and presents the page described by cfg. The clamped page is
// reflected in the returned rendering. origin is the request's base URL used
// to resolve relative avatar paths.
func (s *DashboardService) View(ctx context.Context, cfg *view.Config, origin string) (*view.Rendered, bool, error) {
	students, cacheHit, err := s.Collection(ctx)
	if err != nil {
		return nil, false, err
	}
	derived := view.Derive(students, cfg)
	rendered := view.Present(derived, *cfg, origin)
	return &rendered, cacheHit, nil
}
