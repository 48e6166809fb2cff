// internal/service/metric_service.go
package service

import (
	"context"
	"fmt"

	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/rs/zerolog/log"
)

// MetricService maintains the admin-configurable metric catalog. Catalog
// edits change how achievement rows are classified, so every write
// invalidates cached reports.
type MetricService struct {
	repo  repository.MetricRepository
	cache cache.RunRateCache
}

func NewMetricService(repo repository.MetricRepository, cacheImpl cache.RunRateCache) *MetricService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunRateCache()
	}
	return &MetricService{repo: repo, cache: cacheImpl}
}

func (s *MetricService) ListMetrics(ctx context.Context) ([]domain.ProductMetric, error) {
	return s.repo.ListMetrics(ctx)
}

func (s *MetricService) UpsertMetric(ctx context.Context, m *domain.ProductMetric) error {
	if m.Name == "" {
		return fmt.Errorf("metric needs a name")
	}
	switch m.Kind {
	case domain.KindAmount, domain.KindAccount, domain.KindOther:
	default:
		return fmt.Errorf("unknown metric kind %q", m.Kind)
	}
	if err := s.repo.UpsertMetric(ctx, m); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MetricService) DeleteMetric(ctx context.Context, name string) error {
	if err := s.repo.DeleteMetric(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MetricService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("metrics: cache invalidation failed")
	}
}
