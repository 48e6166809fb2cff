// internal/service/target_service.go
package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
)

// TargetService is the write boundary for KRA and branch targets. Duplicate
// definitions are rejected here; by the time aggregation runs, uniqueness of
// (employee, metric, period, periodType) already holds.
type TargetService struct {
	repo  repository.TargetRepository
	cache cache.RunRateCache
}

func NewTargetService(repo repository.TargetRepository, cacheImpl cache.RunRateCache) *TargetService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunRateCache()
	}
	return &TargetService{repo: repo, cache: cacheImpl}
}

func (s *TargetService) ListStaffTargets(ctx context.Context, period string, periodType domain.PeriodType) ([]domain.Target, error) {
	return s.repo.ListStaffTargets(ctx, period, periodType)
}

func (s *TargetService) CreateTarget(ctx context.Context, t *domain.Target) error {
	if err := validateTarget(t); err != nil {
		return err
	}
	if err := s.repo.CreateTarget(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TargetService) UpdateTarget(ctx context.Context, t *domain.Target) error {
	if t.Value < 0 {
		return fmt.Errorf("target value cannot be negative")
	}
	if err := s.repo.UpdateTarget(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TargetService) DeleteTarget(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTarget(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TargetService) ListBranchTargets(ctx context.Context, period string) ([]domain.BranchTarget, error) {
	return s.repo.ListBranchTargets(ctx, period)
}

func (s *TargetService) UpsertBranchTarget(ctx context.Context, t *domain.BranchTarget) error {
	if t.BranchName == "" || t.Metric == "" {
		return fmt.Errorf("branch target needs a branch and a metric")
	}
	if !monthPattern.MatchString(t.Period) {
		return fmt.Errorf("branch target period must be YYYY-MM, got %q", t.Period)
	}
	if t.Value < 0 {
		return fmt.Errorf("target value cannot be negative")
	}
	if err := s.repo.UpsertBranchTarget(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TargetService) DeleteBranchTarget(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBranchTarget(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TargetService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("targets: cache invalidation failed")
	}
}

func validateTarget(t *domain.Target) error {
	if t.EmployeeCode == "" || t.Metric == "" {
		return fmt.Errorf("target needs an employee code and a metric")
	}
	if t.Value < 0 {
		return fmt.Errorf("target value cannot be negative")
	}
	switch t.PeriodType {
	case domain.PeriodMonthly, domain.PeriodMTD:
		if !monthPattern.MatchString(t.Period) {
			return fmt.Errorf("%s target period must be YYYY-MM, got %q", t.PeriodType, t.Period)
		}
	case domain.PeriodYTD:
		if !yearPattern.MatchString(t.Period) {
			return fmt.Errorf("ytd target period must be YYYY, got %q", t.Period)
		}
	default:
		return fmt.Errorf("unknown period type %q", t.PeriodType)
	}
	return nil
}
