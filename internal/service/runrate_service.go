// internal/service/runrate_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/catalog"
	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/hierarchy"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/bankperf/salesdash/internal/runrate"
	"github.com/rs/zerolog/log"
)

// RunRateService answers the dashboard's core question: where does a user's
// book stand against target for a month, and what daily pace closes the gap.
//
// One GetReport call reads each store exactly once and hands the engine
// plain slices, so the whole aggregation pass runs over a single consistent
// snapshot of the data.
type RunRateService struct {
	staff        repository.StaffRepository
	targets      repository.TargetRepository
	metrics      repository.MetricRepository
	achievements repository.AchievementRepository
	cache        cache.RunRateCache
}

func NewRunRateService(
	staff repository.StaffRepository,
	targets repository.TargetRepository,
	metrics repository.MetricRepository,
	achievements repository.AchievementRepository,
	cacheImpl cache.RunRateCache,
) *RunRateService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunRateCache()
	}
	return &RunRateService{
		staff:        staff,
		targets:      targets,
		metrics:      metrics,
		achievements: achievements,
		cache:        cacheImpl,
	}
}

// GetReport computes the run-rate report for one staff member and month as
// of the given date.
func (s *RunRateService) GetReport(ctx context.Context, employeeCode, month string, asOf time.Time) (*domain.RunRateReport, error) {
	asOfDate := asOf.Format("2006-01-02")

	if report, ok, err := s.cache.GetReport(ctx, employeeCode, month, asOfDate); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("run rate: cache get failed")
	}

	subject, err := s.staff.GetStaffByCode(ctx, employeeCode)
	if err != nil {
		return nil, fmt.Errorf("run rate: subject %s: %w", employeeCode, err)
	}

	allStaff, err := s.staff.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("run rate: staff roster: %w", err)
	}
	allBranches, err := s.staff.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("run rate: branches: %w", err)
	}
	metrics, err := s.metrics.ListMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("run rate: metric catalog: %w", err)
	}
	kras, err := s.targets.ListStaffTargets(ctx, month, domain.PeriodMonthly)
	if err != nil {
		return nil, fmt.Errorf("run rate: staff targets: %w", err)
	}
	branchTargets, err := s.targets.ListBranchTargets(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("run rate: branch targets: %w", err)
	}
	rows, err := s.achievements.ListRows(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("run rate: achievement rows: %w", err)
	}

	scope := hierarchy.ResolveScope(*subject, allStaff, allBranches)
	cat := catalog.New(metrics)

	target := runrate.ResolveMonthlyTarget(*subject, scope, kras, branchTargets, cat, month)
	achieved := runrate.AggregateAchievements(scope, runrate.BuildNameIndex(allStaff), rows, month, asOf)
	daysInMonth, daysRemaining := runrate.MonthWindow(month, asOf)

	report := runrate.Calculate(target, achieved, daysInMonth, daysRemaining)
	report.EmployeeCode = employeeCode
	report.Month = month
	report.AsOfDate = asOfDate

	if err := s.cache.SetReport(ctx, &report); err != nil {
		log.Warn().Err(err).Msg("run rate: cache set failed")
	}

	return &report, nil
}

// GetScope exposes the resolved aggregation scope for a staff member, which
// the UI uses to render team views.
func (s *RunRateService) GetScope(ctx context.Context, employeeCode string) (*domain.Scope, error) {
	subject, err := s.staff.GetStaffByCode(ctx, employeeCode)
	if err != nil {
		return nil, fmt.Errorf("scope: subject %s: %w", employeeCode, err)
	}
	allStaff, err := s.staff.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("scope: staff roster: %w", err)
	}
	allBranches, err := s.staff.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("scope: branches: %w", err)
	}

	scope := hierarchy.ResolveScope(*subject, allStaff, allBranches)
	return &scope, nil
}
