// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/bankperf/salesdash/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTarget is returned when a target with the same
	// (employee, metric, period, periodType) key already exists. Duplicate
	// definitions are rejected here, at the write boundary, so aggregation
	// can assume uniqueness.
	ErrDuplicateTarget = errors.New("duplicate target definition")
)

// StaffRepository provides the staff roster and branch master data.
type StaffRepository interface {
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	GetStaffByCode(ctx context.Context, code string) (*domain.Staff, error)
	CreateStaff(ctx context.Context, s *domain.Staff) error
	UpdateStaff(ctx context.Context, s *domain.Staff) error
	// DeleteStaff removes a staff member and clears dangling reportsTo
	// references in dependents in the same transaction.
	DeleteStaff(ctx context.Context, code string) error

	ListBranches(ctx context.Context) ([]domain.Branch, error)
	UpsertBranch(ctx context.Context, b *domain.Branch) error
	DeleteBranch(ctx context.Context, name string) error
}

// TargetRepository stores per-staff KRA targets and per-branch targets.
type TargetRepository interface {
	ListStaffTargets(ctx context.Context, period string, periodType domain.PeriodType) ([]domain.Target, error)
	CreateTarget(ctx context.Context, t *domain.Target) error
	UpdateTarget(ctx context.Context, t *domain.Target) error
	DeleteTarget(ctx context.Context, id int64) error

	ListBranchTargets(ctx context.Context, period string) ([]domain.BranchTarget, error)
	UpsertBranchTarget(ctx context.Context, t *domain.BranchTarget) error
	DeleteBranchTarget(ctx context.Context, id int64) error
}

// MetricRepository stores the admin-configurable product-metric catalog.
type MetricRepository interface {
	ListMetrics(ctx context.Context) ([]domain.ProductMetric, error)
	UpsertMetric(ctx context.Context, m *domain.ProductMetric) error
	DeleteMetric(ctx context.Context, name string) error
}

// AchievementRepository stores daily achievement rows keyed by
// (date, staff name).
type AchievementRepository interface {
	ListRows(ctx context.Context, month string) ([]domain.AchievementRow, error)
	UpsertRow(ctx context.Context, row *domain.AchievementRow) error
}
