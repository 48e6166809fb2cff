// internal/repository/postgres/target_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/lib/pq"
)

type targetRepository struct {
	db *DB
}

// NewTargetRepository returns a Postgres-backed target repository.
func NewTargetRepository(db *DB) repository.TargetRepository {
	return &targetRepository{db: db}
}

func (r *targetRepository) ListStaffTargets(ctx context.Context, period string, periodType domain.PeriodType) ([]domain.Target, error) {
	query := `
		SELECT id, employee_code, metric, value, period_type, period, due_date
		FROM staff_targets
		WHERE period = $1 AND period_type = $2
		ORDER BY employee_code, metric
	`
	var targets []domain.Target
	if err := r.db.SelectContext(ctx, &targets, query, period, periodType); err != nil {
		return nil, fmt.Errorf("error listing staff targets for %s: %w", period, err)
	}
	return targets, nil
}

func (r *targetRepository) CreateTarget(ctx context.Context, t *domain.Target) error {
	query := `
		INSERT INTO staff_targets (employee_code, metric, value, period_type, period, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		t.EmployeeCode, t.Metric, t.Value, t.PeriodType, t.Period, t.DueDate,
	).Scan(&t.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicateTarget
		}
		return fmt.Errorf("error creating target for %s/%s: %w", t.EmployeeCode, t.Metric, err)
	}
	return nil
}

func (r *targetRepository) UpdateTarget(ctx context.Context, t *domain.Target) error {
	query := `UPDATE staff_targets SET value = $2, due_date = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, t.ID, t.Value, t.DueDate)
	if err != nil {
		return fmt.Errorf("error updating target %d: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *targetRepository) DeleteTarget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting target %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *targetRepository) ListBranchTargets(ctx context.Context, period string) ([]domain.BranchTarget, error) {
	query := `
		SELECT id, branch_name, metric, value, period
		FROM branch_targets
		WHERE period = $1
		ORDER BY branch_name, metric
	`
	var targets []domain.BranchTarget
	if err := r.db.SelectContext(ctx, &targets, query, period); err != nil {
		return nil, fmt.Errorf("error listing branch targets for %s: %w", period, err)
	}
	return targets, nil
}

func (r *targetRepository) UpsertBranchTarget(ctx context.Context, t *domain.BranchTarget) error {
	query := `
		INSERT INTO branch_targets (branch_name, metric, value, period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (branch_name, metric, period)
		DO UPDATE SET value = EXCLUDED.value
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, t.BranchName, t.Metric, t.Value, t.Period).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("error upserting branch target %s/%s: %w", t.BranchName, t.Metric, err)
	}
	return nil
}

func (r *targetRepository) DeleteBranchTarget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branch_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting branch target %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
