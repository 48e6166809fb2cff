// internal/repository/postgres/metric_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
)

type metricRepository struct {
	db *DB
}

// NewMetricRepository returns a Postgres-backed metric catalog repository.
func NewMetricRepository(db *DB) repository.MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) ListMetrics(ctx context.Context) ([]domain.ProductMetric, error) {
	query := `SELECT id, name, category, kind, unit, contributes_to_overall
		FROM product_metrics ORDER BY id`

	var metrics []domain.ProductMetric
	if err := r.db.SelectContext(ctx, &metrics, query); err != nil {
		return nil, fmt.Errorf("error listing product metrics: %w", err)
	}
	return metrics, nil
}

func (r *metricRepository) UpsertMetric(ctx context.Context, m *domain.ProductMetric) error {
	query := `
		INSERT INTO product_metrics (name, category, kind, unit, contributes_to_overall)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET category = EXCLUDED.category, kind = EXCLUDED.kind,
			unit = EXCLUDED.unit, contributes_to_overall = EXCLUDED.contributes_to_overall
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		m.Name, m.Category, m.Kind, m.Unit, m.ContributesToOverall,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("error upserting metric %s: %w", m.Name, err)
	}
	return nil
}

func (r *metricRepository) DeleteMetric(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_metrics WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("error deleting metric %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
