// internal/repository/postgres/achievement_repository.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
)

type achievementRepository struct {
	db *DB
}

// NewAchievementRepository returns a Postgres-backed achievement store.
func NewAchievementRepository(db *DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

const (
	displayDateLayout = "02/01/2006"
	isoDateLayout     = "2006-01-02"
)

type achievementRecord struct {
	RowDate    time.Time `db:"row_date"`
	StaffName  string    `db:"staff_name"`
	BranchName string    `db:"branch_name"`
	Values     []byte    `db:"metric_values"`
}

func (r *achievementRepository) ListRows(ctx context.Context, month string) ([]domain.AchievementRow, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT row_date, staff_name, branch_name, metric_values
		FROM achievement_rows
		WHERE row_date >= $1 AND row_date < $2
		ORDER BY row_date, staff_name
	`
	var records []achievementRecord
	if err := r.db.SelectContext(ctx, &records, query,
		start.Format(isoDateLayout), end.Format(isoDateLayout)); err != nil {
		return nil, fmt.Errorf("error listing achievement rows for %s: %w", month, err)
	}

	out := make([]domain.AchievementRow, 0, len(records))
	for _, rec := range records {
		values := make(map[string]float64)
		if len(rec.Values) > 0 {
			if err := json.Unmarshal(rec.Values, &values); err != nil {
				return nil, fmt.Errorf("error decoding achievement values for %s/%s: %w",
					rec.RowDate.Format(isoDateLayout), rec.StaffName, err)
			}
		}
		out = append(out, domain.AchievementRow{
			Date:       rec.RowDate.Format(displayDateLayout),
			StaffName:  rec.StaffName,
			BranchName: rec.BranchName,
			Values:     values,
		})
	}
	return out, nil
}

func (r *achievementRepository) UpsertRow(ctx context.Context, row *domain.AchievementRow) error {
	date, err := time.Parse(displayDateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return fmt.Errorf("invalid achievement date %q: %w", row.Date, err)
	}
	payload, err := json.Marshal(row.Values)
	if err != nil {
		return fmt.Errorf("error encoding achievement values: %w", err)
	}

	query := `
		INSERT INTO achievement_rows (row_date, staff_name, branch_name, metric_values, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (row_date, staff_name)
		DO UPDATE SET branch_name = EXCLUDED.branch_name, metric_values = EXCLUDED.metric_values,
			updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query,
		date.Format(isoDateLayout), row.StaffName, row.BranchName, payload); err != nil {
		return fmt.Errorf("error upserting achievement row %s/%s: %w", row.Date, row.StaffName, err)
	}
	return nil
}
