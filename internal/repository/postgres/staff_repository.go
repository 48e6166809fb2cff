// internal/repository/postgres/staff_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/lib/pq"
)

type staffRepository struct {
	db *DB
}

// NewStaffRepository returns a Postgres-backed staff repository.
func NewStaffRepository(db *DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

type staffRecord struct {
	domain.Staff
	ManagedZonesArr    pq.StringArray `db:"managed_zones"`
	ManagedBranchesArr pq.StringArray `db:"managed_branches"`
}

func (r staffRecord) toDomain() domain.Staff {
	s := r.Staff
	s.ManagedZones = append([]string(nil), r.ManagedZonesArr...)
	s.ManagedBranches = append([]string(nil), r.ManagedBranchesArr...)
	return s
}

const staffColumns = `id, employee_code, name, designation, branch, district, region, zone,
	reports_to, managed_zones, managed_branches, created_at, updated_at`

func (r *staffRepository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY employee_code`

	var records []staffRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	out := make([]domain.Staff, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *staffRepository) GetStaffByCode(ctx context.Context, code string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE employee_code = $1`

	var rec staffRecord
	if err := r.db.GetContext(ctx, &rec, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error getting staff %s: %w", code, err)
	}
	s := rec.toDomain()
	return &s, nil
}

func (r *staffRepository) CreateStaff(ctx context.Context, s *domain.Staff) error {
	query := `
		INSERT INTO staff (employee_code, name, designation, branch, district, region, zone,
			reports_to, managed_zones, managed_branches)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		s.EmployeeCode, s.Name, s.Designation, s.Branch, s.District, s.Region, s.Zone,
		s.ReportsTo, pq.Array(s.ManagedZones), pq.Array(s.ManagedBranches),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating staff %s: %w", s.EmployeeCode, err)
	}
	return nil
}

func (r *staffRepository) UpdateStaff(ctx context.Context, s *domain.Staff) error {
	query := `
		UPDATE staff SET
			name = $2, designation = $3, branch = $4, district = $5, region = $6, zone = $7,
			reports_to = $8, managed_zones = $9, managed_branches = $10, updated_at = NOW()
		WHERE employee_code = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		s.EmployeeCode, s.Name, s.Designation, s.Branch, s.District, s.Region, s.Zone,
		s.ReportsTo, pq.Array(s.ManagedZones), pq.Array(s.ManagedBranches),
	)
	if err != nil {
		return fmt.Errorf("error updating staff %s: %w", s.EmployeeCode, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteStaff(ctx context.Context, code string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM staff WHERE employee_code = $1`, code)
		if err != nil {
			return fmt.Errorf("error deleting staff %s: %w", code, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return repository.ErrNotFound
		}
		// Dependents keep working with no manager rather than a dangling code.
		if _, err := tx.ExecContext(ctx,
			`UPDATE staff SET reports_to = '', updated_at = NOW() WHERE reports_to = $1`, code); err != nil {
			return fmt.Errorf("error clearing reports_to for %s: %w", code, err)
		}
		return nil
	})
}

func (r *staffRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT id, name, zone, region, district, manager_code, created_at, updated_at
		FROM branches ORDER BY name`

	var branches []domain.Branch
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("error listing branches: %w", err)
	}
	return branches, nil
}

func (r *staffRepository) UpsertBranch(ctx context.Context, b *domain.Branch) error {
	query := `
		INSERT INTO branches (name, zone, region, district, manager_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET zone = EXCLUDED.zone, region = EXCLUDED.region,
			district = EXCLUDED.district, manager_code = EXCLUDED.manager_code,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		b.Name, b.Zone, b.Region, b.District, b.ManagerCode,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting branch %s: %w", b.Name, err)
	}
	return nil
}

func (r *staffRepository) DeleteBranch(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("error deleting branch %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
