// internal/service/staff_service.go
package service

import (
	"context"
	"fmt"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/rs/zerolog/log"
)

// StaffService guards the master-data invariants that the aggregation engine
// later relies on: no self-reporting, no dangling manager references after a
// delete, at most one recognized branch manager per branch.
type StaffService struct {
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) *StaffService {
	return &StaffService{repo: repo}
}

func (s *StaffService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.ListStaff(ctx)
}

func (s *StaffService) GetStaff(ctx context.Context, code string) (*domain.Staff, error) {
	return s.repo.GetStaffByCode(ctx, code)
}

func (s *StaffService) CreateStaff(ctx context.Context, staff *domain.Staff) error {
	if err := validateStaff(staff); err != nil {
		return err
	}
	if err := s.repo.CreateStaff(ctx, staff); err != nil {
		return err
	}
	return s.enforceSingleBranchManager(ctx, staff)
}

func (s *StaffService) UpdateStaff(ctx context.Context, staff *domain.Staff) error {
	if err := validateStaff(staff); err != nil {
		return err
	}
	if err := s.repo.UpdateStaff(ctx, staff); err != nil {
		return err
	}
	return s.enforceSingleBranchManager(ctx, staff)
}

// DeleteStaff removes a staff member; the repository clears dangling
// reportsTo references in the same transaction.
func (s *StaffService) DeleteStaff(ctx context.Context, code string) error {
	return s.repo.DeleteStaff(ctx, code)
}

func (s *StaffService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.repo.ListBranches(ctx)
}

func (s *StaffService) UpsertBranch(ctx context.Context, b *domain.Branch) error {
	if b.Name == "" {
		return fmt.Errorf("branch name is required")
	}
	return s.repo.UpsertBranch(ctx, b)
}

func (s *StaffService) DeleteBranch(ctx context.Context, name string) error {
	return s.repo.DeleteBranch(ctx, name)
}

func validateStaff(staff *domain.Staff) error {
	if staff.EmployeeCode == "" {
		return fmt.Errorf("employee code is required")
	}
	if staff.Name == "" {
		return fmt.Errorf("staff name is required")
	}
	if staff.ReportsTo == staff.EmployeeCode {
		return fmt.Errorf("staff %s cannot report to themselves", staff.EmployeeCode)
	}
	return nil
}

// enforceSingleBranchManager demotes any other branch manager of the same
// branch to assistant. The roster, not the branch record, is the
// authoritative source of who manages a branch, so the invariant is enforced
// here on every roster write.
func (s *StaffService) enforceSingleBranchManager(ctx context.Context, staff *domain.Staff) error {
	if staff.Designation != domain.DesignationBranchManager || staff.Branch == "" {
		return nil
	}

	all, err := s.repo.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("branch manager check: %w", err)
	}
	for _, other := range all {
		if other.EmployeeCode == staff.EmployeeCode {
			continue
		}
		if other.Designation != domain.DesignationBranchManager || other.Branch != staff.Branch {
			continue
		}
		demoted := other
		demoted.Designation = domain.DesignationAsstBranchManager
		if err := s.repo.UpdateStaff(ctx, &demoted); err != nil {
			return fmt.Errorf("demoting extra manager %s of %s: %w", other.EmployeeCode, staff.Branch, err)
		}
		log.Info().
			Str("branch", staff.Branch).
			Str("demoted", other.EmployeeCode).
			Str("manager", staff.EmployeeCode).
			Msg("branch already had a manager, extra demoted")
	}
	return nil
}
