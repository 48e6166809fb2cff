package service

import (
	"context"
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository/memory"
)

func TestStaffService_RejectsSelfReporting(t *testing.T) {
	svc := NewStaffService(memory.NewStore())

	err := svc.CreateStaff(context.Background(), &domain.Staff{
		EmployeeCode: "3937",
		Name:         "Rajesh Kumar",
		ReportsTo:    "3937",
	})
	if err == nil {
		t.Fatal("self-reporting must be rejected at the write boundary")
	}
}

func TestStaffService_DeleteClearsDanglingReports(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewStaffService(store)

	manager := domain.Staff{EmployeeCode: "2001", Name: "Suresh Menon", Designation: domain.DesignationBranchManager, Branch: "NER"}
	officer := domain.Staff{EmployeeCode: "3937", Name: "Rajesh Kumar", Designation: domain.DesignationSalesOfficer, Branch: "NER", ReportsTo: "2001"}
	if err := svc.CreateStaff(ctx, &manager); err != nil {
		t.Fatalf("create manager: %v", err)
	}
	if err := svc.CreateStaff(ctx, &officer); err != nil {
		t.Fatalf("create officer: %v", err)
	}

	if err := svc.DeleteStaff(ctx, "2001"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.GetStaffByCode(ctx, "3937")
	if err != nil {
		t.Fatalf("get officer: %v", err)
	}
	if got.ReportsTo != "" {
		t.Fatalf("dangling reportsTo must be cleared, got %q", got.ReportsTo)
	}
}

func TestStaffService_DemotesExtraBranchManagers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewStaffService(store)

	first := domain.Staff{EmployeeCode: "2001", Name: "Suresh Menon", Designation: domain.DesignationBranchManager, Branch: "NER"}
	second := domain.Staff{EmployeeCode: "2002", Name: "Kavita Rao", Designation: domain.DesignationBranchManager, Branch: "NER"}
	if err := svc.CreateStaff(ctx, &first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := svc.CreateStaff(ctx, &second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := store.GetStaffByCode(ctx, "2001")
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got.Designation != domain.DesignationAsstBranchManager {
		t.Fatalf("first manager must be demoted, got %s", got.Designation)
	}
	got, err = store.GetStaffByCode(ctx, "2002")
	if err != nil {
		t.Fatalf("get second: %v", err)
	}
	if got.Designation != domain.DesignationBranchManager {
		t.Fatalf("latest manager keeps the designation, got %s", got.Designation)
	}
}

func TestStaffService_RequiresCodeAndName(t *testing.T) {
	svc := NewStaffService(memory.NewStore())

	if err := svc.CreateStaff(context.Background(), &domain.Staff{Name: "No Code"}); err == nil {
		t.Fatal("missing employee code must be rejected")
	}
	if err := svc.CreateStaff(context.Background(), &domain.Staff{EmployeeCode: "1"}); err == nil {
		t.Fatal("missing name must be rejected")
	}
}
