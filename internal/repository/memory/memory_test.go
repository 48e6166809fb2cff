package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
)

func TestCreateTarget_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := domain.Target{EmployeeCode: "3937", Metric: "DDS AMT", Value: 500000,
		PeriodType: domain.PeriodMonthly, Period: "2024-07"}
	if err := store.CreateTarget(ctx, &first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := domain.Target{EmployeeCode: "3937", Metric: "dds amt", Value: 600000,
		PeriodType: domain.PeriodMonthly, Period: "2024-07"}
	if err := store.CreateTarget(ctx, &dup); !errors.Is(err, repository.ErrDuplicateTarget) {
		t.Fatalf("want ErrDuplicateTarget, got %v", err)
	}

	// Same key in another period type is a different target.
	mtd := domain.Target{EmployeeCode: "3937", Metric: "DDS AMT", Value: 450000,
		PeriodType: domain.PeriodMTD, Period: "2024-07"}
	if err := store.CreateTarget(ctx, &mtd); err != nil {
		t.Fatalf("mtd create: %v", err)
	}
}

func TestListRows_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	row := domain.AchievementRow{Date: "20/07/2024", StaffName: "RAJESH KUMAR",
		Values: map[string]float64{domain.MetricGrandTotalAmount: 100}}
	if err := store.UpsertRow(ctx, &row); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := store.ListRows(ctx, "2024-07")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Mutating the returned copy must not leak into the store.
	rows[0].Values[domain.MetricGrandTotalAmount] = 999

	again, err := store.ListRows(ctx, "2024-07")
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if again[0].Values[domain.MetricGrandTotalAmount] != 100 {
		t.Fatalf("store mutated through a snapshot copy: %v", again[0].Values)
	}
}

func TestDeleteStaff_CascadesReportsTo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	staff := []domain.Staff{
		{EmployeeCode: "2001", Name: "Suresh Menon"},
		{EmployeeCode: "3937", Name: "Rajesh Kumar", ReportsTo: "2001"},
	}
	for i := range staff {
		if err := store.CreateStaff(ctx, &staff[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := store.DeleteStaff(ctx, "2001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.GetStaffByCode(ctx, "3937")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReportsTo != "" {
		t.Fatalf("want cleared reportsTo, got %q", got.ReportsTo)
	}
}
