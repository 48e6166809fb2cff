package service

import (
	"context"
	"testing"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository/memory"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	staff := []domain.Staff{
		{EmployeeCode: "2001", Name: "Suresh Menon", Designation: domain.DesignationBranchManager, Branch: "NER", Zone: "EAST"},
		{EmployeeCode: "3937", Name: "Rajesh Kumar", Designation: domain.DesignationSalesOfficer, Branch: "NER", Zone: "EAST", ReportsTo: "2001"},
		{EmployeeCode: "4122", Name: "Priya Nair", Designation: domain.DesignationSalesExecutive, Branch: "NER", Zone: "EAST", ReportsTo: "2001"},
	}
	for i := range staff {
		if err := store.CreateStaff(ctx, &staff[i]); err != nil {
			t.Fatalf("seed staff: %v", err)
		}
	}
	if err := store.UpsertBranch(ctx, &domain.Branch{Name: "NER", Zone: "EAST"}); err != nil {
		t.Fatalf("seed branch: %v", err)
	}

	metrics := []domain.ProductMetric{
		{Name: "DDS AMT", Kind: domain.KindAmount, ContributesToOverall: true},
		{Name: "DDS AC", Kind: domain.KindAccount, ContributesToOverall: true},
		{Name: domain.MetricNewSSAgent, Kind: domain.KindOther, ContributesToOverall: true},
	}
	for i := range metrics {
		if err := store.UpsertMetric(ctx, &metrics[i]); err != nil {
			t.Fatalf("seed metric: %v", err)
		}
	}
	return store
}

func TestRunRateService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	targets := []domain.Target{
		{EmployeeCode: "3937", Metric: "DDS AMT", Value: 500000, PeriodType: domain.PeriodMonthly, Period: "2024-07"},
		{EmployeeCode: "4122", Metric: "DDS AMT", Value: 500000, PeriodType: domain.PeriodMonthly, Period: "2024-07"},
	}
	for i := range targets {
		if err := store.CreateTarget(ctx, &targets[i]); err != nil {
			t.Fatalf("seed target: %v", err)
		}
	}

	achievements := NewAchievementService(store, store, nil)
	rows := []domain.AchievementRow{
		{Date: "20/07/2024", StaffName: "RAJESH KUMAR", BranchName: "NER",
			Values: map[string]float64{"DDS AMT": 670000, "DDS AC": 10}},
		{Date: "21/07/2024", StaffName: "PRIYA NAIR", BranchName: "NER",
			Values: map[string]float64{"DDS AMT": 410000, "DDS AC": 4}},
	}
	for i := range rows {
		if err := achievements.Submit(ctx, &rows[i]); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	svc := NewRunRateService(store, store, store, store, nil)
	asOf := time.Date(2024, 7, 21, 10, 0, 0, 0, time.UTC)
	report, err := svc.GetReport(ctx, "2001", "2024-07", asOf)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}

	// The branch manager's scope covers both officers: 1000000 target,
	// 1080000 achieved, over-achievement floors remaining at zero.
	if report.MonthlyTargetAmount != 1000000 {
		t.Fatalf("target amount: want 1000000, got %v", report.MonthlyTargetAmount)
	}
	if report.MTDAchievedAmount != 1080000 {
		t.Fatalf("mtd amount: want 1080000, got %v", report.MTDAchievedAmount)
	}
	if report.RemainingAmount != 0 || report.DailyRunRateAmount != 0 {
		t.Fatalf("over-achievement must floor at zero, got remaining=%v rate=%v",
			report.RemainingAmount, report.DailyRunRateAmount)
	}
	if report.DaysInMonth != 31 || report.DaysRemaining != 11 {
		t.Fatalf("window: want 31/11, got %d/%d", report.DaysInMonth, report.DaysRemaining)
	}
	if report.MTDAchievedAccount != 14 {
		t.Fatalf("mtd account: want 14, got %v", report.MTDAchievedAccount)
	}
}

func TestRunRateService_NoTargetsConfigured(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	svc := NewRunRateService(store, store, store, store, nil)
	report, err := svc.GetReport(ctx, "3937", "2024-07", time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if !report.NoTargetsConfigured {
		t.Fatal("want NoTargetsConfigured with an empty target store")
	}
	if report.MonthlyTargetAmount != 0 || report.MonthlyTargetAccount != 0 {
		t.Fatalf("want zero targets, got %v/%v", report.MonthlyTargetAmount, report.MonthlyTargetAccount)
	}
}

func TestRunRateService_GetScope(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	svc := NewRunRateService(store, store, store, store, nil)
	scope, err := svc.GetScope(ctx, "2001")
	if err != nil {
		t.Fatalf("GetScope: %v", err)
	}
	for _, code := range []string{"2001", "3937", "4122"} {
		if !scope.HasEmployee(code) {
			t.Fatalf("scope missing %s", code)
		}
	}
	if !scope.HasBranch("NER") {
		t.Fatal("scope missing NER")
	}
}

func TestRunRateService_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	svc := NewRunRateService(store, store, store, store, nil)
	if _, err := svc.GetReport(ctx, "0000", "2024-07", time.Now()); err == nil {
		t.Fatal("want an error for an unknown employee code")
	}
}
