// internal/service/target_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/bankperf/salesdash/internal/repository/memory"
)

func TestCreateTargetValidation(t *testing.T) {
	t.Parallel()

	svc := NewTargetService(memory.NewStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		target  domain.Target
		wantErr bool
	}{
		{
			name: "valid monthly",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "DDS AMT", Value: 100000,
				PeriodType: domain.PeriodMonthly, Period: "2025-08",
			},
		},
		{
			name: "valid ytd",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "FD AMT", Value: 500000,
				PeriodType: domain.PeriodYTD, Period: "2025",
			},
		},
		{
			name: "missing employee code",
			target: domain.Target{
				Metric: "DDS AMT", Value: 100000,
				PeriodType: domain.PeriodMonthly, Period: "2025-08",
			},
			wantErr: true,
		},
		{
			name: "negative value",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "RD AMT", Value: -1,
				PeriodType: domain.PeriodMonthly, Period: "2025-08",
			},
			wantErr: true,
		},
		{
			name: "monthly with year-only period",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "RD AMT", Value: 100,
				PeriodType: domain.PeriodMonthly, Period: "2025",
			},
			wantErr: true,
		},
		{
			name: "ytd with month period",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "RD AMT", Value: 100,
				PeriodType: domain.PeriodYTD, Period: "2025-08",
			},
			wantErr: true,
		},
		{
			name: "unknown period type",
			target: domain.Target{
				EmployeeCode: "3937", Metric: "RD AMT", Value: 100,
				PeriodType: "weekly", Period: "2025-08",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			err := svc.CreateTarget(ctx, &target)
			if tt.wantErr && err == nil {
				t.Fatalf("CreateTarget(%+v) succeeded, want error", tt.target)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CreateTarget(%+v) failed: %v", tt.target, err)
			}
		})
	}
}

func TestCreateTargetRejectsDuplicates(t *testing.T) {
	t.Parallel()

	svc := NewTargetService(memory.NewStore(), nil)
	ctx := context.Background()

	first := domain.Target{
		EmployeeCode: "3937", Metric: "DDS AMT", Value: 100000,
		PeriodType: domain.PeriodMonthly, Period: "2025-08",
	}
	if err := svc.CreateTarget(ctx, &first); err != nil {
		t.Fatalf("first CreateTarget failed: %v", err)
	}

	dup := domain.Target{
		EmployeeCode: "3937", Metric: "dds amt", Value: 200000,
		PeriodType: domain.PeriodMonthly, Period: "2025-08",
	}
	err := svc.CreateTarget(ctx, &dup)
	if !errors.Is(err, repository.ErrDuplicateTarget) {
		t.Fatalf("duplicate CreateTarget error = %v, want ErrDuplicateTarget", err)
	}
}

func TestUpsertBranchTargetValidation(t *testing.T) {
	t.Parallel()

	svc := NewTargetService(memory.NewStore(), nil)
	ctx := context.Background()

	good := domain.BranchTarget{
		BranchName: "CENTRAL", Metric: "GRAND TOTAL AMT", Value: 900000, Period: "2025-08",
	}
	if err := svc.UpsertBranchTarget(ctx, &good); err != nil {
		t.Fatalf("UpsertBranchTarget failed: %v", err)
	}

	// Replacing the same key is an update, not a duplicate.
	good.Value = 950000
	if err := svc.UpsertBranchTarget(ctx, &good); err != nil {
		t.Fatalf("UpsertBranchTarget update failed: %v", err)
	}

	targets, err := svc.ListBranchTargets(ctx, "2025-08")
	if err != nil {
		t.Fatalf("ListBranchTargets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d branch targets, want 1", len(targets))
	}
	if targets[0].Value != 950000 {
		t.Fatalf("branch target value = %v, want 950000", targets[0].Value)
	}

	bad := domain.BranchTarget{BranchName: "CENTRAL", Metric: "GRAND TOTAL AMT", Value: 1, Period: "Aug-2025"}
	if err := svc.UpsertBranchTarget(ctx, &bad); err == nil {
		t.Fatal("UpsertBranchTarget accepted a non YYYY-MM period")
	}
}
