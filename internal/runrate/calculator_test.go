package runrate

import (
	"math"
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
)

func TestCalculate_OnPace(t *testing.T) {
	t.Parallel()

	target := domain.TargetTotals{Amount: 500000, Account: 20}
	achieved := domain.AchievementTotals{MTDAmount: 250000, MTDAccount: 5}

	got := Calculate(target, achieved, 31, 10)
	if got.RemainingAmount != 250000 {
		t.Fatalf("remaining amount: want 250000, got %v", got.RemainingAmount)
	}
	if got.DailyRunRateAmount != 25000 {
		t.Fatalf("daily run rate amount: want 25000, got %v", got.DailyRunRateAmount)
	}
	if got.RemainingAccount != 15 {
		t.Fatalf("remaining account: want 15, got %v", got.RemainingAccount)
	}
	if got.DailyRunRateAccount != 1.5 {
		t.Fatalf("daily run rate account: want 1.5, got %v", got.DailyRunRateAccount)
	}
}

func TestCalculate_OverAchievementFloorsAtZero(t *testing.T) {
	t.Parallel()

	target := domain.TargetTotals{Amount: 1000000}
	achieved := domain.AchievementTotals{MTDAmount: 1080000}

	for _, daysRemaining := range []int{0, 1, 15} {
		got := Calculate(target, achieved, 31, daysRemaining)
		if got.RemainingAmount != 0 {
			t.Fatalf("daysRemaining=%d: remaining want 0, got %v", daysRemaining, got.RemainingAmount)
		}
		if got.DailyRunRateAmount != 0 {
			t.Fatalf("daysRemaining=%d: run rate want 0, got %v", daysRemaining, got.DailyRunRateAmount)
		}
	}
}

func TestCalculate_ZeroDaysRemainingGuardsDivision(t *testing.T) {
	t.Parallel()

	target := domain.TargetTotals{Amount: 500000, Account: 20}
	got := Calculate(target, domain.AchievementTotals{}, 31, 0)

	if got.DailyRunRateAmount != 0 || got.DailyRunRateAccount != 0 {
		t.Fatalf("zero days remaining: want zero run rates, got %v / %v",
			got.DailyRunRateAmount, got.DailyRunRateAccount)
	}
	if math.IsNaN(got.DailyRunRateAmount) || math.IsInf(got.DailyRunRateAmount, 0) {
		t.Fatalf("run rate must never be NaN/Inf, got %v", got.DailyRunRateAmount)
	}
}

func TestCalculate_FlagsNoTargetsConfigured(t *testing.T) {
	t.Parallel()

	got := Calculate(domain.TargetTotals{}, domain.AchievementTotals{MTDAmount: 5000}, 31, 10)
	if !got.NoTargetsConfigured {
		t.Fatal("want NoTargetsConfigured for a zero target")
	}

	got = Calculate(domain.TargetTotals{Account: 5}, domain.AchievementTotals{}, 31, 10)
	if got.NoTargetsConfigured {
		t.Fatal("account-only target still counts as configured")
	}
}

func TestMonthWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		month         string
		asOf          string
		wantDays      int
		wantRemaining int
	}{
		{"mid month", "2024-07", "2024-07-21", 31, 11},
		{"first day", "2024-07", "2024-07-01", 31, 31},
		{"last day counts itself", "2024-07", "2024-07-31", 31, 1},
		{"past month end", "2024-07", "2024-08-03", 31, 0},
		{"before month start", "2024-07", "2024-06-28", 31, 31},
		{"leap february", "2024-02", "2024-02-28", 29, 2},
		{"plain february", "2023-02", "2023-02-01", 28, 28},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			days, remaining := MonthWindow(tc.month, asOf(t, tc.asOf))
			if days != tc.wantDays || remaining != tc.wantRemaining {
				t.Fatalf("MonthWindow(%s, %s): want (%d,%d), got (%d,%d)",
					tc.month, tc.asOf, tc.wantDays, tc.wantRemaining, days, remaining)
			}
		})
	}
}

func TestMonthWindow_BadMonth(t *testing.T) {
	t.Parallel()

	days, remaining := MonthWindow("July 2024", asOf(t, "2024-07-21"))
	if days != 0 || remaining != 0 {
		t.Fatalf("bad month string: want (0,0), got (%d,%d)", days, remaining)
	}
}
