// internal/runrate/calculator.go
package runrate

import (
	"time"

	"github.com/bankperf/salesdash/internal/domain"
)

// Calculate derives remaining targets and daily run rates from a resolved
// target and the month-to-date achievement. It is pure arithmetic over
// validated non-negative inputs: remaining is floored at zero so that
// over-achievement never reports a negative gap, and the division is guarded
// so that NaN or Inf never reaches the caller.
func Calculate(target domain.TargetTotals, achieved domain.AchievementTotals, daysInMonth, daysRemaining int) domain.RunRateReport {
	report := domain.RunRateReport{
		DaysInMonth:   daysInMonth,
		DaysRemaining: daysRemaining,

		MonthlyTargetAmount:  target.Amount,
		MTDAchievedAmount:    achieved.MTDAmount,
		MonthlyTargetAccount: target.Account,
		MTDAchievedAccount:   achieved.MTDAccount,

		NoTargetsConfigured: target.Amount == 0 && target.Account == 0,
	}

	report.RemainingAmount = floorZero(target.Amount - achieved.MTDAmount)
	report.RemainingAccount = floorZero(target.Account - achieved.MTDAccount)

	if daysRemaining > 0 {
		report.DailyRunRateAmount = report.RemainingAmount / float64(daysRemaining)
		report.DailyRunRateAccount = report.RemainingAccount / float64(daysRemaining)
	}

	return report
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// MonthWindow returns the number of days in the month (YYYY-MM) and how many
// remain as of the reference date, counting the reference day itself: a full
// day's contribution is still expected today. A reference date past
// month-end yields zero remaining; one before the month yields the whole
// month.
func MonthWindow(month string, asOf time.Time) (daysInMonth, daysRemaining int) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return 0, 0
	}
	end := start.AddDate(0, 1, 0)
	daysInMonth = int(end.Sub(start).Hours() / 24)

	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case day.Before(start):
		daysRemaining = daysInMonth
	case !day.Before(end):
		daysRemaining = 0
	default:
		daysRemaining = daysInMonth - day.Day() + 1
	}
	return daysInMonth, daysRemaining
}
