// internal/domain/runrate.go
package domain

// TargetTotals is a resolved monthly target split by dimension.
type TargetTotals struct {
	Amount  float64 `json:"amount"`
	Account float64 `json:"account"`
}

// AchievementTotals is a month-to-date achievement split by dimension.
type AchievementTotals struct {
	MTDAmount  float64 `json:"mtd_amount"`
	MTDAccount float64 `json:"mtd_account"`
}

// RunRateReport is the flat result consumed by the dashboard: target,
// month-to-date achievement, remaining and daily pace per dimension.
type RunRateReport struct {
	EmployeeCode string `json:"employee_code"`
	Month        string `json:"month"`
	AsOfDate     string `json:"as_of_date"`

	DaysInMonth   int `json:"days_in_month"`
	DaysRemaining int `json:"days_remaining"`

	MonthlyTargetAmount float64 `json:"monthly_target_amount"`
	MTDAchievedAmount   float64 `json:"mtd_achieved_amount"`
	RemainingAmount     float64 `json:"remaining_amount"`
	DailyRunRateAmount  float64 `json:"daily_run_rate_amount"`

	MonthlyTargetAccount float64 `json:"monthly_target_account"`
	MTDAchievedAccount   float64 `json:"mtd_achieved_account"`
	RemainingAccount     float64 `json:"remaining_account"`
	DailyRunRateAccount  float64 `json:"daily_run_rate_account"`

	NoTargetsConfigured bool `json:"no_targets_configured"`
}
