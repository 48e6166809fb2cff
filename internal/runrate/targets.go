// internal/runrate/targets.go
package runrate

import (
	"github.com/bankperf/salesdash/internal/catalog"
	"github.com/bankperf/salesdash/internal/domain"
)

// ResolveMonthlyTarget resolves the monthly target for a scope from the two
// parallel target stores: per-staff KRA records and per-branch records.
//
// Per staff member (and symmetrically per branch), an explicit grand-total
// record overrides the computed sum of line items: if a GRAND TOTAL AMT
// target exists it is used verbatim for the amount dimension, otherwise all
// Amount-kind targets are summed. The account dimension sums Account-kind
// targets (excluding GRAND TOTAL AC and NEW-SS/AGNT) and then adds any
// NEW-SS/AGNT target, which counts as an account despite its Other kind.
//
// Reconciliation between the two stores: an admin's target is the sum of all
// branch targets for the period (individual KRAs are components of those and
// are not re-added). For any other subject whose scope carries branch
// targets, the reported target is the per-dimension max of the staff-KRA sum
// and the branch sum — branch targets are an alternative higher-level view
// of the same book, not additive with the KRAs underneath them.
//
// A scope with no targets anywhere resolves to zero on both dimensions:
// "no targets configured" is a valid state, not an error.
func ResolveMonthlyTarget(
	subject domain.Staff,
	scope domain.Scope,
	kras []domain.Target,
	branchTargets []domain.BranchTarget,
	cat *catalog.Catalog,
	period string,
) domain.TargetTotals {
	byStaff := make(map[string][]domain.Target)
	for _, t := range kras {
		if t.PeriodType != domain.PeriodMonthly || t.Period != period {
			continue
		}
		if !scope.HasEmployee(t.EmployeeCode) {
			continue
		}
		byStaff[t.EmployeeCode] = append(byStaff[t.EmployeeCode], t)
	}

	byBranch := make(map[string][]domain.BranchTarget)
	for _, t := range branchTargets {
		if t.Period != period {
			continue
		}
		if !scope.HasBranch(t.BranchName) {
			continue
		}
		byBranch[t.BranchName] = append(byBranch[t.BranchName], t)
	}

	var staffTotals, branchTotals domain.TargetTotals
	for _, targets := range byStaff {
		lines := make([]targetLine, 0, len(targets))
		for _, t := range targets {
			lines = append(lines, targetLine{metric: t.Metric, value: t.Value})
		}
		contribution := resolveLines(lines, cat)
		staffTotals.Amount += contribution.Amount
		staffTotals.Account += contribution.Account
	}
	for _, targets := range byBranch {
		lines := make([]targetLine, 0, len(targets))
		for _, t := range targets {
			lines = append(lines, targetLine{metric: t.Metric, value: t.Value})
		}
		contribution := resolveLines(lines, cat)
		branchTotals.Amount += contribution.Amount
		branchTotals.Account += contribution.Account
	}

	if subject.Designation.IsAdmin() {
		return branchTotals
	}
	if branchTotals.Amount == 0 && branchTotals.Account == 0 {
		return staffTotals
	}
	return domain.TargetTotals{
		Amount:  maxFloat(staffTotals.Amount, branchTotals.Amount),
		Account: maxFloat(staffTotals.Account, branchTotals.Account),
	}
}

type targetLine struct {
	metric string
	value  float64
}

// resolveLines applies the grand-total override and kind-based inclusion
// rules to one staff member's (or one branch's) target records.
func resolveLines(lines []targetLine, cat *catalog.Catalog) domain.TargetTotals {
	var (
		totals          domain.TargetTotals
		amountOverride  *float64
		accountOverride *float64
		amountSum       float64
		accountSum      float64
	)
	for i := range lines {
		line := lines[i]
		switch catalog.Normalize(line.metric) {
		case domain.MetricGrandTotalAmount:
			amountOverride = &lines[i].value
			continue
		case domain.MetricGrandTotalAccount:
			accountOverride = &lines[i].value
			continue
		case domain.MetricNewSSAgent:
			accountSum += line.value
			continue
		}
		switch cat.KindOf(line.metric) {
		case domain.KindAmount:
			amountSum += line.value
		case domain.KindAccount:
			accountSum += line.value
		}
	}

	if amountOverride != nil {
		totals.Amount = *amountOverride
	} else {
		totals.Amount = amountSum
	}
	if accountOverride != nil {
		totals.Account = *accountOverride
	} else {
		totals.Account = accountSum
	}
	return totals
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
