// internal/runrate/achievements.go
package runrate

import (
	"strings"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
)

// achievement rows carry display dates; comparisons use ISO forms.
const (
	displayDateLayout = "02/01/2006"
	isoDateLayout     = "2006-01-02"
	monthLayout       = "2006-01"
)

// NameIndex maps normalized staff display names and employee-code tokens to
// employee codes. It is built once per aggregation call so that row
// association is exact matching against the roster rather than substring
// probing of free-form display strings.
type NameIndex struct {
	byName map[string]string
	codes  map[string]struct{}
}

// BuildNameIndex indexes the roster by normalized display name and by code.
func BuildNameIndex(allStaff []domain.Staff) NameIndex {
	ix := NameIndex{
		byName: make(map[string]string, len(allStaff)),
		codes:  make(map[string]struct{}, len(allStaff)),
	}
	for _, s := range allStaff {
		if s.EmployeeCode == "" {
			continue
		}
		ix.codes[s.EmployeeCode] = struct{}{}
		if name := normalizeName(s.Name); name != "" {
			ix.byName[name] = s.EmployeeCode
		}
		// Display names in uploads commonly embed the code: "RAJESH 3937".
		if combined := normalizeName(s.Name + " " + s.EmployeeCode); combined != "" {
			ix.byName[combined] = s.EmployeeCode
		}
	}
	return ix
}

// Resolve maps a display name from an achievement row to an employee code.
// It tries the normalized full string first, then falls back to a token that
// matches a known employee code.
func (ix NameIndex) Resolve(display string) (string, bool) {
	normalized := normalizeName(display)
	if normalized == "" {
		return "", false
	}
	if code, ok := ix.byName[normalized]; ok {
		return code, true
	}
	for _, token := range strings.Fields(normalized) {
		if _, ok := ix.codes[token]; ok {
			return token, true
		}
	}
	return "", false
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// AggregateAchievements sums month-to-date grand totals over the rows that
// fall inside the month, on or before asOf, and belong to the scope.
//
// Rows are associated with the scope through the name index (exact match or
// embedded employee-code token) or through their branch name. Rows whose
// DATE field does not parse as DD/MM/YYYY are excluded rather than failing
// the whole aggregation: partial data is the common case on this surface.
//
// The GRAND TOTAL fields are reconciled against line items on every write,
// so they are trusted here instead of being re-summed.
func AggregateAchievements(
	scope domain.Scope,
	ix NameIndex,
	rows []domain.AchievementRow,
	month string,
	asOf time.Time,
) domain.AchievementTotals {
	var totals domain.AchievementTotals

	asOfDay := asOf.Format(isoDateLayout)
	for _, row := range rows {
		date, err := time.Parse(displayDateLayout, strings.TrimSpace(row.Date))
		if err != nil {
			continue
		}
		if date.Format(monthLayout) != month {
			continue
		}
		if date.Format(isoDateLayout) > asOfDay {
			continue
		}
		if !rowInScope(scope, ix, row) {
			continue
		}
		totals.MTDAmount += row.Values[domain.MetricGrandTotalAmount]
		totals.MTDAccount += row.Values[domain.MetricGrandTotalAccount]
	}

	return totals
}

func rowInScope(scope domain.Scope, ix NameIndex, row domain.AchievementRow) bool {
	if scope.AllAccess {
		return true
	}
	if code, ok := ix.Resolve(row.StaffName); ok && scope.HasEmployee(code) {
		return true
	}
	return scope.HasBranch(strings.TrimSpace(row.BranchName))
}
