package runrate

import (
	"testing"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
)

func testRoster() []domain.Staff {
	return []domain.Staff{
		{EmployeeCode: "3937", Name: "Rajesh Kumar", Branch: "NER"},
		{EmployeeCode: "4122", Name: "Priya Nair", Branch: "NER"},
		{EmployeeCode: "5210", Name: "Anil Joshi", Branch: "ALD"},
	}
}

func asOf(t *testing.T, iso string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", iso)
	if err != nil {
		t.Fatalf("bad asOf fixture %q: %v", iso, err)
	}
	return ts
}

func TestAggregateAchievements_BranchMTD(t *testing.T) {
	t.Parallel()

	scope := scopeOf([]string{"3937", "4122"}, []string{"NER"})
	ix := BuildNameIndex(testRoster())
	rows := []domain.AchievementRow{
		{Date: "20/07/2024", StaffName: "RAJESH KUMAR", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 670000, domain.MetricGrandTotalAccount: 12}},
		{Date: "21/07/2024", StaffName: "PRIYA NAIR", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 410000, domain.MetricGrandTotalAccount: 7}},
		// after the as-of date
		{Date: "22/07/2024", StaffName: "RAJESH KUMAR", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 999999}},
		// different branch, different staff
		{Date: "21/07/2024", StaffName: "ANIL JOSHI", BranchName: "ALD",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 500000}},
	}

	got := AggregateAchievements(scope, ix, rows, "2024-07", asOf(t, "2024-07-21"))
	if got.MTDAmount != 1080000 {
		t.Fatalf("mtd amount: want 1080000, got %v", got.MTDAmount)
	}
	if got.MTDAccount != 19 {
		t.Fatalf("mtd account: want 19, got %v", got.MTDAccount)
	}
}

func TestAggregateAchievements_EmptyScope(t *testing.T) {
	t.Parallel()

	rows := []domain.AchievementRow{
		{Date: "20/07/2024", StaffName: "RAJESH KUMAR", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 670000}},
	}

	got := AggregateAchievements(domain.NewScope(), BuildNameIndex(testRoster()), rows, "2024-07", asOf(t, "2024-07-31"))
	if got.MTDAmount != 0 || got.MTDAccount != 0 {
		t.Fatalf("empty scope: want zero totals, got %+v", got)
	}
}

func TestAggregateAchievements_MalformedDatesExcluded(t *testing.T) {
	t.Parallel()

	scope := scopeOf([]string{"3937"}, nil)
	rows := []domain.AchievementRow{
		{Date: "2024-07-20", StaffName: "RAJESH KUMAR",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 100000}},
		{Date: "", StaffName: "RAJESH KUMAR",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 100000}},
		{Date: "20/07/2024", StaffName: "RAJESH KUMAR",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 250000}},
	}

	got := AggregateAchievements(scope, BuildNameIndex(testRoster()), rows, "2024-07", asOf(t, "2024-07-31"))
	if got.MTDAmount != 250000 {
		t.Fatalf("only the DD/MM/YYYY row counts: want 250000, got %v", got.MTDAmount)
	}
}

func TestAggregateAchievements_CodeEmbeddedInDisplayName(t *testing.T) {
	t.Parallel()

	scope := scopeOf([]string{"3937"}, nil)
	rows := []domain.AchievementRow{
		{Date: "05/07/2024", StaffName: "RAJESH 3937", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 80000}},
		// unknown display name and out-of-scope branch
		{Date: "05/07/2024", StaffName: "SOMEONE ELSE", BranchName: "ALD",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 70000}},
	}

	got := AggregateAchievements(scope, BuildNameIndex(testRoster()), rows, "2024-07", asOf(t, "2024-07-31"))
	if got.MTDAmount != 80000 {
		t.Fatalf("mtd amount: want 80000, got %v", got.MTDAmount)
	}
}

func TestAggregateAchievements_AllAccessScope(t *testing.T) {
	t.Parallel()

	scope := domain.NewScope()
	scope.AllAccess = true
	rows := []domain.AchievementRow{
		{Date: "01/07/2024", StaffName: "RAJESH KUMAR", BranchName: "NER",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 100000}},
		{Date: "02/07/2024", StaffName: "ANIL JOSHI", BranchName: "ALD",
			Values: map[string]float64{domain.MetricGrandTotalAmount: 200000}},
	}

	got := AggregateAchievements(scope, BuildNameIndex(testRoster()), rows, "2024-07", asOf(t, "2024-07-31"))
	if got.MTDAmount != 300000 {
		t.Fatalf("all-access: want 300000, got %v", got.MTDAmount)
	}
}

func TestNameIndex_Resolve(t *testing.T) {
	t.Parallel()

	ix := BuildNameIndex(testRoster())

	cases := []struct {
		display  string
		wantCode string
		wantOK   bool
	}{
		{"RAJESH KUMAR", "3937", true},
		{"rajesh   kumar", "3937", true},
		{"Rajesh Kumar 3937", "3937", true},
		{"BM 4122 NER", "4122", true},
		{"UNKNOWN PERSON", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		code, ok := ix.Resolve(tc.display)
		if ok != tc.wantOK || code != tc.wantCode {
			t.Fatalf("Resolve(%q): want (%q,%v), got (%q,%v)", tc.display, tc.wantCode, tc.wantOK, code, ok)
		}
	}
}
