package catalog

import (
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
)

func metrics() []domain.ProductMetric {
	return []domain.ProductMetric{
		{Name: "DDS AMT", Kind: domain.KindAmount, ContributesToOverall: true},
		{Name: "DDS AC", Kind: domain.KindAccount, ContributesToOverall: true},
		{Name: "FD AMT", Kind: domain.KindAmount, ContributesToOverall: true},
		{Name: "FD AC", Kind: domain.KindAccount, ContributesToOverall: true},
		{Name: domain.MetricNewSSAgent, Kind: domain.KindOther, ContributesToOverall: true},
		{Name: "REFERRALS", Kind: domain.KindOther, ContributesToOverall: false},
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	c := New(metrics())
	cases := []struct {
		name string
		want domain.MetricKind
	}{
		{"DDS AMT", domain.KindAmount},
		{"dds amt", domain.KindAmount},
		{"  FD AC ", domain.KindAccount},
		{domain.MetricNewSSAgent, domain.KindOther},
		{domain.MetricGrandTotalAmount, domain.KindAmount},
		{domain.MetricGrandTotalAccount, domain.KindAccount},
		{"NOT IN CATALOG", domain.KindOther},
	}
	for _, tc := range cases {
		if got := c.KindOf(tc.name); got != tc.want {
			t.Fatalf("KindOf(%q): want %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestCountsTowardAccounts(t *testing.T) {
	t.Parallel()

	c := New(metrics())
	if !c.CountsTowardAccounts("DDS AC") {
		t.Fatal("DDS AC is an account metric")
	}
	if !c.CountsTowardAccounts(domain.MetricNewSSAgent) {
		t.Fatal("NEW-SS/AGNT counts toward accounts despite its Other kind")
	}
	if c.CountsTowardAccounts(domain.MetricGrandTotalAccount) {
		t.Fatal("the grand total field must not feed its own rollup")
	}
	if c.CountsTowardAccounts("DDS AMT") {
		t.Fatal("amount metrics do not feed the account rollup")
	}
}

func TestRecomputeTotals(t *testing.T) {
	t.Parallel()

	c := New(metrics())
	values := map[string]float64{
		"DDS AMT":               500000,
		"DDS AC":                10,
		"FD AMT":                170000,
		"FD AC":                 2,
		domain.MetricNewSSAgent: 1,
		"REFERRALS":             4, // non-contributing, excluded from rollups
		// client-supplied totals are discarded
		domain.MetricGrandTotalAmount:  1,
		domain.MetricGrandTotalAccount: 1,
	}
	c.RecomputeTotals(values)

	if values[domain.MetricGrandTotalAmount] != 670000 {
		t.Fatalf("grand total amt: want 670000, got %v", values[domain.MetricGrandTotalAmount])
	}
	if values[domain.MetricGrandTotalAccount] != 13 {
		t.Fatalf("grand total ac: want 13, got %v", values[domain.MetricGrandTotalAccount])
	}
	if values[domain.MetricTotalAmounts] != 670000 || values[domain.MetricTotalAccounts] != 13 {
		t.Fatalf("totals: want 670000/13, got %v/%v",
			values[domain.MetricTotalAmounts], values[domain.MetricTotalAccounts])
	}
}

func TestLookupAndOrder(t *testing.T) {
	t.Parallel()

	c := New(metrics())
	if _, ok := c.Lookup("fd amt"); !ok {
		t.Fatal("lookup is case-insensitive")
	}
	if _, ok := c.Lookup("MISSING"); ok {
		t.Fatal("unknown metric must not resolve")
	}
	all := c.Metrics()
	if len(all) != 6 {
		t.Fatalf("want 6 metrics, got %d", len(all))
	}
	if all[0].Name != "DDS AMT" {
		t.Fatalf("registration order not preserved, got %s first", all[0].Name)
	}
}
