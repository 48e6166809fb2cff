package runrate

import (
	"github.com/bankperf/salesdash/internal/catalog"
	"github.com/bankperf/salesdash/internal/domain"
)

// testCatalog mirrors the production metric registry shape: paired
// amount/account metrics per product plus the unpaired NEW-SS/AGNT counter.
func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.ProductMetric{
		{Name: "DDS AMT", Category: "DDS", Kind: domain.KindAmount, Unit: "INR", ContributesToOverall: true},
		{Name: "DDS AC", Category: "DDS", Kind: domain.KindAccount, Unit: "COUNT", ContributesToOverall: true},
		{Name: "FD AMT", Category: "FD", Kind: domain.KindAmount, Unit: "INR", ContributesToOverall: true},
		{Name: "FD AC", Category: "FD", Kind: domain.KindAccount, Unit: "COUNT", ContributesToOverall: true},
		{Name: "RD AMT", Category: "RD", Kind: domain.KindAmount, Unit: "INR", ContributesToOverall: true},
		{Name: "RD AC", Category: "RD", Kind: domain.KindAccount, Unit: "COUNT", ContributesToOverall: true},
		{Name: domain.MetricNewSSAgent, Category: "ONBOARDING", Kind: domain.KindOther, Unit: "COUNT", ContributesToOverall: true},
	})
}

func scopeOf(codes []string, branches []string) domain.Scope {
	scope := domain.NewScope()
	for _, c := range codes {
		scope.AddEmployee(c)
	}
	for _, b := range branches {
		scope.AddBranch(b)
	}
	return scope
}
