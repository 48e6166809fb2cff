// internal/catalog/catalog.go
package catalog

import (
	"strings"

	"github.com/bankperf/salesdash/internal/domain"
)

// Catalog is an immutable snapshot of the product-metric registry taken at
// the start of an aggregation pass. Kind lookups are dynamic: metric names
// are configuration, not code. The only hard-coded names are the grand-total
// overrides and NEW-SS/AGNT, whose aggregation semantics are fixed.
type Catalog struct {
	byName map[string]domain.ProductMetric
	order  []string
}

// New builds a catalog from metric records. Later duplicates of the same
// name replace earlier ones.
func New(metrics []domain.ProductMetric) *Catalog {
	c := &Catalog{byName: make(map[string]domain.ProductMetric, len(metrics))}
	for _, m := range metrics {
		key := normalize(m.Name)
		if _, seen := c.byName[key]; !seen {
			c.order = append(c.order, key)
		}
		c.byName[key] = m
	}
	return c
}

// Normalize maps a metric name to its canonical catalog form. Targets and
// achievement values may arrive with any casing; comparisons against catalog
// names and the reserved total metrics go through this.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func normalize(name string) string {
	return Normalize(name)
}

// Lookup returns the metric record for a name.
func (c *Catalog) Lookup(name string) (domain.ProductMetric, bool) {
	m, ok := c.byName[normalize(name)]
	return m, ok
}

// KindOf returns the numeric kind of a metric. Unknown names are treated as
// Other so that a stale record never leaks into an amount or account rollup.
func (c *Catalog) KindOf(name string) domain.MetricKind {
	switch normalize(name) {
	case domain.MetricGrandTotalAmount, domain.MetricTotalAmounts:
		return domain.KindAmount
	case domain.MetricGrandTotalAccount, domain.MetricTotalAccounts:
		return domain.KindAccount
	}
	if m, ok := c.byName[normalize(name)]; ok {
		return m.Kind
	}
	return domain.KindOther
}

// Metrics returns the catalog entries in registration order.
func (c *Catalog) Metrics() []domain.ProductMetric {
	out := make([]domain.ProductMetric, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.byName[key])
	}
	return out
}

// Contributes reports whether a metric participates in grand-total rollups.
func (c *Catalog) Contributes(name string) bool {
	m, ok := c.byName[normalize(name)]
	if !ok {
		return false
	}
	return m.ContributesToOverall
}

// IsDerivedTotal reports whether a field is one of the server-computed total
// columns rather than a line-item metric.
func IsDerivedTotal(name string) bool {
	switch normalize(name) {
	case domain.MetricGrandTotalAmount, domain.MetricGrandTotalAccount,
		domain.MetricTotalAmounts, domain.MetricTotalAccounts:
		return true
	}
	return false
}

// CountsTowardAccounts reports whether a metric feeds the account rollup.
// NEW-SS/AGNT is the one Other-kind metric that does: it counts as an
// account but has no amount pairing.
func (c *Catalog) CountsTowardAccounts(name string) bool {
	key := normalize(name)
	if key == domain.MetricNewSSAgent {
		return true
	}
	if IsDerivedTotal(key) {
		return false
	}
	return c.KindOf(key) == domain.KindAccount && c.Contributes(key)
}

// CountsTowardAmounts reports whether a metric feeds the amount rollup.
func (c *Catalog) CountsTowardAmounts(name string) bool {
	key := normalize(name)
	if IsDerivedTotal(key) {
		return false
	}
	return c.KindOf(key) == domain.KindAmount && c.Contributes(key)
}

// RecomputeTotals rewrites the derived total fields of an achievement value
// map from its line items. Client-supplied totals are discarded: the stored
// grand totals must always equal the sum of constituent metrics, so every
// write path calls this before persisting.
func (c *Catalog) RecomputeTotals(values map[string]float64) {
	var amount, account float64
	for name, v := range values {
		if c.CountsTowardAmounts(name) {
			amount += v
		}
		if c.CountsTowardAccounts(name) {
			account += v
		}
	}
	values[domain.MetricTotalAmounts] = amount
	values[domain.MetricTotalAccounts] = account
	values[domain.MetricGrandTotalAmount] = amount
	values[domain.MetricGrandTotalAccount] = account
}
