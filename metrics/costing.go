/*
costing.go - Indirect-cost resolution and production-share redistribution

PURPOSE:
  Attributes overhead (indirect) cost to specific production dates and lines,
  proportional to how much each line produced relative to its monthly total.
  This is the glue between the cost-center ledger and every per-unit cost
  figure on the dashboard.

HOW REDISTRIBUTION WORKS:
  1. A line's indirect cost for a month is resolved once per (line, month)
     and cached for the duration of one computation pass.
  2. Each report with positive output receives the slice of that monthly
     figure matching its share of the line's monthly output.
  3. Per-date chart contributions and scope totals are sums of those slices,
     so including every date of a month reproduces the monthly figure.

ZERO-OUTPUT REPORTS:
  Reports with quantityProduced <= 0 contribute no indirect cost and are
  excluded from the share denominator. Such reports are deliberately
  cost-free; do not "fix" this by spreading cost onto them.

CACHE SCOPE:
  A CostResolver lives for exactly one computation pass. Never hold one
  across passes: the underlying ledger may change between passes and a
  stale cache would silently misprice everything.

EXAMPLE:
  resolver := metrics.NewCostResolver(metrics.LedgerIndirectCost(centers, values, allocations))
  breakdown := metrics.ComputeCost(reports, rate, resolver)
  fmt.Println(breakdown.CostPerUnit)

SEE ALSO:
  - types.go: CostCenter, CostCenterValue, CostAllocation records
  - aggregate.go: Builders that attach cost figures to line projections
*/
package metrics

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INDIRECT COST CONTRACT
// =============================================================================

// IndirectCostFunc resolves a line's total indirect cost for a month.
type IndirectCostFunc func(line LineID, month MonthKey) decimal.Decimal

// LedgerIndirectCost builds the standard resolver over the cost-center
// ledger: for each allocation targeting the line and month, it takes the
// allocated percentage of the center's monthly value, counting only centers
// that are active and of indirect type.
func LedgerIndirectCost(centers []CostCenter, values []CostCenterValue, allocations []CostAllocation) IndirectCostFunc {
	indirect := make(map[CenterID]bool, len(centers))
	for _, c := range centers {
		if c.Active && c.Type == CostIndirect {
			indirect[c.ID] = true
		}
	}

	type valueKey struct {
		Center CenterID
		Month  MonthKey
	}
	monthly := make(map[valueKey]decimal.Decimal, len(values))
	for _, v := range values {
		key := valueKey{v.CenterID, v.Month}
		monthly[key] = monthly[key].Add(v.Amount)
	}

	return func(line LineID, month MonthKey) decimal.Decimal {
		total := decimal.Zero
		for _, a := range allocations {
			if a.LineID != line || a.Month != month || !indirect[a.CenterID] {
				continue
			}
			value, ok := monthly[valueKey{a.CenterID, a.Month}]
			if !ok || a.Percent <= 0 {
				continue
			}
			share := value.Mul(decimal.NewFromFloat(a.Percent)).Div(decimal.NewFromInt(100))
			total = total.Add(share)
		}
		return total
	}
}

// =============================================================================
// COST RESOLVER - Per-pass memoization of monthly figures
// =============================================================================

type lineMonth struct {
	Line  LineID
	Month MonthKey
}

// CostResolver caches monthly indirect figures for one computation pass.
// Resolving is expensive relative to its reuse across many report rows in
// the same month, so the first lookup per (line, month) does the work and
// the rest hit the cache.
type CostResolver struct {
	resolve IndirectCostFunc
	cache   map[lineMonth]decimal.Decimal
}

func NewCostResolver(resolve IndirectCostFunc) *CostResolver {
	return &CostResolver{
		resolve: resolve,
		cache:   make(map[lineMonth]decimal.Decimal),
	}
}

// MonthlyIndirect returns the cached figure for (line, month), resolving on
// first use. A nil resolver function yields zero cost.
func (cr *CostResolver) MonthlyIndirect(line LineID, month MonthKey) decimal.Decimal {
	key := lineMonth{line, month}
	if cached, ok := cr.cache[key]; ok {
		return cached
	}
	value := decimal.Zero
	if cr.resolve != nil {
		value = cr.resolve(line, month)
	}
	cr.cache[key] = value
	return value
}

// =============================================================================
// REDISTRIBUTION - Monthly figure sliced by production share
// =============================================================================

// monthShareTotals sums produced units per (line, month), counting only
// reports with positive output. These sums are the share denominators.
func monthShareTotals(reports []ProductionReport) map[lineMonth]int {
	totals := make(map[lineMonth]int)
	for _, r := range reports {
		if r.QuantityProduced <= 0 {
			continue
		}
		totals[lineMonth{r.LineID, r.Date.Month()}] += r.QuantityProduced
	}
	return totals
}

// reportIndirect returns one report's slice of its line's monthly indirect
// cost. Zero-output reports and empty denominators yield zero.
func reportIndirect(r ProductionReport, totals map[lineMonth]int, resolver *CostResolver) decimal.Decimal {
	if r.QuantityProduced <= 0 {
		return decimal.Zero
	}
	key := lineMonth{r.LineID, r.Date.Month()}
	total := totals[key]
	if total <= 0 {
		return decimal.Zero
	}
	monthly := resolver.MonthlyIndirect(r.LineID, key.Month)
	if monthly.IsZero() {
		return decimal.Zero
	}
	return monthly.Mul(decimal.NewFromInt(int64(r.QuantityProduced))).Div(decimal.NewFromInt(int64(total)))
}

// IndirectByDate accumulates each date's indirect-cost contribution across
// the report set. Summing a line's dates over a full month reproduces the
// monthly figure within rounding.
func IndirectByDate(reports []ProductionReport, resolver *CostResolver) map[DateKey]decimal.Decimal {
	totals := monthShareTotals(reports)
	byDate := make(map[DateKey]decimal.Decimal)
	for _, r := range reports {
		share := reportIndirect(r, totals, resolver)
		if share.IsZero() {
			continue
		}
		byDate[r.Date] = byDate[r.Date].Add(share)
	}
	return byDate
}

// =============================================================================
// COST BREAKDOWN - Labor + indirect rolled into per-unit cost
// =============================================================================

// LaborCost sums workers*hours*hourlyRate across the report set.
func LaborCost(reports []ProductionReport, hourlyRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	if hourlyRate.IsZero() {
		return total
	}
	for _, r := range reports {
		hours := r.WorkerHours()
		if hours <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(hours).Mul(hourlyRate))
	}
	return total
}

type CostBreakdown struct {
	LaborCost     decimal.Decimal
	IndirectCost  decimal.Decimal
	TotalProduced int
	CostPerUnit   decimal.Decimal
}

// TotalCost returns labor plus indirect.
func (cb CostBreakdown) TotalCost() decimal.Decimal {
	return cb.LaborCost.Add(cb.IndirectCost)
}

// ComputeCost folds a report scope into its cost breakdown. Per-unit cost is
// (labor + indirect) / produced, zero when nothing was produced.
func ComputeCost(reports []ProductionReport, hourlyRate decimal.Decimal, resolver *CostResolver) CostBreakdown {
	totals := monthShareTotals(reports)

	breakdown := CostBreakdown{
		LaborCost:    LaborCost(reports, hourlyRate),
		IndirectCost: decimal.Zero,
		CostPerUnit:  decimal.Zero,
	}
	for _, r := range reports {
		breakdown.IndirectCost = breakdown.IndirectCost.Add(reportIndirect(r, totals, resolver))
		if r.QuantityProduced > 0 {
			breakdown.TotalProduced += r.QuantityProduced
		}
	}
	if breakdown.TotalProduced > 0 {
		breakdown.CostPerUnit = breakdown.TotalCost().Div(decimal.NewFromInt(int64(breakdown.TotalProduced)))
	}
	return breakdown
}
