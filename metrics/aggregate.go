/*
aggregate.go - Group-by builders folding reports into UI-ready projections

PURPOSE:
  Folds one report set into the per-product, per-line, per-day and
  per-supervisor rows the dashboard tables and charts render. Each builder
  walks the same slice with its own key → accumulator map, composes the
  ratio functions, and returns rows sorted by key so output order is
  deterministic across passes.

STANDARD COST BASELINE:
  A (line, product) pair with a configured standard assembly time prices at
  standardUnitCost = (standardMinutes/60) * hourlyRate. The quantity-weighted
  mean across matching reports is the baseline that actual cost is compared
  against; pairs without a config simply drop out of the baseline.

SEE ALSO:
  - ratios.go: The closed-form functions composed here
  - costing.go: Cost-per-unit attached to line rows
  - health.go: Consumes plan progress and cost variance
*/
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUMMARY ROWS
// =============================================================================

type ProductSummary struct {
	ProductID       ProductID
	Produced        int
	Waste           int
	WasteRatio      float64
	WorkerHours     float64
	AvgAssemblyTime float64
}

type LineSummary struct {
	LineID          LineID
	Produced        int
	Waste           int
	WasteRatio      float64
	WorkerHours     float64
	AvgAssemblyTime float64
	CostPerUnit     decimal.Decimal
}

type DaySummary struct {
	Date        DateKey
	Produced    int
	Waste       int
	WasteRatio  float64
	WorkerHours float64
}

type SupervisorSummary struct {
	SupervisorID EmployeeID
	Produced     int
	Waste        int
	WasteRatio   float64
	Reports      int
}

// =============================================================================
// BUILDERS - Repeated grouping over the same report set
// =============================================================================

// ByProduct folds reports into per-product rows, sorted by product ID.
func ByProduct(reports []ProductionReport) []ProductSummary {
	acc := make(map[ProductID][]ProductionReport)
	for _, r := range reports {
		acc[r.ProductID] = append(acc[r.ProductID], r)
	}

	rows := make([]ProductSummary, 0, len(acc))
	for id, group := range acc {
		row := ProductSummary{ProductID: id}
		for _, r := range group {
			row.Produced += r.QuantityProduced
			row.Waste += r.QuantityWaste
			row.WorkerHours += r.WorkerHours()
		}
		row.WasteRatio = WasteRatio(float64(row.Waste), float64(row.Produced+row.Waste))
		row.AvgAssemblyTime = AvgAssemblyTime(group)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductID < rows[j].ProductID })
	return rows
}

// ByLine folds reports into per-line rows, sorted by line ID. A non-nil
// resolver attaches cost-per-unit; passing nil skips the cost view.
func ByLine(reports []ProductionReport, hourlyRate decimal.Decimal, resolver *CostResolver) []LineSummary {
	acc := make(map[LineID][]ProductionReport)
	for _, r := range reports {
		acc[r.LineID] = append(acc[r.LineID], r)
	}

	rows := make([]LineSummary, 0, len(acc))
	for id, group := range acc {
		row := LineSummary{LineID: id, CostPerUnit: decimal.Zero}
		for _, r := range group {
			row.Produced += r.QuantityProduced
			row.Waste += r.QuantityWaste
			row.WorkerHours += r.WorkerHours()
		}
		row.WasteRatio = WasteRatio(float64(row.Waste), float64(row.Produced+row.Waste))
		row.AvgAssemblyTime = AvgAssemblyTime(group)
		if resolver != nil {
			row.CostPerUnit = ComputeCost(group, hourlyRate, resolver).CostPerUnit
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LineID < rows[j].LineID })
	return rows
}

// ByDay folds reports into per-day chart points, sorted by date.
func ByDay(reports []ProductionReport) []DaySummary {
	acc := make(map[DateKey]*DaySummary)
	for _, r := range reports {
		row, ok := acc[r.Date]
		if !ok {
			row = &DaySummary{Date: r.Date}
			acc[r.Date] = row
		}
		row.Produced += r.QuantityProduced
		row.Waste += r.QuantityWaste
		row.WorkerHours += r.WorkerHours()
	}

	rows := make([]DaySummary, 0, len(acc))
	for _, row := range acc {
		row.WasteRatio = WasteRatio(float64(row.Waste), float64(row.Produced+row.Waste))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// BySupervisor folds reports into per-supervisor rows, sorted by ID.
func BySupervisor(reports []ProductionReport) []SupervisorSummary {
	acc := make(map[EmployeeID]*SupervisorSummary)
	for _, r := range reports {
		row, ok := acc[r.SupervisorID]
		if !ok {
			row = &SupervisorSummary{SupervisorID: r.SupervisorID}
			acc[r.SupervisorID] = row
		}
		row.Produced += r.QuantityProduced
		row.Waste += r.QuantityWaste
		row.Reports++
	}

	rows := make([]SupervisorSummary, 0, len(acc))
	for _, row := range acc {
		row.WasteRatio = WasteRatio(float64(row.Waste), float64(row.Produced+row.Waste))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SupervisorID < rows[j].SupervisorID })
	return rows
}

// =============================================================================
// STANDARD COST BASELINE
// =============================================================================

// StandardUnitCost prices one unit at the configured standard time.
func StandardUnitCost(standardMinutes float64, hourlyRate decimal.Decimal) decimal.Decimal {
	if standardMinutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(standardMinutes).Div(decimal.NewFromInt(60)).Mul(hourlyRate)
}

// StandardAvgCost returns the quantity-weighted standard unit cost across
// reports whose (line, product) pair has a configured standard time. Zero
// when no report matches a config.
func StandardAvgCost(reports []ProductionReport, configs []LineProductConfig, hourlyRate decimal.Decimal) decimal.Decimal {
	weighted := decimal.Zero
	var quantity int
	for _, r := range reports {
		if r.QuantityProduced <= 0 {
			continue
		}
		minutes, ok := StandardMinutesFor(configs, r.LineID, r.ProductID)
		if !ok {
			continue
		}
		unit := StandardUnitCost(minutes, hourlyRate)
		weighted = weighted.Add(unit.Mul(decimal.NewFromInt(int64(r.QuantityProduced))))
		quantity += r.QuantityProduced
	}
	if quantity <= 0 {
		return decimal.Zero
	}
	return weighted.Div(decimal.NewFromInt(int64(quantity)))
}

// CostVariance returns actual-vs-standard cost drift as a percentage, one
// decimal. Zero when no standard baseline exists.
func CostVariance(actualPerUnit, standardPerUnit decimal.Decimal) float64 {
	if standardPerUnit.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	diff := actualPerUnit.Sub(standardPerUnit).Div(standardPerUnit)
	return Round1(diff.InexactFloat64() * 100)
}

// =============================================================================
// PLAN PROGRESS
// =============================================================================

// PlanProgress returns achieved-vs-planned as a whole percentage capped at
// 100. Zero or negative planned quantity yields 0.
func PlanProgress(actual, planned int) float64 {
	if planned <= 0 {
		return 0
	}
	v := float64(RoundInt(float64(actual) / float64(planned) * 100))
	if v > 100 {
		return 100
	}
	return v
}

// PlanFilter selects which plan statuses count as "active" for a consumer.
// The dashboard roll-up and the line-detail view intentionally use different
// definitions; callers choose a preset rather than the engine hardcoding one.
type PlanFilter func(ProductionPlan) bool

var (
	// DashboardActive counts plans currently running or already delivered.
	DashboardActive PlanFilter = func(p ProductionPlan) bool {
		return p.Status == StatusInProgress || p.Status == StatusCompleted
	}

	// LineDetailActive counts plans currently running or queued to start.
	LineDetailActive PlanFilter = func(p ProductionPlan) bool {
		return p.Status == StatusInProgress || p.Status == StatusPlanned
	}
)

// FilterPlans returns the plans the filter accepts, preserving input order.
func FilterPlans(plans []ProductionPlan, filter PlanFilter) []ProductionPlan {
	if filter == nil {
		return plans
	}
	out := make([]ProductionPlan, 0, len(plans))
	for _, p := range plans {
		if filter(p) {
			out = append(out, p)
		}
	}
	return out
}

// ActualsByPair sums produced quantities keyed lineID_productID, the lookup
// plans resolve their actuals against.
func ActualsByPair(reports []ProductionReport) map[string]int {
	actuals := make(map[string]int)
	for _, r := range reports {
		if r.QuantityProduced <= 0 {
			continue
		}
		actuals[string(r.LineID)+"_"+string(r.ProductID)] += r.QuantityProduced
	}
	return actuals
}
