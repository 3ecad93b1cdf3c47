/*
Package metrics provides the derived-metrics and cost-allocation engine.

PURPOSE:
  This package turns raw operational records (shift reports, cost-center
  ledgers, production plans, labor rates) into the derived numbers every
  dashboard screen displays: KPIs, cost breakdowns, health scores, plan-delay
  diagnostics and an ordered alert feed. It never mutates source records and
  never performs I/O; every output is a pure function of its inputs.

KEY CONCEPTS IN THIS FILE (types.go):
  - ProductionReport: One shift's output for a (line, product, supervisor, date)
  - LineProductConfig: Standard assembly minutes per unit (the "should take")
  - CostCenter / CostCenterValue / CostAllocation: Overhead cost ledger
  - ProductionPlan: A quantity target with a start date and status
  - LaborSettings: Process-wide labor parameters used to cost worker-hours

DESIGN PRINCIPLES:
  1. Immutability: Source records are read, grouped and folded, never changed
  2. Precision: Monetary values use decimal.Decimal, never float math
  3. Type Safety: Strong typing for IDs prevents mixing line/product/center IDs
  4. Degradation: Missing or zero-valued inputs produce 0, never NaN or panic

USAGE:
  report := metrics.ProductionReport{
      Date:             "2024-01-01",
      LineID:           "line-a",
      ProductID:        "prod-1",
      QuantityProduced: 100,
      QuantityWaste:    5,
      WorkersCount:     4,
      WorkHours:        8,
  }
  ratio := metrics.WasteRatio(float64(report.QuantityWaste), float64(report.TotalUnits()))

SEE ALSO:
  - ratios.go: Closed-form ratio functions over raw counts
  - costing.go: Indirect-cost resolution and production-share redistribution
  - aggregate.go: Group-by builders for UI projections
  - health.go: Weighted health score and plan classification
*/
package metrics

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type LineID string
type ProductID string
type EmployeeID string
type CenterID string
type PlanID string
type ReportID string

// =============================================================================
// PRODUCTION REPORT - One shift's output
// =============================================================================

type ProductionReport struct {
	ID           ReportID
	Date         DateKey
	LineID       LineID
	ProductID    ProductID
	SupervisorID EmployeeID

	QuantityProduced int
	QuantityWaste    int
	WorkersCount     int
	WorkHours        float64
}

// WorkerHours returns the total person-hours spent on the shift.
func (r ProductionReport) WorkerHours() float64 {
	return float64(r.WorkersCount) * r.WorkHours
}

// TotalUnits returns produced plus waste, the denominator for waste ratios.
func (r ProductionReport) TotalUnits() int {
	return r.QuantityProduced + r.QuantityWaste
}

// =============================================================================
// LINE PRODUCT CONFIG - Standard assembly time baseline
// =============================================================================

type LineProductConfig struct {
	LineID          LineID
	ProductID       ProductID
	StandardMinutes float64
}

// StandardMinutesFor scans configs in input order and returns the first match
// for the pair. Duplicate configs resolve to the earliest entry; this
// tie-break is part of the observable contract.
func StandardMinutesFor(configs []LineProductConfig, line LineID, product ProductID) (float64, bool) {
	for _, c := range configs {
		if c.LineID == line && c.ProductID == product {
			return c.StandardMinutes, true
		}
	}
	return 0, false
}

// =============================================================================
// COST RECORDS - Overhead ledger consumed by the allocation module
// =============================================================================

type CostCenterType string

const (
	CostDirect   CostCenterType = "direct"
	CostIndirect CostCenterType = "indirect"
)

type CostCenter struct {
	ID     CenterID
	Name   string
	Type   CostCenterType
	Active bool
}

// CostCenterValue records one month's monetary amount for a center.
type CostCenterValue struct {
	CenterID CenterID
	Month    MonthKey
	Amount   decimal.Decimal
}

// CostAllocation records the share of a center's monthly cost distributed
// to a line. Percent is the line's slice of the center's value for the month.
type CostAllocation struct {
	CenterID CenterID
	LineID   LineID
	Month    MonthKey
	Percent  float64
}

// =============================================================================
// PRODUCTION PLAN - Quantity target with lifecycle status
// =============================================================================

type PlanStatus string

const (
	StatusPlanned    PlanStatus = "planned"
	StatusInProgress PlanStatus = "in_progress"
	StatusCompleted  PlanStatus = "completed"
	StatusPaused     PlanStatus = "paused"
	StatusCancelled  PlanStatus = "cancelled"
)

type ProductionPlan struct {
	ID              PlanID
	LineID          LineID
	ProductID       ProductID
	PlannedQuantity int
	StartDate       DateKey
	Status          PlanStatus
}

// PairKey returns the lineID_productID key used for per-plan actual lookups.
func (p ProductionPlan) PairKey() string {
	return string(p.LineID) + "_" + string(p.ProductID)
}

// =============================================================================
// LABOR SETTINGS - Process-wide labor parameters
// =============================================================================

type LaborSettings struct {
	HourlyRate decimal.Decimal
	MaxWorkers int
	DailyHours float64
}

// MustParseDecimal parses s, returning zero on malformed input rather than
// erroring. Upstream data quality issues degrade to "no cost", not a crash.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
