/*
source.go - Read-only record sources the engine computes from

PURPOSE:
  Defines the interface between the computation engine and whatever persists
  the raw records. The engine itself only ever sees slices; these interfaces
  let a caller assemble one Input from any backing store.

READ-ONLY CONTRACT:
  Sources hand out immutable value records. The engine never writes through
  these interfaces; create/update/delete surfaces belong to the stores and
  the API layer, not here.

IMPLEMENTATIONS:
  - store/sqlite: Production store backing the HTTP server
  - store/memory: In-memory store for tests and demo seeds

EXAMPLE:
  input, err := metrics.LoadInput(ctx, store, from, to)
  if err != nil { ... }
  input.Thresholds = resolved.AlertThresholds()
  snapshot := engine.Compute(input)

SEE ALSO:
  - snapshot.go: Input and the Engine consuming it
  - store/sqlite, store/memory: Concrete implementations
*/
package metrics

import "context"

// =============================================================================
// SOURCES - One interface per record family
// =============================================================================

// ReportSource provides production reports by date range, optionally
// narrowed to a line or supervisor. Results are ordered by date then ID.
type ReportSource interface {
	ReportsBetween(ctx context.Context, from, to DateKey) ([]ProductionReport, error)
	ReportsForLine(ctx context.Context, line LineID, from, to DateKey) ([]ProductionReport, error)
	ReportsForSupervisor(ctx context.Context, supervisor EmployeeID, from, to DateKey) ([]ProductionReport, error)
}

// CostSource provides the cost-center ledger.
type CostSource interface {
	CostCenters(ctx context.Context) ([]CostCenter, error)
	CostCenterValues(ctx context.Context) ([]CostCenterValue, error)
	CostAllocations(ctx context.Context) ([]CostAllocation, error)
}

// PlanSource provides production plans. Status filtering happens in the
// engine via PlanFilter, so this returns all of them.
type PlanSource interface {
	Plans(ctx context.Context) ([]ProductionPlan, error)
}

// ConfigSource provides standard-time configs and labor parameters.
type ConfigSource interface {
	LineProductConfigs(ctx context.Context) ([]LineProductConfig, error)
	LaborSettings(ctx context.Context) (LaborSettings, error)
}

// Source aggregates everything one computation pass reads.
type Source interface {
	ReportSource
	CostSource
	PlanSource
	ConfigSource
}

// =============================================================================
// INPUT ASSEMBLY
// =============================================================================

// LoadInput fetches one pass worth of records for the date range. Thresholds,
// Now, PlanFilter and DisabledAccounts stay at their zero values for the
// caller to fill in.
func LoadInput(ctx context.Context, src Source, from, to DateKey) (Input, error) {
	var in Input
	var err error
	if in.Reports, err = src.ReportsBetween(ctx, from, to); err != nil {
		return Input{}, err
	}
	if err = loadShared(ctx, src, &in); err != nil {
		return Input{}, err
	}
	return in, nil
}

// LoadLineInput is LoadInput narrowed to one line's reports and plans, used
// by the line-detail view together with LineDetailActive.
func LoadLineInput(ctx context.Context, src Source, line LineID, from, to DateKey) (Input, error) {
	in := Input{PlanFilter: LineDetailActive}
	var err error
	if in.Reports, err = src.ReportsForLine(ctx, line, from, to); err != nil {
		return Input{}, err
	}
	if err = loadShared(ctx, src, &in); err != nil {
		return Input{}, err
	}

	plans := make([]ProductionPlan, 0, len(in.Plans))
	for _, p := range in.Plans {
		if p.LineID == line {
			plans = append(plans, p)
		}
	}
	in.Plans = plans
	return in, nil
}

func loadShared(ctx context.Context, src Source, in *Input) error {
	var err error
	if in.Configs, err = src.LineProductConfigs(ctx); err != nil {
		return err
	}
	if in.Plans, err = src.Plans(ctx); err != nil {
		return err
	}
	if in.Centers, err = src.CostCenters(ctx); err != nil {
		return err
	}
	if in.Values, err = src.CostCenterValues(ctx); err != nil {
		return err
	}
	if in.Allocations, err = src.CostAllocations(ctx); err != nil {
		return err
	}
	if in.Labor, err = src.LaborSettings(ctx); err != nil {
		return err
	}
	return nil
}
