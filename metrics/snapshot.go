package metrics

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SNAPSHOT - Everything one dashboard render needs, computed in one pass
// =============================================================================

// KPISnapshot is the headline figure block.
type KPISnapshot struct {
	TotalProduced   int
	TotalWaste      int
	WasteRatio      float64
	AvgAssemblyTime float64
	DailyCapacity   int
	Efficiency      float64
	TimeEfficiency  float64
	Utilization     float64
	PlanAchievement float64

	LaborCost    decimal.Decimal
	IndirectCost decimal.Decimal
	CostPerUnit  decimal.Decimal
	StandardCost decimal.Decimal
	CostVariance float64
}

// Snapshot is the full computed output for one pass. It is rebuilt from
// source records on every recomputation; nothing here persists.
type Snapshot struct {
	KPIs        KPISnapshot
	Days        []DaySummary
	Lines       []LineSummary
	Products    []ProductSummary
	Supervisors []SupervisorSummary
	PlanHealths []PlanHealth
	HealthScore int
	Alerts      []Alert
}

// Input carries the source records for one pass. Slices are read, never
// mutated; identical inputs produce identical snapshots.
type Input struct {
	Reports     []ProductionReport
	Configs     []LineProductConfig
	Plans       []ProductionPlan
	Centers     []CostCenter
	Values      []CostCenterValue
	Allocations []CostAllocation

	Labor      LaborSettings
	Thresholds AlertThresholds

	// Now anchors plan-elapsed math; callers pass Today() in production and
	// fixed dates in tests. Zero defaults to Today().
	Now DateKey

	// PlanFilter selects the "active" plan set. Nil defaults to
	// DashboardActive; the line-detail view passes LineDetailActive.
	PlanFilter PlanFilter

	DisabledAccounts int
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes dashboard snapshots. It is stateless; the per-pass cost
// cache lives inside Compute and dies with it.
type Engine struct{}

// Compute runs the full derivation: ratios, cost allocation, aggregates,
// plan health, health score and alerts, in one pass over the inputs.
func (e *Engine) Compute(in Input) Snapshot {
	now := in.Now
	if now.IsZero() {
		now = Today()
	}
	filter := in.PlanFilter
	if filter == nil {
		filter = DashboardActive
	}

	resolver := NewCostResolver(LedgerIndirectCost(in.Centers, in.Values, in.Allocations))

	var produced, waste int
	var workerHours float64
	dates := make(map[DateKey]bool)
	for _, r := range in.Reports {
		produced += r.QuantityProduced
		waste += r.QuantityWaste
		workerHours += r.WorkerHours()
		dates[r.Date] = true
	}

	avgTime := AvgAssemblyTime(in.Reports)
	capacity := DailyCapacity(in.Labor.MaxWorkers, in.Labor.DailyHours, avgTime)
	cost := ComputeCost(in.Reports, in.Labor.HourlyRate, resolver)
	standardAvg := StandardAvgCost(in.Reports, in.Configs, in.Labor.HourlyRate)
	costVariance := CostVariance(cost.CostPerUnit, standardAvg)

	active := FilterPlans(in.Plans, filter)
	actuals := ActualsByPair(in.Reports)

	var totalPlanned int
	var progressSum float64
	for _, p := range active {
		totalPlanned += p.PlannedQuantity
		progressSum += PlanProgress(actuals[p.PairKey()], p.PlannedQuantity)
	}
	planAchievement := 0.0
	if len(active) > 0 {
		planAchievement = Round1(progressSum / float64(len(active)))
	}

	availableHours := float64(in.Labor.MaxWorkers) * in.Labor.DailyHours * float64(len(dates))

	kpis := KPISnapshot{
		TotalProduced:   produced,
		TotalWaste:      waste,
		WasteRatio:      WasteRatio(float64(waste), float64(produced+waste)),
		AvgAssemblyTime: avgTime,
		DailyCapacity:   capacity,
		Efficiency:      Efficiency(float64(produced), float64(totalPlanned)),
		TimeEfficiency:  e.timeEfficiency(in.Reports, in.Configs),
		Utilization:     Utilization(workerHours, availableHours),
		PlanAchievement: planAchievement,
		LaborCost:       cost.LaborCost,
		IndirectCost:    cost.IndirectCost,
		CostPerUnit:     cost.CostPerUnit,
		StandardCost:    standardAvg,
		CostVariance:    costVariance,
	}

	planHealths := e.classifyPlans(active, actuals, in, avgTime, now)

	maxDelay := 0
	for _, ph := range planHealths {
		if ph.DelayDays > maxDelay {
			maxDelay = ph.DelayDays
		}
	}

	score := HealthScore(HealthInput{
		Efficiency:      kpis.Efficiency,
		CostVariance:    costVariance,
		WasteRatio:      kpis.WasteRatio,
		PlanAchievement: planAchievement,
	})

	alerts := BuildAlerts(AlertInput{
		Thresholds:       in.Thresholds,
		CostVariance:     costVariance,
		PlanDelayDays:    maxDelay,
		WasteRatio:       kpis.WasteRatio,
		Efficiency:       kpis.Efficiency,
		DisabledAccounts: in.DisabledAccounts,
	})

	return Snapshot{
		KPIs:        kpis,
		Days:        ByDay(in.Reports),
		Lines:       ByLine(in.Reports, in.Labor.HourlyRate, resolver),
		Products:    ByProduct(in.Reports),
		Supervisors: BySupervisor(in.Reports),
		PlanHealths: planHealths,
		HealthScore: score,
		Alerts:      alerts,
	}
}

// timeEfficiency compares standard minutes against actual worker-minutes
// over the reports that have a configured standard; unconfigured pairs
// carry no baseline and drop out.
func (e *Engine) timeEfficiency(reports []ProductionReport, configs []LineProductConfig) float64 {
	var standardMinutes, actualMinutes float64
	for _, r := range reports {
		if r.QuantityProduced <= 0 {
			continue
		}
		minutes, ok := StandardMinutesFor(configs, r.LineID, r.ProductID)
		if !ok {
			continue
		}
		standardMinutes += minutes * float64(r.QuantityProduced)
		actualMinutes += r.WorkerHours() * 60
	}
	return TimeEfficiency(standardMinutes, actualMinutes)
}

// classifyPlans produces a health record per active plan still running.
// Completed and cancelled plans count toward achievement but their health
// is no longer computed.
func (e *Engine) classifyPlans(active []ProductionPlan, actuals map[string]int, in Input, overallAvgTime float64, now DateKey) []PlanHealth {
	lineTimes := make(map[LineID]float64)

	healths := make([]PlanHealth, 0, len(active))
	for _, p := range active {
		if p.Status == StatusCompleted || p.Status == StatusCancelled {
			continue
		}

		avg, ok := lineTimes[p.LineID]
		if !ok {
			var lineReports []ProductionReport
			for _, r := range in.Reports {
				if r.LineID == p.LineID {
					lineReports = append(lineReports, r)
				}
			}
			avg = AvgAssemblyTime(lineReports)
			if avg <= 0 {
				// No line history yet: fall back to the scope-wide average.
				avg = overallAvgTime
			}
			lineTimes[p.LineID] = avg
		}

		healths = append(healths, ClassifyPlan(PlanHealthInput{
			Plan:          p,
			Actual:        actuals[p.PairKey()],
			DailyCapacity: DailyCapacity(in.Labor.MaxWorkers, in.Labor.DailyHours, avg),
			Now:           now,
		}))
	}
	return healths
}
