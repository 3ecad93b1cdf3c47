/*
health.go - Weighted health score and plan-delay classification

PURPOSE:
  Collapses the aggregate signals into two top-of-dashboard answers: a single
  0-100 health score for the whole operation, and a per-plan classification
  of whether a production plan is on time.

SCORE COMPOSITION:
  efficiency        raw value capped at 100          weight 0.30
  cost variance     banded by absolute drift         weight 0.20
  waste             banded by ratio                  weight 0.25
  plan achievement  raw achievement rate             weight 0.25

  score = round(sum(component * weight)), clamped to [0,100].

PLAN CLASSIFICATION:
  Stateless: recomputed from (start date, now, planned, actual, capacity)
  every pass. Nothing persists between passes; "terminal" simply means the
  plan status left the active set and no classification is produced.

SEE ALSO:
  - aggregate.go: PlanProgress and CostVariance inputs
  - alerts.go: Threshold-driven alert feed beside the score
*/
package metrics

import "math"

// =============================================================================
// HEALTH SCORE - Weighted blend of the four KPI signals
// =============================================================================

const (
	weightEfficiency   = 0.30
	weightCostVariance = 0.20
	weightWaste        = 0.25
	weightPlan         = 0.25
)

type HealthInput struct {
	Efficiency      float64
	CostVariance    float64
	WasteRatio      float64
	PlanAchievement float64
}

// HealthScore blends the four components into a 0-100 integer.
func HealthScore(in HealthInput) int {
	efficiency := math.Min(in.Efficiency, 100)

	score := efficiency*weightEfficiency +
		costVarianceBand(in.CostVariance)*weightCostVariance +
		wasteBand(in.WasteRatio)*weightWaste +
		in.PlanAchievement*weightPlan

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

// costVarianceBand scores how far actual cost drifted from standard, in
// either direction.
func costVarianceBand(variance float64) float64 {
	abs := math.Abs(variance)
	switch {
	case abs <= 5:
		return 100
	case abs <= 15:
		return 70
	case abs <= 30:
		return 40
	default:
		return 10
	}
}

func wasteBand(waste float64) float64 {
	switch {
	case waste <= 2:
		return 100
	case waste <= 5:
		return 75
	case waste <= 10:
		return 40
	default:
		return 10
	}
}

// =============================================================================
// PLAN HEALTH - Elapsed-time vs completion-ratio classification
// =============================================================================

type PlanHealthStatus string

const (
	PlanOnTrack  PlanHealthStatus = "on_track"
	PlanAtRisk   PlanHealthStatus = "at_risk"
	PlanDelayed  PlanHealthStatus = "delayed"
	PlanCritical PlanHealthStatus = "critical"
)

type PlanHealthInput struct {
	Plan          ProductionPlan
	Actual        int
	DailyCapacity int
	Now           DateKey
}

type PlanHealth struct {
	PlanID    PlanID
	LineID    LineID
	ProductID ProductID
	Status    PlanHealthStatus

	ElapsedDays        int
	EstimatedTotalDays int
	ElapsedRatio       float64
	CompletionRatio    float64
	ExpectedCompletion float64
	DelayDays          int
	RemainingDays      float64
}

// ClassifyPlan compares how far along a plan is against how far along it
// should be at the current date and capacity.
func ClassifyPlan(in PlanHealthInput) PlanHealth {
	elapsed := ElapsedDays(in.Plan.StartDate, in.Now)

	estimatedTotal := 0
	if in.DailyCapacity > 0 {
		estimatedTotal = int(math.Ceil(float64(in.Plan.PlannedQuantity) / float64(in.DailyCapacity)))
	}

	elapsedRatio := 0.0
	if estimatedTotal > 0 {
		elapsedRatio = math.Min(Round1(float64(elapsed)/float64(estimatedTotal)*100), 100)
	}

	completionRatio := 0.0
	if in.Plan.PlannedQuantity > 0 {
		completionRatio = math.Min(Round1(float64(in.Actual)/float64(in.Plan.PlannedQuantity)*100), 100)
	}

	delayDays := 0
	if in.DailyCapacity > 0 {
		remainingDays := int(math.Ceil(float64(in.Plan.PlannedQuantity-in.Actual) / float64(in.DailyCapacity)))
		budgetLeft := estimatedTotal - elapsed
		if budgetLeft < 0 {
			budgetLeft = 0
		}
		if d := remainingDays - budgetLeft; d > 0 {
			delayDays = d
		}
	}

	remainingUnits := in.Plan.PlannedQuantity - in.Actual
	if remainingUnits < 0 {
		remainingUnits = 0
	}

	expected := elapsedRatio

	status := PlanCritical
	switch {
	case completionRatio >= expected*0.9:
		status = PlanOnTrack
	case completionRatio >= expected*0.7:
		status = PlanAtRisk
	case completionRatio >= expected*0.4:
		status = PlanDelayed
	}

	return PlanHealth{
		PlanID:             in.Plan.ID,
		LineID:             in.Plan.LineID,
		ProductID:          in.Plan.ProductID,
		Status:             status,
		ElapsedDays:        elapsed,
		EstimatedTotalDays: estimatedTotal,
		ElapsedRatio:       elapsedRatio,
		CompletionRatio:    completionRatio,
		ExpectedCompletion: expected,
		DelayDays:          delayDays,
		RemainingDays:      EstimatedDays(remainingUnits, in.DailyCapacity),
	}
}
