/*
ratios.go - Closed-form KPI ratios over raw production counts

PURPOSE:
  Small pure functions that turn raw counts into the percentages and
  capacities shown on every dashboard card. Each function guards its
  denominator and returns 0 instead of NaN/Inf, so malformed upstream data
  degrades to "no signal" rather than crashing a render.

TWO EFFICIENCY SEMANTICS:
  Efficiency() is capped at 100: over-achieving a target is not "more
  efficient" on an achievement card. TimeEfficiency() is deliberately
  UNCAPPED: a value above 100 means the line is beating the standard
  assembly time, and that signal must survive. Do not merge the two.

SEE ALSO:
  - format.go: Round1/Round2 used for fixed-precision output
  - aggregate.go: Builders composing these into grouped projections
*/
package metrics

import "math"

// Efficiency returns achieved-vs-target as a whole percentage, capped at 100.
// Zero or negative targets yield 0.
func Efficiency(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	v := math.Round(current / target * 100)
	if v > 100 {
		return 100
	}
	return v
}

// WasteRatio returns waste as a share of total units, one decimal.
// Waste never exceeds total, so the result stays within [0,100].
func WasteRatio(waste, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(waste / total * 100)
}

// AvgAssemblyTime returns worker-minutes per produced unit across the report
// set, two decimals. Zero produced yields 0.
func AvgAssemblyTime(reports []ProductionReport) float64 {
	var workerHours float64
	var produced int
	for _, r := range reports {
		workerHours += r.WorkerHours()
		produced += r.QuantityProduced
	}
	if produced <= 0 {
		return 0
	}
	return Round2(workerHours * 60 / float64(produced))
}

// DailyCapacity returns whole units per day a crew can assemble at the given
// per-unit time. Zero or negative assembly time yields 0.
func DailyCapacity(maxWorkers int, dailyHours, avgMinutes float64) int {
	if avgMinutes <= 0 {
		return 0
	}
	return int(math.Floor(float64(maxWorkers) * dailyHours * 60 / avgMinutes))
}

// EstimatedDays returns how many days a quantity takes at the given daily
// capacity, one decimal. Zero or negative capacity yields 0.
func EstimatedDays(quantity, dailyCapacity int) float64 {
	if dailyCapacity <= 0 {
		return 0
	}
	return Round1(float64(quantity) / float64(dailyCapacity))
}

// TimeEfficiency returns standard-vs-actual time as a percentage, one
// decimal, uncapped. Values above 100 mean the line beats the standard.
func TimeEfficiency(standardMinutes, actualMinutes float64) float64 {
	if actualMinutes <= 0 {
		return 0
	}
	return Round1(standardMinutes / actualMinutes * 100)
}

// Utilization returns actual worked hours as a share of available hours,
// one decimal. Zero or negative availability yields 0.
func Utilization(actualHours, availableHours float64) float64 {
	if availableHours <= 0 {
		return 0
	}
	return Round1(actualHours / availableHours * 100)
}
