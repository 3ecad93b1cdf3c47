package metrics_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/floorsight/production-engine/metrics"
)

// =============================================================================
// GROUP-BY BUILDERS
// =============================================================================

func TestByProduct_GroupsAndSorts(t *testing.T) {
	// GIVEN: Reports for two products in unsorted order
	// WHEN: Building product rows
	// THEN: One row per product, sorted by ID, with summed quantities

	reports := []metrics.ProductionReport{
		report("2024-01-02", "line-a", "prod-b", 50, 2, 2, 8),
		report("2024-01-01", "line-a", "prod-a", 100, 5, 4, 8),
		report("2024-01-03", "line-b", "prod-a", 100, 5, 4, 8),
	}

	rows := metrics.ByProduct(reports)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ProductID != "prod-a" || rows[1].ProductID != "prod-b" {
		t.Errorf("rows out of order: %v, %v", rows[0].ProductID, rows[1].ProductID)
	}
	if rows[0].Produced != 200 || rows[0].Waste != 10 {
		t.Errorf("expected 200 produced / 10 waste, got %d / %d", rows[0].Produced, rows[0].Waste)
	}
	// 10 / 210 * 100 = 4.761... -> 4.8
	if rows[0].WasteRatio != 4.8 {
		t.Errorf("expected waste ratio 4.8, got %v", rows[0].WasteRatio)
	}
}

func TestByLine_AttachesCostPerUnit(t *testing.T) {
	// GIVEN: One line, 100 units, 320 labor + 180 indirect
	// THEN: The line row carries cost-per-unit 5

	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 5, 4, 8),
	}
	resolver := metrics.NewCostResolver(fixedIndirect("180"))

	rows := metrics.ByLine(reports, money("10"), resolver)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].CostPerUnit.Equal(money("5")) {
		t.Errorf("expected 5 per unit, got %s", rows[0].CostPerUnit)
	}
}

func TestByLine_NilResolverSkipsCost(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 5, 4, 8),
	}

	rows := metrics.ByLine(reports, money("10"), nil)

	if !rows[0].CostPerUnit.IsZero() {
		t.Errorf("expected zero cost without a resolver, got %s", rows[0].CostPerUnit)
	}
}

func TestByDay_SortsChronologically(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-03", "line-a", "prod-a", 30, 0, 2, 8),
		report("2024-01-01", "line-a", "prod-a", 10, 0, 2, 8),
		report("2024-01-02", "line-a", "prod-a", 20, 0, 2, 8),
		report("2024-01-01", "line-b", "prod-a", 15, 0, 2, 8),
	}

	rows := metrics.ByDay(reports)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Date != "2024-01-01" || rows[2].Date != "2024-01-03" {
		t.Errorf("rows out of order: %v ... %v", rows[0].Date, rows[2].Date)
	}
	if rows[0].Produced != 25 {
		t.Errorf("expected both lines summed into the first day, got %d", rows[0].Produced)
	}
}

func TestBySupervisor_CountsReports(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 5, 4, 8),
		report("2024-01-02", "line-a", "prod-a", 90, 3, 4, 8),
	}
	reports[1].SupervisorID = "sup-2"

	rows := metrics.BySupervisor(reports)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SupervisorID != "sup-1" || rows[0].Reports != 1 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestBuilders_EmptyInput(t *testing.T) {
	if rows := metrics.ByProduct(nil); len(rows) != 0 {
		t.Errorf("expected no product rows, got %d", len(rows))
	}
	if rows := metrics.ByDay(nil); len(rows) != 0 {
		t.Errorf("expected no day rows, got %d", len(rows))
	}
}

// =============================================================================
// STANDARD COST BASELINE
// =============================================================================

func TestStandardUnitCost(t *testing.T) {
	// 12 standard minutes at rate 10 -> (12/60)*10 = 2 per unit
	got := metrics.StandardUnitCost(12, money("10"))
	if !got.Equal(money("2")) {
		t.Errorf("expected 2, got %s", got)
	}
	if !metrics.StandardUnitCost(0, money("10")).IsZero() {
		t.Error("expected zero for unconfigured standard time")
	}
}

func TestStandardAvgCost_QuantityWeighted(t *testing.T) {
	// GIVEN: Two configured pairs, 100 units at standard cost 2 and
	//        300 units at standard cost 4
	// THEN: The baseline is (100*2 + 300*4)/400 = 3.5

	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 0, 4, 8),
		report("2024-01-01", "line-a", "prod-b", 300, 0, 4, 8),
	}
	configs := []metrics.LineProductConfig{
		{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 12},
		{LineID: "line-a", ProductID: "prod-b", StandardMinutes: 24},
	}

	got := metrics.StandardAvgCost(reports, configs, money("10"))
	if !got.Equal(money("3.5")) {
		t.Errorf("expected 3.5, got %s", got)
	}
}

func TestStandardAvgCost_UnconfiguredPairsDropOut(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 0, 4, 8),
		report("2024-01-01", "line-a", "prod-x", 900, 0, 4, 8),
	}
	configs := []metrics.LineProductConfig{
		{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 12},
	}

	// The unconfigured 900 units must not drag the baseline toward zero.
	got := metrics.StandardAvgCost(reports, configs, money("10"))
	if !got.Equal(money("2")) {
		t.Errorf("expected 2, got %s", got)
	}
}

func TestStandardAvgCost_NoConfiguredReports(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 0, 4, 8),
	}
	if got := metrics.StandardAvgCost(reports, nil, money("10")); !got.IsZero() {
		t.Errorf("expected zero baseline, got %s", got)
	}
}

func TestCostVariance(t *testing.T) {
	// (5.5 - 5) / 5 * 100 = 10
	if got := metrics.CostVariance(money("5.5"), money("5")); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	// Cheaper than standard reads negative.
	if got := metrics.CostVariance(money("4.5"), money("5")); got != -10 {
		t.Errorf("expected -10, got %v", got)
	}
	// No baseline, no variance.
	if got := metrics.CostVariance(money("5"), decimal.Zero); got != 0 {
		t.Errorf("expected 0 without a baseline, got %v", got)
	}
}

// =============================================================================
// PLAN PROGRESS AND FILTERS
// =============================================================================

func TestPlanProgress(t *testing.T) {
	if got := metrics.PlanProgress(300, 1000); got != 30 {
		t.Errorf("expected 30, got %v", got)
	}
	if got := metrics.PlanProgress(1500, 1000); got != 100 {
		t.Errorf("expected cap at 100, got %v", got)
	}
	if got := metrics.PlanProgress(300, 0); got != 0 {
		t.Errorf("expected 0 for zero planned, got %v", got)
	}
	// 2/3 -> 66.67 -> 67
	if got := metrics.PlanProgress(2, 3); got != 67 {
		t.Errorf("expected 67, got %v", got)
	}
}

func TestFilterPlans_Presets(t *testing.T) {
	// GIVEN: Plans in every status
	// THEN: The dashboard preset keeps in-progress and completed;
	//       the line-detail preset keeps in-progress and planned

	plans := []metrics.ProductionPlan{
		{ID: "p1", Status: metrics.StatusPlanned},
		{ID: "p2", Status: metrics.StatusInProgress},
		{ID: "p3", Status: metrics.StatusCompleted},
		{ID: "p4", Status: metrics.StatusPaused},
		{ID: "p5", Status: metrics.StatusCancelled},
	}

	dashboard := metrics.FilterPlans(plans, metrics.DashboardActive)
	if len(dashboard) != 2 || dashboard[0].ID != "p2" || dashboard[1].ID != "p3" {
		t.Errorf("unexpected dashboard selection: %+v", dashboard)
	}

	detail := metrics.FilterPlans(plans, metrics.LineDetailActive)
	if len(detail) != 2 || detail[0].ID != "p1" || detail[1].ID != "p2" {
		t.Errorf("unexpected line-detail selection: %+v", detail)
	}

	all := metrics.FilterPlans(plans, nil)
	if len(all) != len(plans) {
		t.Errorf("nil filter must keep everything, got %d", len(all))
	}
}

func TestActualsByPair(t *testing.T) {
	reports := []metrics.ProductionReport{
		report("2024-01-01", "line-a", "prod-a", 100, 0, 4, 8),
		report("2024-01-02", "line-a", "prod-a", 200, 0, 4, 8),
		report("2024-01-02", "line-a", "prod-b", 0, 5, 4, 8),
	}

	actuals := metrics.ActualsByPair(reports)

	if actuals["line-a_prod-a"] != 300 {
		t.Errorf("expected 300, got %d", actuals["line-a_prod-a"])
	}
	if _, ok := actuals["line-a_prod-b"]; ok {
		t.Error("zero-output pair must not appear")
	}
}
