/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	production data for testing and demos. Each scenario creates supervisors,
	configs, plans, cost records, and shift reports that steer the dashboard
	into a specific state.

AVAILABLE SCENARIOS:

	steady-line:   Two healthy lines, plans complete, no alerts
	cost-overrun:  Unit cost far above standard, cost danger alert
	delayed-plan:  Oversized plan far behind schedule, delay warning
	high-waste:    Waste ratio over threshold, waste danger alert

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save labor settings and supervisor accounts
 3. Save standard-time configs and plans
 4. Save cost-center records where the scenario needs them
 5. Save shift reports dated relative to today

DATE HANDLING:

	Reports are dated over the last few days so the default dashboard range
	picks them up on any day the scenario is loaded. Overhead is booked per
	month touched by those dates, sized by how many seeded days fall in each
	month, so per-unit cost stays stable across month boundaries.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "cost-overrun"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Snapshot computation the scenarios feed
  - metrics/alerts.go: Alert rules each scenario exercises
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/store"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "steady-line",
		Name:        "Steady Line",
		Description: "Two healthy lines running at standard cost with plans complete",
	},
	{
		ID:          "cost-overrun",
		Name:        "Cost Overrun",
		Description: "Heavy crew and energy spend push unit cost far above standard",
	},
	{
		ID:          "delayed-plan",
		Name:        "Delayed Plan",
		Description: "Oversized plan weeks behind what line capacity can deliver",
	},
	{
		ID:          "high-waste",
		Name:        "High Waste",
		Description: "Scrap rate over threshold; reporting supervisor account disabled",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = "" // Clear current scenario on reset

	var err error
	switch req.ScenarioID {
	case "steady-line":
		err = h.loadSteadyLineScenario(ctx)
	case "cost-overrun":
		err = h.loadCostOverrunScenario(ctx)
	case "delayed-plan":
		err = h.loadDelayedPlanScenario(ctx)
	case "high-waste":
		err = h.loadHighWasteScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	if h.Instruments != nil {
		h.Instruments.ScenarioLoads.WithLabelValues(req.ScenarioID).Inc()
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all records and the current scenario marker.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSteadyLineScenario(ctx context.Context) error {
	if err := h.seedLabor(ctx); err != nil {
		return err
	}

	supervisors := []store.Employee{
		{ID: "sup-maria", Name: "Maria Gonzalez", Active: true},
		{ID: "sup-tomas", Name: "Tomas Eder", Active: true},
	}
	for _, s := range supervisors {
		if err := h.Store.SaveEmployee(ctx, s); err != nil {
			return err
		}
	}

	configs := []metrics.LineProductConfig{
		{LineID: "line-1", ProductID: "alpha", StandardMinutes: 9},
		{LineID: "line-2", ProductID: "beta", StandardMinutes: 12},
	}
	for _, c := range configs {
		if err := h.Store.SaveConfig(ctx, c); err != nil {
			return err
		}
	}

	days := lastDays(5)

	// Five clean shifts per line. Labor plus allocated overhead lands
	// exactly on the standard cost, so cost variance reads 0.0.
	if err := h.seedReports(ctx, "steady-line", "line-1", "alpha", "sup-maria", days, 380, 6, 5, 7.5); err != nil {
		return err
	}
	if err := h.seedReports(ctx, "steady-line", "line-2", "beta", "sup-tomas", days, 150, 2, 4, 7.5); err != nil {
		return err
	}

	center := metrics.CostCenter{ID: "cc-maint", Name: "Plant Maintenance", Type: metrics.CostIndirect, Active: true}
	shares := []lineShare{{"line-1", 40}, {"line-2", 25}}
	if err := h.seedDailyOverhead(ctx, center, decimal.NewFromInt(600), days, shares); err != nil {
		return err
	}

	plans := []metrics.ProductionPlan{
		{ID: "plan-steady-1", LineID: "line-1", ProductID: "alpha", PlannedQuantity: 1900, StartDate: metrics.Today().AddDays(-5), Status: metrics.StatusInProgress},
		{ID: "plan-steady-2", LineID: "line-2", ProductID: "beta", PlannedQuantity: 750, StartDate: metrics.Today().AddDays(-5), Status: metrics.StatusInProgress},
	}
	for _, p := range plans {
		if err := h.Store.SavePlan(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadCostOverrunScenario(ctx context.Context) error {
	if err := h.seedLabor(ctx); err != nil {
		return err
	}

	if err := h.Store.SaveEmployee(ctx, store.Employee{ID: "sup-irene", Name: "Irene Kovacs", Active: true}); err != nil {
		return err
	}

	if err := h.Store.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-3", ProductID: "gamma", StandardMinutes: 10}); err != nil {
		return err
	}

	days := lastDays(4)

	// Six workers on a job standardized for less, plus a full energy
	// allocation. Unit cost ends up roughly 57% over the 3.33 standard.
	if err := h.seedReports(ctx, "cost-overrun", "line-3", "gamma", "sup-irene", days, 250, 4, 6, 8); err != nil {
		return err
	}

	center := metrics.CostCenter{ID: "cc-energy", Name: "Energy and Utilities", Type: metrics.CostIndirect, Active: true}
	if err := h.seedDailyOverhead(ctx, center, decimal.NewFromInt(350), days, []lineShare{{"line-3", 100}}); err != nil {
		return err
	}

	plan := metrics.ProductionPlan{
		ID: "plan-rush", LineID: "line-3", ProductID: "gamma",
		PlannedQuantity: 1000, StartDate: metrics.Today().AddDays(-4), Status: metrics.StatusInProgress,
	}
	return h.Store.SavePlan(ctx, plan)
}

func (h *Handler) loadDelayedPlanScenario(ctx context.Context) error {
	if err := h.seedLabor(ctx); err != nil {
		return err
	}

	if err := h.Store.SaveEmployee(ctx, store.Employee{ID: "sup-piotr", Name: "Piotr Nowak", Active: true}); err != nil {
		return err
	}

	if err := h.Store.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-4", ProductID: "delta", StandardMinutes: 15}); err != nil {
		return err
	}

	// 150 units a day against a 6000-unit plan started two weeks ago.
	// At 360 units/day of capacity the plan sits well past the delay
	// threshold whichever day it is loaded on.
	if err := h.seedReports(ctx, "delayed-plan", "line-4", "delta", "sup-piotr", lastDays(3), 150, 2, 5, 8); err != nil {
		return err
	}

	plan := metrics.ProductionPlan{
		ID: "plan-big-order", LineID: "line-4", ProductID: "delta",
		PlannedQuantity: 6000, StartDate: metrics.Today().AddDays(-14), Status: metrics.StatusInProgress,
	}
	return h.Store.SavePlan(ctx, plan)
}

func (h *Handler) loadHighWasteScenario(ctx context.Context) error {
	if err := h.seedLabor(ctx); err != nil {
		return err
	}

	// The reporting supervisor's account was disabled after the scrap
	// incident, so the info alert rides along with the waste alert.
	if err := h.Store.SaveEmployee(ctx, store.Employee{ID: "sup-dana", Name: "Dana Petrova", Active: false}); err != nil {
		return err
	}

	if err := h.Store.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-5", ProductID: "epsilon", StandardMinutes: 12}); err != nil {
		return err
	}

	days := lastDays(4)

	// 25 scrapped units against 220 good ones per shift puts the waste
	// ratio above 10%, past the default 5% threshold.
	if err := h.seedReports(ctx, "high-waste", "line-5", "epsilon", "sup-dana", days, 220, 25, 5, 7); err != nil {
		return err
	}

	plan := metrics.ProductionPlan{
		ID: "plan-epsilon", LineID: "line-5", ProductID: "epsilon",
		PlannedQuantity: 880, StartDate: metrics.Today().AddDays(-4), Status: metrics.StatusInProgress,
	}
	return h.Store.SavePlan(ctx, plan)
}

// =============================================================================
// SEED HELPERS
// =============================================================================

type lineShare struct {
	Line    metrics.LineID
	Percent float64
}

// seedLabor writes the labor parameters every scenario shares.
func (h *Handler) seedLabor(ctx context.Context) error {
	return h.Store.SaveLaborSettings(ctx, metrics.LaborSettings{
		HourlyRate: decimal.NewFromInt(20),
		MaxWorkers: 12,
		DailyHours: 8,
	})
}

// seedReports writes one identical shift report per day.
func (h *Handler) seedReports(ctx context.Context, scenario string, line metrics.LineID, product metrics.ProductID, supervisor metrics.EmployeeID, days []metrics.DateKey, produced, waste, workers int, hours float64) error {
	for i, day := range days {
		report := metrics.ProductionReport{
			ID:               metrics.ReportID(fmt.Sprintf("%s-%s-%d", scenario, line, i+1)),
			Date:             day,
			LineID:           line,
			ProductID:        product,
			SupervisorID:     supervisor,
			QuantityProduced: produced,
			QuantityWaste:    waste,
			WorkersCount:     workers,
			WorkHours:        hours,
		}
		if err := h.Store.SaveReport(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

// seedDailyOverhead books the center's monthly values and line allocations
// for every month the seeded days touch. Each month's value is perDay times
// the number of seeded days in it, so the scope total is perDay*len(days)
// no matter where the month boundary falls.
func (h *Handler) seedDailyOverhead(ctx context.Context, center metrics.CostCenter, perDay decimal.Decimal, days []metrics.DateKey, shares []lineShare) error {
	if err := h.Store.SaveCostCenter(ctx, center); err != nil {
		return err
	}

	var months []metrics.MonthKey
	counts := make(map[metrics.MonthKey]int)
	for _, d := range days {
		m := d.Month()
		if counts[m] == 0 {
			months = append(months, m)
		}
		counts[m]++
	}

	for _, m := range months {
		value := metrics.CostCenterValue{
			CenterID: center.ID,
			Month:    m,
			Amount:   perDay.Mul(decimal.NewFromInt(int64(counts[m]))),
		}
		if err := h.Store.SaveCostCenterValue(ctx, value); err != nil {
			return err
		}
		for _, s := range shares {
			alloc := metrics.CostAllocation{CenterID: center.ID, LineID: s.Line, Month: m, Percent: s.Percent}
			if err := h.Store.SaveCostAllocation(ctx, alloc); err != nil {
				return err
			}
		}
	}
	return nil
}

// lastDays returns the n consecutive days ending yesterday, oldest first.
func lastDays(n int) []metrics.DateKey {
	today := metrics.Today()
	days := make([]metrics.DateKey, 0, n)
	for i := n; i >= 1; i-- {
		days = append(days, today.AddDays(-i))
	}
	return days
}
