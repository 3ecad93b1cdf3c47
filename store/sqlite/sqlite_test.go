package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store"
	"github.com/floorsight/production-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedReport(t *testing.T, s *sqlite.Store, id, date, line string, produced int) {
	t.Helper()
	err := s.SaveReport(context.Background(), metrics.ProductionReport{
		ID:               metrics.ReportID(id),
		Date:             metrics.DateKey(date),
		LineID:           metrics.LineID(line),
		ProductID:        "prod-a",
		SupervisorID:     "sup-1",
		QuantityProduced: produced,
		QuantityWaste:    2,
		WorkersCount:     4,
		WorkHours:        8,
	})
	require.NoError(t, err)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestSQLite_ReportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)

	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, metrics.DateKey("2024-01-10"), got.Date)
	assert.Equal(t, 100, got.QuantityProduced)
	assert.Equal(t, 8.0, got.WorkHours)

	require.NoError(t, s.DeleteReport(ctx, "r1"))
	_, err = s.GetReport(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_SaveReportUpserts(t *testing.T) {
	// GIVEN: A saved report
	// WHEN: Saving again under the same ID with corrected counts
	// THEN: The row is replaced, not duplicated

	s := newTestStore(t)
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)
	seedReport(t, s, "r1", "2024-01-10", "line-a", 140)

	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 140, got.QuantityProduced)

	all, err := s.ReportsBetween(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_ReportsBetween_SortedAndBounded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedReport(t, s, "r3", "2024-01-12", "line-a", 30)
	seedReport(t, s, "r1", "2024-01-10", "line-a", 10)
	seedReport(t, s, "r2", "2024-01-11", "line-a", 20)

	reports, err := s.ReportsBetween(ctx, "2024-01-10", "2024-01-11")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, metrics.ReportID("r1"), reports[0].ID)
	assert.Equal(t, metrics.ReportID("r2"), reports[1].ID)

	tail, err := s.ReportsBetween(ctx, "2024-01-11", "")
	require.NoError(t, err)
	assert.Len(t, tail, 2)
}

func TestSQLite_ReportsForLineAndSupervisor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 10)
	seedReport(t, s, "r2", "2024-01-10", "line-b", 20)

	byLine, err := s.ReportsForLine(ctx, "line-b", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, byLine, 1)
	assert.Equal(t, metrics.ReportID("r2"), byLine[0].ID)

	bySup, err := s.ReportsForSupervisor(ctx, "sup-1", "", "")
	require.NoError(t, err)
	assert.Len(t, bySup, 2)

	none, err := s.ReportsForLine(ctx, "line-z", "", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_SaveReport_Validates(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveReport(context.Background(), metrics.ProductionReport{ID: "r1", Date: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

// =============================================================================
// CONFIGS AND PLANS
// =============================================================================

func TestSQLite_ConfigUpsertKeepsOrder(t *testing.T) {
	// The engine resolves duplicate pairs by first-configured position, so
	// re-saving a pair must not move it behind later entries.

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 12}))
	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-b", StandardMinutes: 20}))
	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 15}))

	configs, err := s.LineProductConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, metrics.ProductID("prod-a"), configs[0].ProductID)
	assert.Equal(t, 15.0, configs[0].StandardMinutes)
	assert.Equal(t, metrics.ProductID("prod-b"), configs[1].ProductID)

	require.NoError(t, s.DeleteConfig(ctx, "line-a", "prod-b"))
	assert.ErrorIs(t, s.DeleteConfig(ctx, "line-a", "prod-b"), store.ErrNotFound)
}

func TestSQLite_PlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := metrics.ProductionPlan{
		ID: "p1", LineID: "line-a", ProductID: "prod-a",
		PlannedQuantity: 1000, StartDate: "2024-01-05", Status: metrics.StatusInProgress,
	}
	require.NoError(t, s.SavePlan(ctx, plan))

	got, err := s.GetPlan(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, plan, got)

	plan.Status = metrics.StatusCompleted
	require.NoError(t, s.SavePlan(ctx, plan))
	got, err = s.GetPlan(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, metrics.StatusCompleted, got.Status)

	_, err = s.GetPlan(ctx, "p2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// =============================================================================
// COST LEDGER
// =============================================================================

func TestSQLite_CostLedgerRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCostCenter(ctx, metrics.CostCenter{ID: "cc-1", Name: "Maintenance", Type: metrics.CostIndirect, Active: true}))
	require.NoError(t, s.SaveCostCenter(ctx, metrics.CostCenter{ID: "cc-2", Name: "Raw Materials", Type: metrics.CostDirect, Active: true}))
	require.NoError(t, s.SaveCostCenterValue(ctx, metrics.CostCenterValue{CenterID: "cc-1", Month: "2024-01", Amount: metrics.MustParseDecimal("1000.50")}))
	require.NoError(t, s.SaveCostCenterValue(ctx, metrics.CostCenterValue{CenterID: "cc-1", Month: "2024-01", Amount: metrics.MustParseDecimal("2500")}))
	require.NoError(t, s.SaveCostAllocation(ctx, metrics.CostAllocation{CenterID: "cc-1", LineID: "line-a", Month: "2024-01", Percent: 40}))

	centers, err := s.CostCenters(ctx)
	require.NoError(t, err)
	require.Len(t, centers, 2)
	assert.Equal(t, metrics.CostIndirect, centers[0].Type)
	assert.True(t, centers[1].Active)

	values, err := s.CostCenterValues(ctx)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.True(t, values[0].Amount.Equal(metrics.MustParseDecimal("2500")))

	allocations, err := s.CostAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, 40.0, allocations[0].Percent)

	require.NoError(t, s.DeleteCostCenter(ctx, "cc-2"))
	assert.ErrorIs(t, s.DeleteCostCenter(ctx, "cc-2"), store.ErrNotFound)
}

func TestSQLite_DecimalAmountSurvivesRoundTrip(t *testing.T) {
	// Amounts travel as strings so no float precision is lost in storage.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCostCenterValue(ctx, metrics.CostCenterValue{
		CenterID: "cc-1", Month: "2024-01", Amount: metrics.MustParseDecimal("12345.67"),
	}))

	values, err := s.CostCenterValues(ctx)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "12345.67", values[0].Amount.String())
}

// =============================================================================
// LABOR, EMPLOYEES, SETTINGS
// =============================================================================

func TestSQLite_LaborSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	unset, err := s.LaborSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, unset.MaxWorkers)

	require.NoError(t, s.SaveLaborSettings(ctx, metrics.LaborSettings{
		HourlyRate: metrics.MustParseDecimal("12.5"), MaxWorkers: 10, DailyHours: 8,
	}))
	require.NoError(t, s.SaveLaborSettings(ctx, metrics.LaborSettings{
		HourlyRate: metrics.MustParseDecimal("13"), MaxWorkers: 12, DailyHours: 8,
	}))

	labor, err := s.LaborSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "13", labor.HourlyRate.String())
	assert.Equal(t, 12, labor.MaxWorkers)
}

func TestSQLite_EmployeesAndDisabledCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e1", Name: "Ana", Active: true}))
	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e2", Name: "Ben", Active: false}))
	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e1", Name: "Ana R", Active: true}))

	employees, err := s.Employees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ana R", employees[0].Name)

	count, err := s.CountDisabledEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLite_SettingsDefaultUntilSaved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), cfg)

	custom := settings.Default()
	custom.Alerts.WastePercent = 7
	off := false
	custom.Widgets.ShowSupervisors = &off
	require.NoError(t, s.SaveSettings(ctx, custom))

	cfg, err = s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Alerts.WastePercent)
	assert.False(t, cfg.Widgets.SupervisorsVisible())
}

// =============================================================================
// RESET, PERSISTENCE, ENGINE WIRING
// =============================================================================

func TestSQLite_ResetDropsEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)
	require.NoError(t, s.SaveCostCenter(ctx, metrics.CostCenter{ID: "cc-1", Name: "Maintenance", Type: metrics.CostIndirect, Active: true}))

	require.NoError(t, s.Reset(ctx))

	reports, err := s.ReportsBetween(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, reports)
	centers, err := s.CostCenters(ctx)
	require.NoError(t, err)
	assert.Empty(t, centers)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	// GIVEN: A file-backed store with one report
	// WHEN: Closing and reopening the same path
	// THEN: The report is still there

	path := filepath.Join(t.TempDir(), "floorsight.db")
	ctx := context.Background()

	first, err := sqlite.New(path)
	require.NoError(t, err)
	seedReport(t, first, "r1", "2024-01-10", "line-a", 100)
	require.NoError(t, first.Close())

	second, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := second.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.QuantityProduced)
}

func TestSQLite_FeedsEngineInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)
	seedReport(t, s, "r2", "2024-01-10", "line-b", 50)
	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 12}))
	require.NoError(t, s.SaveLaborSettings(ctx, metrics.LaborSettings{
		HourlyRate: metrics.MustParseDecimal("10"), MaxWorkers: 10, DailyHours: 8,
	}))

	var src metrics.Source = s
	in, err := metrics.LoadInput(ctx, src, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Len(t, in.Reports, 2)
	assert.Len(t, in.Configs, 1)
	assert.Equal(t, 10, in.Labor.MaxWorkers)

	lineIn, err := metrics.LoadLineInput(ctx, src, "line-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, lineIn.Reports, 1)
	assert.Equal(t, metrics.ReportID("r1"), lineIn.Reports[0].ID)
}
