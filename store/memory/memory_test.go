package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store"
	"github.com/floorsight/production-engine/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func seedReport(t *testing.T, s *memory.Store, id, date, line string, produced int) {
	t.Helper()
	err := s.SaveReport(context.Background(), metrics.ProductionReport{
		ID:               metrics.ReportID(id),
		Date:             metrics.DateKey(date),
		LineID:           metrics.LineID(line),
		ProductID:        "prod-a",
		SupervisorID:     "sup-1",
		QuantityProduced: produced,
		WorkersCount:     4,
		WorkHours:        8,
	})
	require.NoError(t, err)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestMemory_ReportRoundTrip(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)

	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.QuantityProduced)

	require.NoError(t, s.DeleteReport(ctx, "r1"))
	_, err = s.GetReport(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_ReportsBetween_SortedAndBounded(t *testing.T) {
	// GIVEN: Reports on three dates, inserted out of order
	// WHEN: Reading a two-day window
	// THEN: Only the window comes back, sorted by date

	s := memory.New()
	ctx := context.Background()
	seedReport(t, s, "r3", "2024-01-12", "line-a", 30)
	seedReport(t, s, "r1", "2024-01-10", "line-a", 10)
	seedReport(t, s, "r2", "2024-01-11", "line-a", 20)

	reports, err := s.ReportsBetween(ctx, "2024-01-10", "2024-01-11")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, metrics.DateKey("2024-01-10"), reports[0].Date)
	assert.Equal(t, metrics.DateKey("2024-01-11"), reports[1].Date)
}

func TestMemory_ReportsBetween_OpenEnds(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 10)
	seedReport(t, s, "r2", "2024-02-10", "line-a", 20)

	all, err := s.ReportsBetween(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tail, err := s.ReportsBetween(ctx, "2024-02-01", "")
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, metrics.ReportID("r2"), tail[0].ID)
}

func TestMemory_ReportsForLineAndSupervisor(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 10)
	seedReport(t, s, "r2", "2024-01-10", "line-b", 20)

	byLine, err := s.ReportsForLine(ctx, "line-b", "", "")
	require.NoError(t, err)
	require.Len(t, byLine, 1)
	assert.Equal(t, metrics.ReportID("r2"), byLine[0].ID)

	bySup, err := s.ReportsForSupervisor(ctx, "sup-1", "", "")
	require.NoError(t, err)
	assert.Len(t, bySup, 2)
}

func TestMemory_SaveReport_Validates(t *testing.T) {
	s := memory.New()

	err := s.SaveReport(context.Background(), metrics.ProductionReport{ID: "r1", Date: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	var verr *store.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "date", verr.Field)
}

// =============================================================================
// CONFIGS, PLANS, LEDGER
// =============================================================================

func TestMemory_ConfigUpsertKeepsOrder(t *testing.T) {
	// Replacing a pair's standard time must not move it behind later entries.
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 12}))
	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-b", StandardMinutes: 20}))
	require.NoError(t, s.SaveConfig(ctx, metrics.LineProductConfig{LineID: "line-a", ProductID: "prod-a", StandardMinutes: 15}))

	configs, err := s.LineProductConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, metrics.ProductID("prod-a"), configs[0].ProductID)
	assert.Equal(t, 15.0, configs[0].StandardMinutes)
}

func TestMemory_PlanRoundTrip(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	plan := metrics.ProductionPlan{
		ID: "p1", LineID: "line-a", ProductID: "prod-a",
		PlannedQuantity: 1000, StartDate: "2024-01-05", Status: metrics.StatusInProgress,
	}
	require.NoError(t, s.SavePlan(ctx, plan))

	got, err := s.GetPlan(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, plan, got)

	assert.ErrorIs(t, s.DeletePlan(ctx, "p2"), store.ErrNotFound)
}

func TestMemory_CostLedgerUpserts(t *testing.T) {
	// GIVEN: Two saves for the same (center, month) value
	// THEN: The second replaces the first instead of accumulating

	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.SaveCostCenter(ctx, metrics.CostCenter{ID: "cc-1", Name: "Maintenance", Type: metrics.CostIndirect, Active: true}))
	require.NoError(t, s.SaveCostCenterValue(ctx, metrics.CostCenterValue{CenterID: "cc-1", Month: "2024-01", Amount: metrics.MustParseDecimal("1000")}))
	require.NoError(t, s.SaveCostCenterValue(ctx, metrics.CostCenterValue{CenterID: "cc-1", Month: "2024-01", Amount: metrics.MustParseDecimal("2500")}))
	require.NoError(t, s.SaveCostAllocation(ctx, metrics.CostAllocation{CenterID: "cc-1", LineID: "line-a", Month: "2024-01", Percent: 40}))

	values, err := s.CostCenterValues(ctx)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.True(t, values[0].Amount.Equal(metrics.MustParseDecimal("2500")))

	allocations, err := s.CostAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, 40.0, allocations[0].Percent)
}

func TestMemory_AllocationPercentBounds(t *testing.T) {
	s := memory.New()
	err := s.SaveCostAllocation(context.Background(), metrics.CostAllocation{
		CenterID: "cc-1", LineID: "line-a", Month: "2024-01", Percent: 140,
	})
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

// =============================================================================
// EMPLOYEES AND SETTINGS
// =============================================================================

func TestMemory_CountDisabledEmployees(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e1", Name: "Ana", Active: true}))
	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e2", Name: "Ben", Active: false}))
	require.NoError(t, s.SaveEmployee(ctx, store.Employee{ID: "e3", Name: "Cho", Active: false}))

	count, err := s.CountDisabledEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemory_SettingsDefaultUntilSaved(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	cfg, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), cfg)

	custom := settings.Default()
	custom.Alerts.WastePercent = 7
	require.NoError(t, s.SaveSettings(ctx, custom))

	cfg, err = s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Alerts.WastePercent)
}

// =============================================================================
// RESET AND ENGINE WIRING
// =============================================================================

func TestMemory_ResetDropsEverything(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)
	require.NoError(t, s.SavePlan(ctx, metrics.ProductionPlan{
		ID: "p1", LineID: "line-a", ProductID: "prod-a",
		PlannedQuantity: 10, StartDate: "2024-01-01", Status: metrics.StatusPlanned,
	}))

	require.NoError(t, s.Reset(ctx))

	reports, err := s.ReportsBetween(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, reports)
	plans, err := s.Plans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestMemory_ImplementsEngineSource(t *testing.T) {
	// GIVEN: A seeded store
	// WHEN: Assembling engine input through the source interfaces
	// THEN: The records arrive exactly as saved

	s := memory.New()
	ctx := context.Background()
	seedReport(t, s, "r1", "2024-01-10", "line-a", 100)
	require.NoError(t, s.SaveLaborSettings(ctx, metrics.LaborSettings{
		HourlyRate: metrics.MustParseDecimal("10"), MaxWorkers: 10, DailyHours: 8,
	}))

	var src metrics.Source = s
	in, err := metrics.LoadInput(ctx, src, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, in.Reports, 1)
	assert.Equal(t, 10, in.Labor.MaxWorkers)
}
