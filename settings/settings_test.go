package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/production-engine/settings"
)

// =============================================================================
// DEFAULTS AND MERGE
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := settings.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5.0, cfg.Alerts.WastePercent)
	assert.Equal(t, 10.0, cfg.Alerts.CostVariancePercent)
	assert.Equal(t, 75.0, cfg.Alerts.EfficiencyPercent)
	assert.Equal(t, 3, cfg.Alerts.PlanDelayDays)
	assert.Equal(t, 60, cfg.RefreshSeconds)
}

func TestMerge_ZeroOverlayKeepsDefaults(t *testing.T) {
	// GIVEN: An empty overlay document
	// WHEN: Merging over defaults
	// THEN: Nothing changes

	merged := settings.Default().Merge(settings.Settings{})
	assert.Equal(t, settings.Default(), merged)
}

func TestMerge_PartialOverlay(t *testing.T) {
	// GIVEN: An overlay setting only the waste threshold and max workers
	// THEN: Those fields win; everything else stays at its default

	overlay := settings.Settings{}
	overlay.Alerts.WastePercent = 7
	overlay.Labor.MaxWorkers = 25

	merged := settings.Default().Merge(overlay)

	assert.Equal(t, 7.0, merged.Alerts.WastePercent)
	assert.Equal(t, 25, merged.Labor.MaxWorkers)
	assert.Equal(t, 10.0, merged.Alerts.CostVariancePercent)
	assert.Equal(t, 8.0, merged.Labor.DailyHours)
}

func TestMerge_BandReplacesWholesale(t *testing.T) {
	overlay := settings.Settings{}
	overlay.Bands.Efficiency = settings.Band{Good: 90, Warning: 80}

	merged := settings.Default().Merge(overlay)

	assert.Equal(t, settings.Band{Good: 90, Warning: 80}, merged.Bands.Efficiency)
	// Untouched bands keep their defaults.
	assert.Equal(t, settings.Band{Good: 2, Warning: 5, LowerIsBetter: true}, merged.Bands.Waste)
}

func TestMerge_ExplicitWidgetOff(t *testing.T) {
	// GIVEN: A document explicitly hiding the cost chart
	// THEN: The merge keeps the explicit false instead of the visible default

	off := false
	overlay := settings.Settings{}
	overlay.Widgets.ShowCostChart = &off

	merged := settings.Default().Merge(overlay)

	assert.False(t, merged.Widgets.CostChartVisible())
	assert.True(t, merged.Widgets.PlanBoardVisible())
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoad_PartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floorsight.yaml")
	doc := []byte("alerts:\n  waste_percent: 6.5\nlabor:\n  hourly_rate: 14\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cfg, err := settings.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6.5, cfg.Alerts.WastePercent)
	assert.Equal(t, 14.0, cfg.Labor.HourlyRate)
	assert.Equal(t, 75.0, cfg.Alerts.EfficiencyPercent)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := settings.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := settings.Parse([]byte("alerts: ["))
	assert.Error(t, err)
}

func TestParse_InvalidDocumentRejected(t *testing.T) {
	// A good boundary below warning on a higher-is-better band is nonsense.
	_, err := settings.Parse([]byte("bands:\n  efficiency: {good: 50, warning: 70}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "efficiency")
}

// =============================================================================
// RESOLVED VIEWS
// =============================================================================

func TestAlertThresholds_Conversion(t *testing.T) {
	th := settings.Default().AlertThresholds()

	assert.Equal(t, 5.0, th.WastePercent)
	assert.Equal(t, 10.0, th.CostVariancePercent)
	assert.Equal(t, 75.0, th.EfficiencyPercent)
	assert.Equal(t, 3, th.PlanDelayDays)
}

func TestLaborSettings_Conversion(t *testing.T) {
	labor := settings.Default().LaborSettings()

	assert.Equal(t, "10", labor.HourlyRate.String())
	assert.Equal(t, 10, labor.MaxWorkers)
	assert.Equal(t, 8.0, labor.DailyHours)
}

func TestBand_Level(t *testing.T) {
	higher := settings.Band{Good: 85, Warning: 70}
	assert.Equal(t, settings.BandGood, higher.Level(92))
	assert.Equal(t, settings.BandGood, higher.Level(85))
	assert.Equal(t, settings.BandWarning, higher.Level(70))
	assert.Equal(t, settings.BandCritical, higher.Level(69.9))

	lower := settings.Band{Good: 2, Warning: 5, LowerIsBetter: true}
	assert.Equal(t, settings.BandGood, lower.Level(1.5))
	assert.Equal(t, settings.BandWarning, lower.Level(4))
	assert.Equal(t, settings.BandCritical, lower.Level(5.1))
}
