/*
Package settings resolves dashboard configuration against defaults.

PURPOSE:
  Holds the tunable half of the dashboard: alert thresholds, KPI band
  boundaries, labor parameters and widget visibility. Plant managers adjust
  these without code changes; everything unset falls back to a default, so
  a partial document is always safe to apply.

YAML SCHEMA:
  alerts:
    waste_percent: 5
    cost_variance_percent: 10
    efficiency_percent: 75
    plan_delay_days: 3
  bands:
    efficiency: {good: 85, warning: 70}
    waste: {good: 2, warning: 5, lower_is_better: true}
  labor:
    hourly_rate: 10
    max_workers: 10
    daily_hours: 8
  widgets:
    show_cost_chart: true
  refresh_seconds: 60

MERGE SEMANTICS:
  Defaults().Merge(loaded) resolves a stored or uploaded document: numeric
  fields override when positive, bands override when either boundary is set,
  widget flags override when present at all. The zero Settings value merges
  to pure defaults.

USAGE:
  cfg, err := settings.Load("floorsight.yaml")
  thresholds := cfg.AlertThresholds()
  labor := cfg.LaborSettings()

SEE ALSO:
  - metrics/alerts.go: Consumes the resolved thresholds
  - api: Serves and accepts the same document as JSON
*/
package settings

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/floorsight/production-engine/metrics"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Settings is the full configuration document. Fields carry both YAML and
// JSON tags: files load as YAML, the API exchanges the same shape as JSON.
type Settings struct {
	Alerts         AlertConfig  `yaml:"alerts" json:"alerts"`
	Bands          BandConfig   `yaml:"bands" json:"bands"`
	Labor          LaborConfig  `yaml:"labor" json:"labor"`
	Widgets        WidgetConfig `yaml:"widgets" json:"widgets"`
	RefreshSeconds int          `yaml:"refresh_seconds" json:"refreshSeconds"`
}

// AlertConfig carries the alert rule thresholds.
type AlertConfig struct {
	WastePercent        float64 `yaml:"waste_percent" json:"wastePercent"`
	CostVariancePercent float64 `yaml:"cost_variance_percent" json:"costVariancePercent"`
	EfficiencyPercent   float64 `yaml:"efficiency_percent" json:"efficiencyPercent"`
	PlanDelayDays       int     `yaml:"plan_delay_days" json:"planDelayDays"`
}

// Band colors a KPI value: good at or past the Good boundary, warning at or
// past the Warning boundary, critical beyond. LowerIsBetter flips the
// comparison for metrics like waste where small numbers are the healthy ones.
type Band struct {
	Good          float64 `yaml:"good" json:"good"`
	Warning       float64 `yaml:"warning" json:"warning"`
	LowerIsBetter bool    `yaml:"lower_is_better" json:"lowerIsBetter"`
}

// BandConfig holds one band per headline KPI.
type BandConfig struct {
	Efficiency   Band `yaml:"efficiency" json:"efficiency"`
	Waste        Band `yaml:"waste" json:"waste"`
	CostVariance Band `yaml:"cost_variance" json:"costVariance"`
	Utilization  Band `yaml:"utilization" json:"utilization"`
}

// LaborConfig carries the plant-wide labor parameters.
type LaborConfig struct {
	HourlyRate float64 `yaml:"hourly_rate" json:"hourlyRate"`
	MaxWorkers int     `yaml:"max_workers" json:"maxWorkers"`
	DailyHours float64 `yaml:"daily_hours" json:"dailyHours"`
}

// WidgetConfig toggles dashboard panels. Pointers distinguish "explicitly
// off" from "not mentioned"; nil resolves to the widget's default.
type WidgetConfig struct {
	ShowCostChart   *bool `yaml:"show_cost_chart" json:"showCostChart"`
	ShowPlanBoard   *bool `yaml:"show_plan_board" json:"showPlanBoard"`
	ShowSupervisors *bool `yaml:"show_supervisors" json:"showSupervisors"`
	ShowAlertFeed   *bool `yaml:"show_alert_feed" json:"showAlertFeed"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration the dashboard runs with out of the box.
func Default() Settings {
	return Settings{
		Alerts: AlertConfig{
			WastePercent:        5,
			CostVariancePercent: 10,
			EfficiencyPercent:   75,
			PlanDelayDays:       3,
		},
		Bands: BandConfig{
			Efficiency:   Band{Good: 85, Warning: 70},
			Waste:        Band{Good: 2, Warning: 5, LowerIsBetter: true},
			CostVariance: Band{Good: 5, Warning: 15, LowerIsBetter: true},
			Utilization:  Band{Good: 80, Warning: 60},
		},
		Labor: LaborConfig{
			HourlyRate: 10,
			MaxWorkers: 10,
			DailyHours: 8,
		},
		RefreshSeconds: 60,
	}
}

// =============================================================================
// MERGE AND LOAD
// =============================================================================

// Merge resolves an overlay against s: positive numeric fields win, bands
// replace wholesale once either boundary is set, widget flags carry over
// whenever present. s itself is not modified.
func (s Settings) Merge(overlay Settings) Settings {
	out := s

	if overlay.Alerts.WastePercent > 0 {
		out.Alerts.WastePercent = overlay.Alerts.WastePercent
	}
	if overlay.Alerts.CostVariancePercent > 0 {
		out.Alerts.CostVariancePercent = overlay.Alerts.CostVariancePercent
	}
	if overlay.Alerts.EfficiencyPercent > 0 {
		out.Alerts.EfficiencyPercent = overlay.Alerts.EfficiencyPercent
	}
	if overlay.Alerts.PlanDelayDays > 0 {
		out.Alerts.PlanDelayDays = overlay.Alerts.PlanDelayDays
	}

	out.Bands.Efficiency = mergeBand(out.Bands.Efficiency, overlay.Bands.Efficiency)
	out.Bands.Waste = mergeBand(out.Bands.Waste, overlay.Bands.Waste)
	out.Bands.CostVariance = mergeBand(out.Bands.CostVariance, overlay.Bands.CostVariance)
	out.Bands.Utilization = mergeBand(out.Bands.Utilization, overlay.Bands.Utilization)

	if overlay.Labor.HourlyRate > 0 {
		out.Labor.HourlyRate = overlay.Labor.HourlyRate
	}
	if overlay.Labor.MaxWorkers > 0 {
		out.Labor.MaxWorkers = overlay.Labor.MaxWorkers
	}
	if overlay.Labor.DailyHours > 0 {
		out.Labor.DailyHours = overlay.Labor.DailyHours
	}

	if overlay.Widgets.ShowCostChart != nil {
		out.Widgets.ShowCostChart = overlay.Widgets.ShowCostChart
	}
	if overlay.Widgets.ShowPlanBoard != nil {
		out.Widgets.ShowPlanBoard = overlay.Widgets.ShowPlanBoard
	}
	if overlay.Widgets.ShowSupervisors != nil {
		out.Widgets.ShowSupervisors = overlay.Widgets.ShowSupervisors
	}
	if overlay.Widgets.ShowAlertFeed != nil {
		out.Widgets.ShowAlertFeed = overlay.Widgets.ShowAlertFeed
	}

	if overlay.RefreshSeconds > 0 {
		out.RefreshSeconds = overlay.RefreshSeconds
	}
	return out
}

func mergeBand(base, overlay Band) Band {
	if overlay.Good == 0 && overlay.Warning == 0 {
		return base
	}
	return overlay
}

// Load reads a YAML document, resolves it against defaults and validates
// the result.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse resolves a raw YAML document against defaults.
func Parse(data []byte) (Settings, error) {
	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	resolved := Default().Merge(overlay)
	if err := resolved.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}
	return resolved, nil
}

// Validate rejects documents the dashboard could not run with.
func (s Settings) Validate() error {
	if s.Alerts.WastePercent < 0 || s.Alerts.CostVariancePercent < 0 ||
		s.Alerts.EfficiencyPercent < 0 || s.Alerts.PlanDelayDays < 0 {
		return fmt.Errorf("alert thresholds must not be negative")
	}
	if err := s.Bands.Efficiency.check("efficiency"); err != nil {
		return err
	}
	if err := s.Bands.Waste.check("waste"); err != nil {
		return err
	}
	if err := s.Bands.CostVariance.check("cost_variance"); err != nil {
		return err
	}
	if err := s.Bands.Utilization.check("utilization"); err != nil {
		return err
	}
	if s.Labor.HourlyRate < 0 {
		return fmt.Errorf("labor hourly_rate must not be negative")
	}
	if s.Labor.MaxWorkers < 0 {
		return fmt.Errorf("labor max_workers must not be negative")
	}
	if s.Labor.DailyHours < 0 || s.Labor.DailyHours > 24 {
		return fmt.Errorf("labor daily_hours %.1f outside [0, 24]", s.Labor.DailyHours)
	}
	if s.RefreshSeconds < 1 {
		return fmt.Errorf("refresh_seconds must be at least 1")
	}
	return nil
}

func (b Band) check(name string) error {
	if b.Good < 0 || b.Warning < 0 {
		return fmt.Errorf("band %s: boundaries must not be negative", name)
	}
	if b.LowerIsBetter && b.Good > b.Warning {
		return fmt.Errorf("band %s: good boundary %.1f above warning %.1f on a lower-is-better scale", name, b.Good, b.Warning)
	}
	if !b.LowerIsBetter && b.Good < b.Warning {
		return fmt.Errorf("band %s: good boundary %.1f below warning %.1f", name, b.Good, b.Warning)
	}
	return nil
}

// =============================================================================
// RESOLVED VIEWS
// =============================================================================

// AlertThresholds converts the document into the engine's threshold block.
func (s Settings) AlertThresholds() metrics.AlertThresholds {
	return metrics.AlertThresholds{
		WastePercent:        s.Alerts.WastePercent,
		CostVariancePercent: s.Alerts.CostVariancePercent,
		EfficiencyPercent:   s.Alerts.EfficiencyPercent,
		PlanDelayDays:       s.Alerts.PlanDelayDays,
	}
}

// LaborSettings converts the labor block into the engine's representation.
func (s Settings) LaborSettings() metrics.LaborSettings {
	return metrics.LaborSettings{
		HourlyRate: decimal.NewFromFloat(s.Labor.HourlyRate),
		MaxWorkers: s.Labor.MaxWorkers,
		DailyHours: s.Labor.DailyHours,
	}
}

// BandLevel is the color a KPI card renders with.
type BandLevel string

const (
	BandGood     BandLevel = "good"
	BandWarning  BandLevel = "warning"
	BandCritical BandLevel = "critical"
)

// Level places a value on the band.
func (b Band) Level(v float64) BandLevel {
	if b.LowerIsBetter {
		switch {
		case v <= b.Good:
			return BandGood
		case v <= b.Warning:
			return BandWarning
		default:
			return BandCritical
		}
	}
	switch {
	case v >= b.Good:
		return BandGood
	case v >= b.Warning:
		return BandWarning
	default:
		return BandCritical
	}
}

// Widget resolution. Every panel defaults to visible.

func (w WidgetConfig) CostChartVisible() bool   { return w.ShowCostChart == nil || *w.ShowCostChart }
func (w WidgetConfig) PlanBoardVisible() bool   { return w.ShowPlanBoard == nil || *w.ShowPlanBoard }
func (w WidgetConfig) SupervisorsVisible() bool { return w.ShowSupervisors == nil || *w.ShowSupervisors }
func (w WidgetConfig) AlertFeedVisible() bool   { return w.ShowAlertFeed == nil || *w.ShowAlertFeed }
