/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DISPLAY FIELDS:
  KPI and row DTOs carry both the raw number and a pre-formatted display
  string (thousands separators, currency, percent), plus a band level
  ("good"/"warning"/"critical") resolved from the stored settings. The
  frontend renders these verbatim instead of re-implementing the rounding
  and banding rules.

VALIDATION:
  Validation is done in the store layer, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - metrics/format.go: Display formatting rules
  - settings/settings.go: Band boundaries
*/
package api

import (
	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
)

// =============================================================================
// DASHBOARD RESPONSES
// =============================================================================

// DashboardDTO is the full snapshot one dashboard render consumes.
type DashboardDTO struct {
	Range          RangeDTO           `json:"range"`
	KPIs           KPIBlockDTO        `json:"kpis"`
	Days           []DayRowDTO        `json:"days"`
	Lines          []LineRowDTO       `json:"lines"`
	Products       []ProductRowDTO    `json:"products"`
	Supervisors    []SupervisorRowDTO `json:"supervisors,omitempty"`
	Plans          []PlanHealthDTO    `json:"plans"`
	HealthScore    int                `json:"health_score"`
	Alerts         []AlertDTO         `json:"alerts,omitempty"`
	Widgets        WidgetsDTO         `json:"widgets"`
	RefreshSeconds int                `json:"refresh_seconds"`
}

// LineDetailDTO narrows the dashboard to a single line.
type LineDetailDTO struct {
	LineID      string          `json:"line_id"`
	Range       RangeDTO        `json:"range"`
	KPIs        KPIBlockDTO     `json:"kpis"`
	Days        []DayRowDTO     `json:"days"`
	Products    []ProductRowDTO `json:"products"`
	Plans       []PlanHealthDTO `json:"plans"`
	HealthScore int             `json:"health_score"`
	Alerts      []AlertDTO      `json:"alerts,omitempty"`
}

// RangeDTO echoes the date window a snapshot covers. Empty sides are open.
type RangeDTO struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// KPIBlockDTO is the headline figure block with display strings and band
// levels resolved server-side.
type KPIBlockDTO struct {
	TotalProduced        int    `json:"total_produced"`
	TotalProducedDisplay string `json:"total_produced_display"`
	TotalWaste           int    `json:"total_waste"`

	WasteRatio        float64 `json:"waste_ratio"`
	WasteRatioDisplay string  `json:"waste_ratio_display"`
	WasteLevel        string  `json:"waste_level"`

	AvgAssemblyTime float64 `json:"avg_assembly_time"`
	DailyCapacity   int     `json:"daily_capacity"`

	Efficiency        float64 `json:"efficiency"`
	EfficiencyDisplay string  `json:"efficiency_display"`
	EfficiencyLevel   string  `json:"efficiency_level"`

	TimeEfficiency float64 `json:"time_efficiency"`

	Utilization      float64 `json:"utilization"`
	UtilizationLevel string  `json:"utilization_level"`

	PlanAchievement float64 `json:"plan_achievement"`

	LaborCost           string  `json:"labor_cost"`
	LaborCostDisplay    string  `json:"labor_cost_display"`
	IndirectCost        string  `json:"indirect_cost"`
	IndirectCostDisplay string  `json:"indirect_cost_display"`
	CostPerUnit         string  `json:"cost_per_unit"`
	CostPerUnitDisplay  string  `json:"cost_per_unit_display"`
	StandardCost        string  `json:"standard_cost"`
	CostVariance        float64 `json:"cost_variance"`
	CostVarianceLevel   string  `json:"cost_variance_level"`
}

type DayRowDTO struct {
	Date        string  `json:"date"`
	Produced    int     `json:"produced"`
	Waste       int     `json:"waste"`
	WasteRatio  float64 `json:"waste_ratio"`
	WorkerHours float64 `json:"worker_hours"`
}

type LineRowDTO struct {
	LineID             string  `json:"line_id"`
	Produced           int     `json:"produced"`
	Waste              int     `json:"waste"`
	WasteRatio         float64 `json:"waste_ratio"`
	WorkerHours        float64 `json:"worker_hours"`
	AvgAssemblyTime    float64 `json:"avg_assembly_time"`
	CostPerUnit        string  `json:"cost_per_unit"`
	CostPerUnitDisplay string  `json:"cost_per_unit_display"`
}

type ProductRowDTO struct {
	ProductID       string  `json:"product_id"`
	Produced        int     `json:"produced"`
	Waste           int     `json:"waste"`
	WasteRatio      float64 `json:"waste_ratio"`
	WorkerHours     float64 `json:"worker_hours"`
	AvgAssemblyTime float64 `json:"avg_assembly_time"`
}

type SupervisorRowDTO struct {
	SupervisorID string  `json:"supervisor_id"`
	Produced     int     `json:"produced"`
	Waste        int     `json:"waste"`
	WasteRatio   float64 `json:"waste_ratio"`
	Reports      int     `json:"reports"`
}

type PlanHealthDTO struct {
	PlanID             string  `json:"plan_id"`
	LineID             string  `json:"line_id"`
	ProductID          string  `json:"product_id"`
	Status             string  `json:"status"`
	ElapsedDays        int     `json:"elapsed_days"`
	EstimatedTotalDays int     `json:"estimated_total_days"`
	ElapsedRatio       float64 `json:"elapsed_ratio"`
	CompletionRatio    float64 `json:"completion_ratio"`
	ExpectedCompletion float64 `json:"expected_completion"`
	DelayDays          int     `json:"delay_days"`
	RemainingDays      float64 `json:"remaining_days"`
}

type AlertDTO struct {
	Type    string `json:"type"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

// WidgetsDTO carries the resolved visibility toggles (nil defaults applied).
type WidgetsDTO struct {
	ShowCostChart   bool `json:"show_cost_chart"`
	ShowPlanBoard   bool `json:"show_plan_board"`
	ShowSupervisors bool `json:"show_supervisors"`
	ShowAlertFeed   bool `json:"show_alert_feed"`
}

// =============================================================================
// RECORD REQUESTS AND RESPONSES
// =============================================================================

// ReportDTO mirrors a production report on the wire. The same shape serves
// as create/update request body; an empty id on create is generated.
type ReportDTO struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	LineID           string  `json:"line_id"`
	ProductID        string  `json:"product_id"`
	SupervisorID     string  `json:"supervisor_id"`
	QuantityProduced int     `json:"quantity_produced"`
	QuantityWaste    int     `json:"quantity_waste"`
	WorkersCount     int     `json:"workers_count"`
	WorkHours        float64 `json:"work_hours"`
}

func (d ReportDTO) toRecord() metrics.ProductionReport {
	return metrics.ProductionReport{
		ID:               metrics.ReportID(d.ID),
		Date:             metrics.DateKey(d.Date),
		LineID:           metrics.LineID(d.LineID),
		ProductID:        metrics.ProductID(d.ProductID),
		SupervisorID:     metrics.EmployeeID(d.SupervisorID),
		QuantityProduced: d.QuantityProduced,
		QuantityWaste:    d.QuantityWaste,
		WorkersCount:     d.WorkersCount,
		WorkHours:        d.WorkHours,
	}
}

func reportToDTO(r metrics.ProductionReport) ReportDTO {
	return ReportDTO{
		ID:               string(r.ID),
		Date:             string(r.Date),
		LineID:           string(r.LineID),
		ProductID:        string(r.ProductID),
		SupervisorID:     string(r.SupervisorID),
		QuantityProduced: r.QuantityProduced,
		QuantityWaste:    r.QuantityWaste,
		WorkersCount:     r.WorkersCount,
		WorkHours:        r.WorkHours,
	}
}

// PlanDTO mirrors a production plan on the wire.
type PlanDTO struct {
	ID              string `json:"id"`
	LineID          string `json:"line_id"`
	ProductID       string `json:"product_id"`
	PlannedQuantity int    `json:"planned_quantity"`
	StartDate       string `json:"start_date"`
	Status          string `json:"status"`
}

func (d PlanDTO) toRecord() metrics.ProductionPlan {
	return metrics.ProductionPlan{
		ID:              metrics.PlanID(d.ID),
		LineID:          metrics.LineID(d.LineID),
		ProductID:       metrics.ProductID(d.ProductID),
		PlannedQuantity: d.PlannedQuantity,
		StartDate:       metrics.DateKey(d.StartDate),
		Status:          metrics.PlanStatus(d.Status),
	}
}

func planToDTO(p metrics.ProductionPlan) PlanDTO {
	return PlanDTO{
		ID:              string(p.ID),
		LineID:          string(p.LineID),
		ProductID:       string(p.ProductID),
		PlannedQuantity: p.PlannedQuantity,
		StartDate:       string(p.StartDate),
		Status:          string(p.Status),
	}
}

// ConfigDTO mirrors a standard-time config on the wire.
type ConfigDTO struct {
	LineID          string  `json:"line_id"`
	ProductID       string  `json:"product_id"`
	StandardMinutes float64 `json:"standard_minutes"`
}

func (d ConfigDTO) toRecord() metrics.LineProductConfig {
	return metrics.LineProductConfig{
		LineID:          metrics.LineID(d.LineID),
		ProductID:       metrics.ProductID(d.ProductID),
		StandardMinutes: d.StandardMinutes,
	}
}

// CostCenterDTO mirrors a cost center on the wire.
type CostCenterDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

func (d CostCenterDTO) toRecord() metrics.CostCenter {
	return metrics.CostCenter{
		ID:     metrics.CenterID(d.ID),
		Name:   d.Name,
		Type:   metrics.CostCenterType(d.Type),
		Active: d.Active,
	}
}

// CostValueDTO carries a center's monthly amount. Amount travels as a
// decimal string so no float precision is lost on the wire.
type CostValueDTO struct {
	CenterID string `json:"center_id"`
	Month    string `json:"month"`
	Amount   string `json:"amount"`
}

func (d CostValueDTO) toRecord() metrics.CostCenterValue {
	return metrics.CostCenterValue{
		CenterID: metrics.CenterID(d.CenterID),
		Month:    metrics.MonthKey(d.Month),
		Amount:   metrics.MustParseDecimal(d.Amount),
	}
}

// CostAllocationDTO carries a line's percent share of a center's month.
type CostAllocationDTO struct {
	CenterID string  `json:"center_id"`
	LineID   string  `json:"line_id"`
	Month    string  `json:"month"`
	Percent  float64 `json:"percent"`
}

func (d CostAllocationDTO) toRecord() metrics.CostAllocation {
	return metrics.CostAllocation{
		CenterID: metrics.CenterID(d.CenterID),
		LineID:   metrics.LineID(d.LineID),
		Month:    metrics.MonthKey(d.Month),
		Percent:  d.Percent,
	}
}

// LaborDTO mirrors the process-wide labor parameters.
type LaborDTO struct {
	HourlyRate string  `json:"hourly_rate"`
	MaxWorkers int     `json:"max_workers"`
	DailyHours float64 `json:"daily_hours"`
}

func (d LaborDTO) toRecord() metrics.LaborSettings {
	return metrics.LaborSettings{
		HourlyRate: metrics.MustParseDecimal(d.HourlyRate),
		MaxWorkers: d.MaxWorkers,
		DailyHours: d.DailyHours,
	}
}

// EmployeeDTO mirrors a supervisor account.
type EmployeeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DTO BUILDERS
// =============================================================================

func buildDashboardDTO(snap metrics.Snapshot, cfg settings.Settings, from, to metrics.DateKey) DashboardDTO {
	return DashboardDTO{
		Range:       RangeDTO{From: string(from), To: string(to)},
		KPIs:        buildKPIBlock(snap.KPIs, cfg),
		Days:        buildDayRows(snap.Days),
		Lines:       buildLineRows(snap.Lines),
		Products:    buildProductRows(snap.Products),
		Supervisors: buildSupervisorRows(snap.Supervisors),
		Plans:       buildPlanRows(snap.PlanHealths),
		HealthScore: snap.HealthScore,
		Alerts:      buildAlertRows(snap.Alerts),
		Widgets: WidgetsDTO{
			ShowCostChart:   cfg.Widgets.CostChartVisible(),
			ShowPlanBoard:   cfg.Widgets.PlanBoardVisible(),
			ShowSupervisors: cfg.Widgets.SupervisorsVisible(),
			ShowAlertFeed:   cfg.Widgets.AlertFeedVisible(),
		},
		RefreshSeconds: cfg.RefreshSeconds,
	}
}

func buildLineDetailDTO(line metrics.LineID, snap metrics.Snapshot, cfg settings.Settings, from, to metrics.DateKey) LineDetailDTO {
	return LineDetailDTO{
		LineID:      string(line),
		Range:       RangeDTO{From: string(from), To: string(to)},
		KPIs:        buildKPIBlock(snap.KPIs, cfg),
		Days:        buildDayRows(snap.Days),
		Products:    buildProductRows(snap.Products),
		Plans:       buildPlanRows(snap.PlanHealths),
		HealthScore: snap.HealthScore,
		Alerts:      buildAlertRows(snap.Alerts),
	}
}

func buildKPIBlock(k metrics.KPISnapshot, cfg settings.Settings) KPIBlockDTO {
	return KPIBlockDTO{
		TotalProduced:        k.TotalProduced,
		TotalProducedDisplay: metrics.FormatNumber(float64(k.TotalProduced), 0),
		TotalWaste:           k.TotalWaste,

		WasteRatio:        k.WasteRatio,
		WasteRatioDisplay: metrics.FormatPercent(k.WasteRatio, 1),
		WasteLevel:        string(cfg.Bands.Waste.Level(k.WasteRatio)),

		AvgAssemblyTime: k.AvgAssemblyTime,
		DailyCapacity:   k.DailyCapacity,

		Efficiency:        k.Efficiency,
		EfficiencyDisplay: metrics.FormatPercent(k.Efficiency, 0),
		EfficiencyLevel:   string(cfg.Bands.Efficiency.Level(k.Efficiency)),

		TimeEfficiency: k.TimeEfficiency,

		Utilization:      k.Utilization,
		UtilizationLevel: string(cfg.Bands.Utilization.Level(k.Utilization)),

		PlanAchievement: k.PlanAchievement,

		LaborCost:           k.LaborCost.String(),
		LaborCostDisplay:    metrics.FormatCurrency(k.LaborCost),
		IndirectCost:        k.IndirectCost.String(),
		IndirectCostDisplay: metrics.FormatCurrency(k.IndirectCost),
		CostPerUnit:         k.CostPerUnit.String(),
		CostPerUnitDisplay:  metrics.FormatCurrency(k.CostPerUnit),
		StandardCost:        k.StandardCost.String(),
		CostVariance:        k.CostVariance,
		CostVarianceLevel:   string(cfg.Bands.CostVariance.Level(k.CostVariance)),
	}
}

func buildDayRows(days []metrics.DaySummary) []DayRowDTO {
	rows := make([]DayRowDTO, len(days))
	for i, d := range days {
		rows[i] = DayRowDTO{
			Date:        string(d.Date),
			Produced:    d.Produced,
			Waste:       d.Waste,
			WasteRatio:  d.WasteRatio,
			WorkerHours: d.WorkerHours,
		}
	}
	return rows
}

func buildLineRows(lines []metrics.LineSummary) []LineRowDTO {
	rows := make([]LineRowDTO, len(lines))
	for i, l := range lines {
		rows[i] = LineRowDTO{
			LineID:             string(l.LineID),
			Produced:           l.Produced,
			Waste:              l.Waste,
			WasteRatio:         l.WasteRatio,
			WorkerHours:        l.WorkerHours,
			AvgAssemblyTime:    l.AvgAssemblyTime,
			CostPerUnit:        l.CostPerUnit.String(),
			CostPerUnitDisplay: metrics.FormatCurrency(l.CostPerUnit),
		}
	}
	return rows
}

func buildProductRows(products []metrics.ProductSummary) []ProductRowDTO {
	rows := make([]ProductRowDTO, len(products))
	for i, p := range products {
		rows[i] = ProductRowDTO{
			ProductID:       string(p.ProductID),
			Produced:        p.Produced,
			Waste:           p.Waste,
			WasteRatio:      p.WasteRatio,
			WorkerHours:     p.WorkerHours,
			AvgAssemblyTime: p.AvgAssemblyTime,
		}
	}
	return rows
}

func buildSupervisorRows(supervisors []metrics.SupervisorSummary) []SupervisorRowDTO {
	rows := make([]SupervisorRowDTO, len(supervisors))
	for i, s := range supervisors {
		rows[i] = SupervisorRowDTO{
			SupervisorID: string(s.SupervisorID),
			Produced:     s.Produced,
			Waste:        s.Waste,
			WasteRatio:   s.WasteRatio,
			Reports:      s.Reports,
		}
	}
	return rows
}

func buildPlanRows(healths []metrics.PlanHealth) []PlanHealthDTO {
	rows := make([]PlanHealthDTO, len(healths))
	for i, h := range healths {
		rows[i] = PlanHealthDTO{
			PlanID:             string(h.PlanID),
			LineID:             string(h.LineID),
			ProductID:          string(h.ProductID),
			Status:             string(h.Status),
			ElapsedDays:        h.ElapsedDays,
			EstimatedTotalDays: h.EstimatedTotalDays,
			ElapsedRatio:       h.ElapsedRatio,
			CompletionRatio:    h.CompletionRatio,
			ExpectedCompletion: h.ExpectedCompletion,
			DelayDays:          h.DelayDays,
			RemainingDays:      h.RemainingDays,
		}
	}
	return rows
}

func buildAlertRows(alerts []metrics.Alert) []AlertDTO {
	rows := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		rows[i] = AlertDTO{
			Type:    string(a.Type),
			Icon:    a.Icon,
			Message: a.Message,
		}
	}
	return rows
}
