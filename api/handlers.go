/*
handlers.go - HTTP API handlers for the production dashboard engine

PURPOSE:
  Exposes the metrics engine and record stores via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Dashboard:
    GET    /api/dashboard              Full snapshot for a date range
    GET    /api/lines/{lineID}         Single-line detail snapshot

  Reports:
    GET    /api/reports                List reports (from/to/line/supervisor)
    POST   /api/reports                Create report (id generated if empty)
    GET    /api/reports/{id}           Get one report
    PUT    /api/reports/{id}           Update report
    DELETE /api/reports/{id}           Delete report

  Plans:
    GET    /api/plans                  List all plans
    POST   /api/plans                  Create plan
    GET    /api/plans/{id}             Get one plan
    PUT    /api/plans/{id}             Update plan
    DELETE /api/plans/{id}             Delete plan

  Configs:
    GET    /api/configs                List standard-time configs
    POST   /api/configs                Upsert a (line, product) config
    DELETE /api/configs/{lineID}/{productID}

  Cost ledger:
    GET    /api/costs/centers          List cost centers
    POST   /api/costs/centers          Create/update center
    DELETE /api/costs/centers/{id}     Delete center
    GET    /api/costs/values           List monthly values
    POST   /api/costs/values           Upsert (center, month) amount
    GET    /api/costs/allocations      List allocations
    POST   /api/costs/allocations      Upsert (center, line, month) percent

  Labor / employees / settings:
    GET    /api/labor                  Get labor parameters
    PUT    /api/labor                  Replace labor parameters
    GET    /api/employees              List supervisor accounts
    POST   /api/employees              Create/update account
    GET    /api/settings               Resolved settings document
    PUT    /api/settings               Partial settings update (merge)

  Scenarios / ops:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario
    GET    /api/health                 Liveness probe
    GET    /metrics                    Prometheus metrics

REQUEST FLOW:
  1. Parse HTTP request
  2. Call store / engine
  3. Serialize response
  4. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 500: Internal errors
  Store sentinel errors map to statuses in writeStoreError.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.
  Deploy behind the plant network boundary.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is everything the HTTP layer needs from persistence. Both
// store/sqlite and store/memory satisfy it.
type Store interface {
	metrics.Source

	SaveReport(ctx context.Context, r metrics.ProductionReport) error
	GetReport(ctx context.Context, id metrics.ReportID) (metrics.ProductionReport, error)
	DeleteReport(ctx context.Context, id metrics.ReportID) error

	SaveConfig(ctx context.Context, c metrics.LineProductConfig) error
	DeleteConfig(ctx context.Context, line metrics.LineID, product metrics.ProductID) error

	SavePlan(ctx context.Context, p metrics.ProductionPlan) error
	GetPlan(ctx context.Context, id metrics.PlanID) (metrics.ProductionPlan, error)
	DeletePlan(ctx context.Context, id metrics.PlanID) error

	SaveCostCenter(ctx context.Context, c metrics.CostCenter) error
	DeleteCostCenter(ctx context.Context, id metrics.CenterID) error
	SaveCostCenterValue(ctx context.Context, v metrics.CostCenterValue) error
	SaveCostAllocation(ctx context.Context, a metrics.CostAllocation) error

	SaveLaborSettings(ctx context.Context, l metrics.LaborSettings) error

	SaveEmployee(ctx context.Context, e store.Employee) error
	Employees(ctx context.Context) ([]store.Employee, error)
	CountDisabledEmployees(ctx context.Context) (int, error)

	SaveSettings(ctx context.Context, cfg settings.Settings) error
	Settings(ctx context.Context) (settings.Settings, error)

	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       Store
	Engine      *metrics.Engine
	Instruments *Instruments

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(st Store, instruments *Instruments) *Handler {
	return &Handler{
		Store:       st,
		Engine:      &metrics.Engine{},
		Instruments: instruments,
	}
}

// =============================================================================
// SNAPSHOT COMPUTATION
// =============================================================================

// computeSnapshot assembles one engine pass for the date range and runs it.
func (h *Handler) computeSnapshot(ctx context.Context, from, to metrics.DateKey) (metrics.Snapshot, settings.Settings, error) {
	cfg, err := h.Store.Settings(ctx)
	if err != nil {
		return metrics.Snapshot{}, settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	in, err := metrics.LoadInput(ctx, h.Store, from, to)
	if err != nil {
		return metrics.Snapshot{}, settings.Settings{}, fmt.Errorf("load records: %w", err)
	}

	snap, err := h.finishSnapshot(ctx, in, cfg)
	return snap, cfg, err
}

// computeLineSnapshot is computeSnapshot narrowed to one line.
func (h *Handler) computeLineSnapshot(ctx context.Context, line metrics.LineID, from, to metrics.DateKey) (metrics.Snapshot, settings.Settings, error) {
	cfg, err := h.Store.Settings(ctx)
	if err != nil {
		return metrics.Snapshot{}, settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	in, err := metrics.LoadLineInput(ctx, h.Store, line, from, to)
	if err != nil {
		return metrics.Snapshot{}, settings.Settings{}, fmt.Errorf("load records: %w", err)
	}

	snap, err := h.finishSnapshot(ctx, in, cfg)
	return snap, cfg, err
}

// SnapshotDTO computes one dashboard snapshot outside the HTTP stack. The
// snapshot subcommand renders this to stdout.
func (h *Handler) SnapshotDTO(ctx context.Context, from, to metrics.DateKey) (DashboardDTO, error) {
	snap, cfg, err := h.computeSnapshot(ctx, from, to)
	if err != nil {
		return DashboardDTO{}, err
	}
	return buildDashboardDTO(snap, cfg, from, to), nil
}

// LineSnapshotDTO is SnapshotDTO narrowed to one line.
func (h *Handler) LineSnapshotDTO(ctx context.Context, line metrics.LineID, from, to metrics.DateKey) (LineDetailDTO, error) {
	snap, cfg, err := h.computeLineSnapshot(ctx, line, from, to)
	if err != nil {
		return LineDetailDTO{}, err
	}
	return buildLineDetailDTO(line, snap, cfg, from, to), nil
}

func (h *Handler) finishSnapshot(ctx context.Context, in metrics.Input, cfg settings.Settings) (metrics.Snapshot, error) {
	in.Thresholds = cfg.AlertThresholds()
	in.Labor = resolveLabor(in.Labor, cfg)

	disabled, err := h.Store.CountDisabledEmployees(ctx)
	if err != nil {
		return metrics.Snapshot{}, fmt.Errorf("count disabled accounts: %w", err)
	}
	in.DisabledAccounts = disabled

	start := time.Now()
	snap := h.Engine.Compute(in)
	if h.Instruments != nil {
		h.Instruments.ComputeDuration.Observe(time.Since(start).Seconds())
		h.Instruments.HealthScore.Set(float64(snap.HealthScore))
	}
	return snap, nil
}

// resolveLabor prefers the stored labor row; a store with no labor row yet
// falls back to the settings document's labor section.
func resolveLabor(stored metrics.LaborSettings, cfg settings.Settings) metrics.LaborSettings {
	if stored.MaxWorkers == 0 && stored.DailyHours == 0 && stored.HourlyRate.IsZero() {
		return cfg.LaborSettings()
	}
	return stored
}

// =============================================================================
// DASHBOARD HANDLERS
// =============================================================================

// GetDashboard returns the full snapshot for the requested date range.
// Empty from/to leave that side of the range open.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	snap, cfg, err := h.computeSnapshot(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, buildDashboardDTO(snap, cfg, from, to))
}

// GetLineDetail returns the single-line snapshot. Plans are filtered to the
// line and to the in_progress/planned statuses the line board shows.
func (h *Handler) GetLineDetail(w http.ResponseWriter, r *http.Request) {
	line := metrics.LineID(chi.URLParam(r, "lineID"))
	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	snap, cfg, err := h.computeLineSnapshot(r.Context(), line, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute line detail", err)
		return
	}

	writeJSON(w, http.StatusOK, buildLineDetailDTO(line, snap, cfg, from, to))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ListReports returns reports in a range, optionally narrowed by line or
// supervisor query params.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	var reports []metrics.ProductionReport
	var err error

	switch {
	case r.URL.Query().Get("line") != "":
		reports, err = h.Store.ReportsForLine(ctx, metrics.LineID(r.URL.Query().Get("line")), from, to)
	case r.URL.Query().Get("supervisor") != "":
		reports, err = h.Store.ReportsForSupervisor(ctx, metrics.EmployeeID(r.URL.Query().Get("supervisor")), from, to)
	default:
		reports, err = h.Store.ReportsBetween(ctx, from, to)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	dtos := make([]ReportDTO, len(reports))
	for i, rep := range reports {
		dtos[i] = reportToDTO(rep)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateReport stores a new shift report. An empty id is generated.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	record := req.toRecord()
	if err := h.Store.SaveReport(r.Context(), record); err != nil {
		writeStoreError(w, "Failed to save report", err)
		return
	}

	writeJSON(w, http.StatusCreated, reportToDTO(record))
}

// GetReport returns a single report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := metrics.ReportID(chi.URLParam(r, "id"))

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get report", err)
		return
	}

	writeJSON(w, http.StatusOK, reportToDTO(report))
}

// UpdateReport replaces a report. The path id wins over any body id.
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id := metrics.ReportID(chi.URLParam(r, "id"))

	if _, err := h.Store.GetReport(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to get report", err)
		return
	}

	var req ReportDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = string(id)

	record := req.toRecord()
	if err := h.Store.SaveReport(r.Context(), record); err != nil {
		writeStoreError(w, "Failed to save report", err)
		return
	}

	writeJSON(w, http.StatusOK, reportToDTO(record))
}

// DeleteReport removes a report.
func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id := metrics.ReportID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteReport(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete report", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns every plan. Status filtering happens client-side or in
// the dashboard's engine pass, not here.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.Plans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanDTO, len(plans))
	for i, p := range plans {
		dtos[i] = planToDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePlan stores a new production plan. An empty id is generated; an
// empty status starts as planned.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = string(metrics.StatusPlanned)
	}

	record := req.toRecord()
	if err := h.Store.SavePlan(r.Context(), record); err != nil {
		writeStoreError(w, "Failed to save plan", err)
		return
	}

	writeJSON(w, http.StatusCreated, planToDTO(record))
}

// GetPlan returns a single plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := metrics.PlanID(chi.URLParam(r, "id"))

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get plan", err)
		return
	}

	writeJSON(w, http.StatusOK, planToDTO(plan))
}

// UpdatePlan replaces a plan. The path id wins over any body id.
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := metrics.PlanID(chi.URLParam(r, "id"))

	if _, err := h.Store.GetPlan(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to get plan", err)
		return
	}

	var req PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = string(id)

	record := req.toRecord()
	if err := h.Store.SavePlan(r.Context(), record); err != nil {
		writeStoreError(w, "Failed to save plan", err)
		return
	}

	writeJSON(w, http.StatusOK, planToDTO(record))
}

// DeletePlan removes a plan.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := metrics.PlanID(chi.URLParam(r, "id"))

	if err := h.Store.DeletePlan(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete plan", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// ListConfigs returns the standard-time table in first-configured order.
func (h *Handler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Store.LineProductConfigs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list configs", err)
		return
	}

	dtos := make([]ConfigDTO, len(configs))
	for i, c := range configs {
		dtos[i] = ConfigDTO{
			LineID:          string(c.LineID),
			ProductID:       string(c.ProductID),
			StandardMinutes: c.StandardMinutes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveConfig upserts the standard time for a (line, product) pair.
func (h *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.SaveConfig(r.Context(), req.toRecord()); err != nil {
		writeStoreError(w, "Failed to save config", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// DeleteConfig removes a pair's standard time.
func (h *Handler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	line := metrics.LineID(chi.URLParam(r, "lineID"))
	product := metrics.ProductID(chi.URLParam(r, "productID"))

	if err := h.Store.DeleteConfig(r.Context(), line, product); err != nil {
		writeStoreError(w, "Failed to delete config", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// COST LEDGER HANDLERS
// =============================================================================

// ListCostCenters returns all cost centers.
func (h *Handler) ListCostCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.Store.CostCenters(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost centers", err)
		return
	}

	dtos := make([]CostCenterDTO, len(centers))
	for i, c := range centers {
		dtos[i] = CostCenterDTO{
			ID:     string(c.ID),
			Name:   c.Name,
			Type:   string(c.Type),
			Active: c.Active,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveCostCenter creates or updates a cost center. An empty id is generated.
func (h *Handler) SaveCostCenter(w http.ResponseWriter, r *http.Request) {
	var req CostCenterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := h.Store.SaveCostCenter(r.Context(), req.toRecord()); err != nil {
		writeStoreError(w, "Failed to save cost center", err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// DeleteCostCenter removes a center. Its values and allocations become
// inert; the resolver only reads centers that still exist.
func (h *Handler) DeleteCostCenter(w http.ResponseWriter, r *http.Request) {
	id := metrics.CenterID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteCostCenter(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete cost center", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCostValues returns the monthly value ledger.
func (h *Handler) ListCostValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.Store.CostCenterValues(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost values", err)
		return
	}

	dtos := make([]CostValueDTO, len(values))
	for i, v := range values {
		dtos[i] = CostValueDTO{
			CenterID: string(v.CenterID),
			Month:    string(v.Month),
			Amount:   v.Amount.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveCostValue upserts a (center, month) amount.
func (h *Handler) SaveCostValue(w http.ResponseWriter, r *http.Request) {
	var req CostValueDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.SaveCostCenterValue(r.Context(), req.toRecord()); err != nil {
		writeStoreError(w, "Failed to save cost value", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// ListCostAllocations returns the allocation ledger.
func (h *Handler) ListCostAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.Store.CostAllocations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost allocations", err)
		return
	}

	dtos := make([]CostAllocationDTO, len(allocations))
	for i, a := range allocations {
		dtos[i] = CostAllocationDTO{
			CenterID: string(a.CenterID),
			LineID:   string(a.LineID),
			Month:    string(a.Month),
			Percent:  a.Percent,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveCostAllocation upserts a (center, line, month) percent.
func (h *Handler) SaveCostAllocation(w http.ResponseWriter, r *http.Request) {
	var req CostAllocationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.SaveCostAllocation(r.Context(), req.toRecord()); err != nil {
		writeStoreError(w, "Failed to save cost allocation", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// LABOR, EMPLOYEE AND SETTINGS HANDLERS
// =============================================================================

// GetLabor returns the process-wide labor parameters. An unset store falls
// back to the settings document, mirroring the dashboard computation.
func (h *Handler) GetLabor(w http.ResponseWriter, r *http.Request) {
	labor, err := h.Store.LaborSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get labor settings", err)
		return
	}

	cfg, err := h.Store.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}

	resolved := resolveLabor(labor, cfg)
	writeJSON(w, http.StatusOK, LaborDTO{
		HourlyRate: resolved.HourlyRate.String(),
		MaxWorkers: resolved.MaxWorkers,
		DailyHours: resolved.DailyHours,
	})
}

// SaveLabor replaces the labor parameters.
func (h *Handler) SaveLabor(w http.ResponseWriter, r *http.Request) {
	var req LaborDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.SaveLaborSettings(r.Context(), req.toRecord()); err != nil {
		writeStoreError(w, "Failed to save labor settings", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// ListEmployees returns all supervisor accounts.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{
			ID:     string(e.ID),
			Name:   e.Name,
			Active: e.Active,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates or updates a supervisor account.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	emp := store.Employee{
		ID:     metrics.EmployeeID(req.ID),
		Name:   req.Name,
		Active: req.Active,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to save employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// GetSettings returns the resolved settings document.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// UpdateSettings merges the request body over the stored document. Absent
// fields keep their current values; the merged result is validated before
// it replaces the stored document.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var overlay settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&overlay); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	current, err := h.Store.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}

	merged := current.Merge(overlay)
	if err := merged.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings", err)
		return
	}

	if err := h.Store.SaveSettings(r.Context(), merged); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	writeJSON(w, http.StatusOK, merged)
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// dateRangeParams reads optional from/to query params, writing a 400 and
// returning ok=false when either is malformed.
func dateRangeParams(w http.ResponseWriter, r *http.Request) (from, to metrics.DateKey, ok bool) {
	from = metrics.DateKey(r.URL.Query().Get("from"))
	if from != "" && !from.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", nil)
		return "", "", false
	}
	to = metrics.DateKey(r.URL.Query().Get("to"))
	if to != "" && !to.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", nil)
		return "", "", false
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store sentinel errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, store.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
