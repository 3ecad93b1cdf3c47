// Package memory provides a map-backed record store for tests and demos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store"
)

// =============================================================================
// MEMORY STORE - Mutex-guarded maps with deterministic sorted reads
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	reports     map[metrics.ReportID]metrics.ProductionReport
	configs     []metrics.LineProductConfig
	plans       map[metrics.PlanID]metrics.ProductionPlan
	centers     map[metrics.CenterID]metrics.CostCenter
	values      map[valueKey]metrics.CostCenterValue
	allocations map[allocationKey]metrics.CostAllocation
	labor       metrics.LaborSettings
	employees   map[metrics.EmployeeID]store.Employee
	settings    *settings.Settings
}

type valueKey struct {
	Center metrics.CenterID
	Month  metrics.MonthKey
}

type allocationKey struct {
	Center metrics.CenterID
	Line   metrics.LineID
	Month  metrics.MonthKey
}

func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

// Reset drops every record. Scenario loaders call this before seeding.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

func (s *Store) resetLocked() {
	s.reports = make(map[metrics.ReportID]metrics.ProductionReport)
	s.configs = nil
	s.plans = make(map[metrics.PlanID]metrics.ProductionPlan)
	s.centers = make(map[metrics.CenterID]metrics.CostCenter)
	s.values = make(map[valueKey]metrics.CostCenterValue)
	s.allocations = make(map[allocationKey]metrics.CostAllocation)
	s.labor = metrics.LaborSettings{}
	s.employees = make(map[metrics.EmployeeID]store.Employee)
	s.settings = nil
}

// =============================================================================
// REPORTS
// =============================================================================

// SaveReport inserts or replaces a report by ID.
func (s *Store) SaveReport(_ context.Context, r metrics.ProductionReport) error {
	if err := store.ValidateReport(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *Store) GetReport(_ context.Context, id metrics.ReportID) (metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return metrics.ProductionReport{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) DeleteReport(_ context.Context, id metrics.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *Store) ReportsBetween(_ context.Context, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectReports(func(r metrics.ProductionReport) bool {
		return inRange(r.Date, from, to)
	}), nil
}

func (s *Store) ReportsForLine(_ context.Context, line metrics.LineID, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectReports(func(r metrics.ProductionReport) bool {
		return r.LineID == line && inRange(r.Date, from, to)
	}), nil
}

func (s *Store) ReportsForSupervisor(_ context.Context, supervisor metrics.EmployeeID, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectReports(func(r metrics.ProductionReport) bool {
		return r.SupervisorID == supervisor && inRange(r.Date, from, to)
	}), nil
}

// selectReports filters under the read lock and sorts by date then ID so
// reads are deterministic regardless of map iteration order.
func (s *Store) selectReports(keep func(metrics.ProductionReport) bool) []metrics.ProductionReport {
	out := make([]metrics.ProductionReport, 0, len(s.reports))
	for _, r := range s.reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// inRange treats zero bounds as open ends.
func inRange(d, from, to metrics.DateKey) bool {
	if !from.IsZero() && d < from {
		return false
	}
	if !to.IsZero() && d > to {
		return false
	}
	return true
}

// =============================================================================
// STANDARD-TIME CONFIGS
// =============================================================================

// SaveConfig inserts or replaces the config for a (line, product) pair.
// Input order is preserved so the first-match rule stays stable.
func (s *Store) SaveConfig(_ context.Context, c metrics.LineProductConfig) error {
	if err := store.ValidateConfig(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.configs {
		if existing.LineID == c.LineID && existing.ProductID == c.ProductID {
			s.configs[i] = c
			return nil
		}
	}
	s.configs = append(s.configs, c)
	return nil
}

func (s *Store) DeleteConfig(_ context.Context, line metrics.LineID, product metrics.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.configs {
		if existing.LineID == line && existing.ProductID == product {
			s.configs = append(s.configs[:i], s.configs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) LineProductConfigs(_ context.Context) ([]metrics.LineProductConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.LineProductConfig, len(s.configs))
	copy(out, s.configs)
	return out, nil
}

// =============================================================================
// PLANS
// =============================================================================

func (s *Store) SavePlan(_ context.Context, p metrics.ProductionPlan) error {
	if err := store.ValidatePlan(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = p
	return nil
}

func (s *Store) GetPlan(_ context.Context, id metrics.PlanID) (metrics.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return metrics.ProductionPlan{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) DeletePlan(_ context.Context, id metrics.PlanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

func (s *Store) Plans(_ context.Context) ([]metrics.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.ProductionPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// COST LEDGER
// =============================================================================

func (s *Store) SaveCostCenter(_ context.Context, c metrics.CostCenter) error {
	if err := store.ValidateCostCenter(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centers[c.ID] = c
	return nil
}

func (s *Store) DeleteCostCenter(_ context.Context, id metrics.CenterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.centers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.centers, id)
	return nil
}

func (s *Store) CostCenters(_ context.Context) ([]metrics.CostCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.CostCenter, 0, len(s.centers))
	for _, c := range s.centers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveCostCenterValue upserts the monthly value for a (center, month).
func (s *Store) SaveCostCenterValue(_ context.Context, v metrics.CostCenterValue) error {
	if err := store.ValidateCostCenterValue(v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[valueKey{v.CenterID, v.Month}] = v
	return nil
}

func (s *Store) CostCenterValues(_ context.Context) ([]metrics.CostCenterValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.CostCenterValue, 0, len(s.values))
	for _, v := range s.values {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CenterID != out[j].CenterID {
			return out[i].CenterID < out[j].CenterID
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// SaveCostAllocation upserts the share for a (center, line, month).
func (s *Store) SaveCostAllocation(_ context.Context, a metrics.CostAllocation) error {
	if err := store.ValidateCostAllocation(a); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allocations[allocationKey{a.CenterID, a.LineID, a.Month}] = a
	return nil
}

func (s *Store) CostAllocations(_ context.Context) ([]metrics.CostAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.CostAllocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CenterID != out[j].CenterID {
			return out[i].CenterID < out[j].CenterID
		}
		if out[i].LineID != out[j].LineID {
			return out[i].LineID < out[j].LineID
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// =============================================================================
// LABOR, EMPLOYEES, SETTINGS
// =============================================================================

func (s *Store) SaveLaborSettings(_ context.Context, l metrics.LaborSettings) error {
	if err := store.ValidateLaborSettings(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labor = l
	return nil
}

func (s *Store) LaborSettings(_ context.Context) (metrics.LaborSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labor, nil
}

func (s *Store) SaveEmployee(_ context.Context, e store.Employee) error {
	if err := store.ValidateEmployee(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
	return nil
}

func (s *Store) Employees(_ context.Context) ([]store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountDisabledEmployees feeds the dashboard's informational alert.
func (s *Store) CountDisabledEmployees(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.employees {
		if !e.Active {
			count++
		}
	}
	return count, nil
}

// SaveSettings persists the resolved settings document.
func (s *Store) SaveSettings(_ context.Context, cfg settings.Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := cfg
	s.settings = &copied
	return nil
}

// Settings returns the stored document, or defaults when none was saved.
func (s *Store) Settings(_ context.Context) (settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return settings.Default(), nil
	}
	return *s.settings, nil
}
