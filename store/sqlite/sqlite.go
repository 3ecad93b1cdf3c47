/*
Package sqlite provides the SQLite-backed production store.

PURPOSE:
  Implements every persistence surface the engine and API read and write
  (production reports, standard-time configs, plans, the cost-center ledger,
  labor settings, employees, dashboard settings) on a single SQLite file.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  production_reports:   One row per shift report
  line_product_configs: Standard assembly minutes per (line, product)
  production_plans:     Quantity targets with lifecycle status
  cost_centers:         Overhead accounts (direct or indirect)
  cost_center_values:   One monetary amount per (center, month)
  cost_allocations:     Percent of a center's month carried by a line
  labor_settings:       Single-row process-wide labor parameters
  employees:            Supervisor accounts (active flag drives one alert)
  dashboard_settings:   Single-row JSON settings document

INDEXES:
  - idx_reports_line_date: Line-detail report scans (hot path)
  - idx_reports_supervisor_date: Supervisor projections
  - idx_allocations_line_month: Indirect-cost resolution per line

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/floorsight.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  input, err := metrics.LoadInput(ctx, store, from, to)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: Shared validators and error taxonomy
  - store/memory: In-memory implementation for tests and demo seeds
  - metrics/source.go: The read interfaces this store satisfies
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/floorsight/production-engine/metrics"
	"github.com/floorsight/production-engine/settings"
	"github.com/floorsight/production-engine/store"
)

// Store implements the production persistence surfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Shift reports
	CREATE TABLE IF NOT EXISTS production_reports (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		line_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		supervisor_id TEXT NOT NULL,
		quantity_produced INTEGER NOT NULL,
		quantity_waste INTEGER NOT NULL DEFAULT 0,
		workers_count INTEGER NOT NULL,
		work_hours REAL NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_date
		ON production_reports(date);
	CREATE INDEX IF NOT EXISTS idx_reports_line_date
		ON production_reports(line_id, date);
	CREATE INDEX IF NOT EXISTS idx_reports_supervisor_date
		ON production_reports(supervisor_id, date);

	-- Standard assembly minutes. Rowid order is the duplicate-pair
	-- tie-break: an upsert keeps the original position.
	CREATE TABLE IF NOT EXISTS line_product_configs (
		line_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		standard_minutes REAL NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (line_id, product_id)
	);

	-- Production plans
	CREATE TABLE IF NOT EXISTS production_plans (
		id TEXT PRIMARY KEY,
		line_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		planned_quantity INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_status
		ON production_plans(status);
	CREATE INDEX IF NOT EXISTS idx_plans_line
		ON production_plans(line_id);

	-- Cost-center ledger
	CREATE TABLE IF NOT EXISTS cost_centers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cost_center_values (
		center_id TEXT NOT NULL,
		month TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (center_id, month)
	);

	CREATE TABLE IF NOT EXISTS cost_allocations (
		center_id TEXT NOT NULL,
		line_id TEXT NOT NULL,
		month TEXT NOT NULL,
		percent REAL NOT NULL,
		PRIMARY KEY (center_id, line_id, month)
	);

	CREATE INDEX IF NOT EXISTS idx_allocations_line_month
		ON cost_allocations(line_id, month);

	-- Process-wide labor parameters (single row)
	CREATE TABLE IF NOT EXISTS labor_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		hourly_rate TEXT NOT NULL,
		max_workers INTEGER NOT NULL,
		daily_hours REAL NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Supervisor accounts
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	-- Dashboard settings document (single row)
	CREATE TABLE IF NOT EXISTS dashboard_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		config_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears every table. Scenario loaders call this before seeding.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM production_reports;
		DELETE FROM line_product_configs;
		DELETE FROM production_plans;
		DELETE FROM cost_centers;
		DELETE FROM cost_center_values;
		DELETE FROM cost_allocations;
		DELETE FROM labor_settings;
		DELETE FROM employees;
		DELETE FROM dashboard_settings;
	`)
	if err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}

// =============================================================================
// PRODUCTION REPORTS
// =============================================================================

// SaveReport inserts or replaces a shift report by ID.
func (s *Store) SaveReport(ctx context.Context, r metrics.ProductionReport) error {
	if err := store.ValidateReport(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO production_reports
		(id, date, line_id, product_id, supervisor_id,
		 quantity_produced, quantity_waste, workers_count, work_hours,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			line_id = excluded.line_id,
			product_id = excluded.product_id,
			supervisor_id = excluded.supervisor_id,
			quantity_produced = excluded.quantity_produced,
			quantity_waste = excluded.quantity_waste,
			workers_count = excluded.workers_count,
			work_hours = excluded.work_hours,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		string(r.ID), string(r.Date), string(r.LineID), string(r.ProductID),
		string(r.SupervisorID), r.QuantityProduced, r.QuantityWaste,
		r.WorkersCount, r.WorkHours, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID.
func (s *Store) GetReport(ctx context.Context, id metrics.ReportID) (metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, line_id, product_id, supervisor_id,
		       quantity_produced, quantity_waste, workers_count, work_hours
		FROM production_reports
		WHERE id = ?`, string(id))

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return metrics.ProductionReport{}, store.ErrNotFound
	}
	if err != nil {
		return metrics.ProductionReport{}, fmt.Errorf("failed to get report: %w", err)
	}
	return r, nil
}

// DeleteReport removes a report, returning ErrNotFound for unknown IDs.
func (s *Store) DeleteReport(ctx context.Context, id metrics.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteOne(ctx, "DELETE FROM production_reports WHERE id = ?", string(id))
}

// ReportsBetween returns reports in the date range, ordered by date then ID.
func (s *Store) ReportsBetween(ctx context.Context, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := boundReportQuery("", nil, from, to)
	return s.queryReports(ctx, query, args...)
}

// ReportsForLine narrows ReportsBetween to one line.
func (s *Store) ReportsForLine(ctx context.Context, line metrics.LineID, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := boundReportQuery("line_id = ?", []any{string(line)}, from, to)
	return s.queryReports(ctx, query, args...)
}

// ReportsForSupervisor narrows ReportsBetween to one supervisor.
func (s *Store) ReportsForSupervisor(ctx context.Context, supervisor metrics.EmployeeID, from, to metrics.DateKey) ([]metrics.ProductionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := boundReportQuery("supervisor_id = ?", []any{string(supervisor)}, from, to)
	return s.queryReports(ctx, query, args...)
}

// boundReportQuery assembles the report select with an optional filter
// clause. An empty date key leaves that side of the range open.
func boundReportQuery(filter string, args []any, from, to metrics.DateKey) (string, []any) {
	query := `
		SELECT id, date, line_id, product_id, supervisor_id,
		       quantity_produced, quantity_waste, workers_count, work_hours
		FROM production_reports
		WHERE 1=1`
	if filter != "" {
		query += " AND " + filter
	}
	if from != "" {
		query += " AND date >= ?"
		args = append(args, string(from))
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, string(to))
	}
	query += " ORDER BY date ASC, id ASC"
	return query, args
}

func (s *Store) queryReports(ctx context.Context, query string, args ...any) ([]metrics.ProductionReport, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []metrics.ProductionReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (metrics.ProductionReport, error) {
	var r metrics.ProductionReport
	var id, date, lineID, productID, supervisorID string

	err := row.Scan(&id, &date, &lineID, &productID, &supervisorID,
		&r.QuantityProduced, &r.QuantityWaste, &r.WorkersCount, &r.WorkHours)
	if err != nil {
		return r, err
	}

	r.ID = metrics.ReportID(id)
	r.Date = metrics.DateKey(date)
	r.LineID = metrics.LineID(lineID)
	r.ProductID = metrics.ProductID(productID)
	r.SupervisorID = metrics.EmployeeID(supervisorID)
	return r, nil
}

// =============================================================================
// LINE PRODUCT CONFIGS
// =============================================================================

// SaveConfig inserts or updates the standard time for a (line, product) pair.
// An update keeps the pair's original rowid, so the first-configured position
// survives edits.
func (s *Store) SaveConfig(ctx context.Context, c metrics.LineProductConfig) error {
	if err := store.ValidateConfig(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO line_product_configs (line_id, product_id, standard_minutes, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(line_id, product_id) DO UPDATE SET
			standard_minutes = excluded.standard_minutes
	`

	_, err := s.db.ExecContext(ctx, query,
		string(c.LineID), string(c.ProductID), c.StandardMinutes,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// DeleteConfig removes a pair's standard time.
func (s *Store) DeleteConfig(ctx context.Context, line metrics.LineID, product metrics.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteOne(ctx,
		"DELETE FROM line_product_configs WHERE line_id = ? AND product_id = ?",
		string(line), string(product))
}

// LineProductConfigs returns all configs in first-configured order.
func (s *Store) LineProductConfigs(ctx context.Context) ([]metrics.LineProductConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT line_id, product_id, standard_minutes FROM line_product_configs ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	var configs []metrics.LineProductConfig
	for rows.Next() {
		var c metrics.LineProductConfig
		var lineID, productID string
		if err := rows.Scan(&lineID, &productID, &c.StandardMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		c.LineID = metrics.LineID(lineID)
		c.ProductID = metrics.ProductID(productID)
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// =============================================================================
// PRODUCTION PLANS
// =============================================================================

// SavePlan inserts or replaces a plan by ID.
func (s *Store) SavePlan(ctx context.Context, p metrics.ProductionPlan) error {
	if err := store.ValidatePlan(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO production_plans
		(id, line_id, product_id, planned_quantity, start_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			line_id = excluded.line_id,
			product_id = excluded.product_id,
			planned_quantity = excluded.planned_quantity,
			start_date = excluded.start_date,
			status = excluded.status,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		string(p.ID), string(p.LineID), string(p.ProductID),
		p.PlannedQuantity, string(p.StartDate), string(p.Status), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID.
func (s *Store) GetPlan(ctx context.Context, id metrics.PlanID) (metrics.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, line_id, product_id, planned_quantity, start_date, status
		FROM production_plans
		WHERE id = ?`, string(id))

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return metrics.ProductionPlan{}, store.ErrNotFound
	}
	if err != nil {
		return metrics.ProductionPlan{}, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// DeletePlan removes a plan, returning ErrNotFound for unknown IDs.
func (s *Store) DeletePlan(ctx context.Context, id metrics.PlanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteOne(ctx, "DELETE FROM production_plans WHERE id = ?", string(id))
}

// Plans returns every plan ordered by ID. Status filtering happens in the
// engine via PlanFilter.
func (s *Store) Plans(ctx context.Context) ([]metrics.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, line_id, product_id, planned_quantity, start_date, status
		FROM production_plans
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []metrics.ProductionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func scanPlan(row rowScanner) (metrics.ProductionPlan, error) {
	var p metrics.ProductionPlan
	var id, lineID, productID, startDate, status string

	err := row.Scan(&id, &lineID, &productID, &p.PlannedQuantity, &startDate, &status)
	if err != nil {
		return p, err
	}

	p.ID = metrics.PlanID(id)
	p.LineID = metrics.LineID(lineID)
	p.ProductID = metrics.ProductID(productID)
	p.StartDate = metrics.DateKey(startDate)
	p.Status = metrics.PlanStatus(status)
	return p, nil
}

// =============================================================================
// COST-CENTER LEDGER
// =============================================================================

// SaveCostCenter inserts or replaces a cost center by ID.
func (s *Store) SaveCostCenter(ctx context.Context, c metrics.CostCenter) error {
	if err := store.ValidateCostCenter(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO cost_centers (id, name, type, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			active = excluded.active
	`

	_, err := s.db.ExecContext(ctx, query,
		string(c.ID), c.Name, string(c.Type), c.Active,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save cost center: %w", err)
	}
	return nil
}

// DeleteCostCenter removes a center, returning ErrNotFound for unknown IDs.
func (s *Store) DeleteCostCenter(ctx context.Context, id metrics.CenterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteOne(ctx, "DELETE FROM cost_centers WHERE id = ?", string(id))
}

// CostCenters returns all centers ordered by ID.
func (s *Store) CostCenters(ctx context.Context) ([]metrics.CostCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, type, active FROM cost_centers ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	var centers []metrics.CostCenter
	for rows.Next() {
		var c metrics.CostCenter
		var id, ctype string
		if err := rows.Scan(&id, &c.Name, &ctype, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan cost center: %w", err)
		}
		c.ID = metrics.CenterID(id)
		c.Type = metrics.CostCenterType(ctype)
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

// SaveCostCenterValue upserts the amount for a (center, month).
func (s *Store) SaveCostCenterValue(ctx context.Context, v metrics.CostCenterValue) error {
	if err := store.ValidateCostCenterValue(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO cost_center_values (center_id, month, amount)
		VALUES (?, ?, ?)
		ON CONFLICT(center_id, month) DO UPDATE SET
			amount = excluded.amount
	`

	_, err := s.db.ExecContext(ctx, query,
		string(v.CenterID), string(v.Month), v.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cost center value: %w", err)
	}
	return nil
}

// CostCenterValues returns all monthly values ordered by center then month.
func (s *Store) CostCenterValues(ctx context.Context) ([]metrics.CostCenterValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT center_id, month, amount FROM cost_center_values ORDER BY center_id, month",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost center values: %w", err)
	}
	defer rows.Close()

	var values []metrics.CostCenterValue
	for rows.Next() {
		var v metrics.CostCenterValue
		var centerID, month, amount string
		if err := rows.Scan(&centerID, &month, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan cost center value: %w", err)
		}
		v.CenterID = metrics.CenterID(centerID)
		v.Month = metrics.MonthKey(month)
		v.Amount = metrics.MustParseDecimal(amount)
		values = append(values, v)
	}
	return values, rows.Err()
}

// SaveCostAllocation upserts the percent for a (center, line, month).
func (s *Store) SaveCostAllocation(ctx context.Context, a metrics.CostAllocation) error {
	if err := store.ValidateCostAllocation(a); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO cost_allocations (center_id, line_id, month, percent)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(center_id, line_id, month) DO UPDATE SET
			percent = excluded.percent
	`

	_, err := s.db.ExecContext(ctx, query,
		string(a.CenterID), string(a.LineID), string(a.Month), a.Percent,
	)
	if err != nil {
		return fmt.Errorf("failed to save cost allocation: %w", err)
	}
	return nil
}

// CostAllocations returns all allocations ordered by center, line, month.
func (s *Store) CostAllocations(ctx context.Context) ([]metrics.CostAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT center_id, line_id, month, percent FROM cost_allocations ORDER BY center_id, line_id, month",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost allocations: %w", err)
	}
	defer rows.Close()

	var allocations []metrics.CostAllocation
	for rows.Next() {
		var a metrics.CostAllocation
		var centerID, lineID, month string
		if err := rows.Scan(&centerID, &lineID, &month, &a.Percent); err != nil {
			return nil, fmt.Errorf("failed to scan cost allocation: %w", err)
		}
		a.CenterID = metrics.CenterID(centerID)
		a.LineID = metrics.LineID(lineID)
		a.Month = metrics.MonthKey(month)
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// =============================================================================
// LABOR SETTINGS
// =============================================================================

// SaveLaborSettings replaces the single labor-parameters row.
func (s *Store) SaveLaborSettings(ctx context.Context, l metrics.LaborSettings) error {
	if err := store.ValidateLaborSettings(l); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO labor_settings (id, hourly_rate, max_workers, daily_hours, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hourly_rate = excluded.hourly_rate,
			max_workers = excluded.max_workers,
			daily_hours = excluded.daily_hours,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		l.HourlyRate.String(), l.MaxWorkers, l.DailyHours,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save labor settings: %w", err)
	}
	return nil
}

// LaborSettings returns the stored labor parameters, or the zero value when
// none were saved yet. The engine degrades zero labor inputs to zero costs.
func (s *Store) LaborSettings(ctx context.Context) (metrics.LaborSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var l metrics.LaborSettings
	var rate string

	err := s.db.QueryRowContext(ctx,
		"SELECT hourly_rate, max_workers, daily_hours FROM labor_settings WHERE id = 1",
	).Scan(&rate, &l.MaxWorkers, &l.DailyHours)

	if err == sql.ErrNoRows {
		return metrics.LaborSettings{}, nil
	}
	if err != nil {
		return metrics.LaborSettings{}, fmt.Errorf("failed to get labor settings: %w", err)
	}

	l.HourlyRate = metrics.MustParseDecimal(rate)
	return l, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces a supervisor account by ID.
func (s *Store) SaveEmployee(ctx context.Context, e store.Employee) error {
	if err := store.ValidateEmployee(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, active, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active
	`

	_, err := s.db.ExecContext(ctx, query,
		string(e.ID), e.Name, e.Active,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// Employees returns all accounts ordered by ID.
func (s *Store) Employees(ctx context.Context) ([]store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, active FROM employees ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []store.Employee
	for rows.Next() {
		var e store.Employee
		var id string
		if err := rows.Scan(&id, &e.Name, &e.Active); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.ID = metrics.EmployeeID(id)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// CountDisabledEmployees feeds the dashboard's informational alert.
func (s *Store) CountDisabledEmployees(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE active = 0",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count disabled employees: %w", err)
	}
	return count, nil
}

// =============================================================================
// DASHBOARD SETTINGS
// =============================================================================

// SaveSettings persists the resolved settings document as JSON.
func (s *Store) SaveSettings(ctx context.Context, cfg settings.Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO dashboard_settings (id, config_json, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings returns the stored document, or defaults when none was saved.
func (s *Store) Settings(ctx context.Context) (settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT config_json FROM dashboard_settings WHERE id = 1",
	).Scan(&payload)

	if err == sql.ErrNoRows {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var cfg settings.Settings
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// deleteOne runs a single-row delete and maps zero affected rows to
// ErrNotFound. Callers hold the write lock.
func (s *Store) deleteOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
