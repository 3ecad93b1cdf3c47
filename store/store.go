/*
Package store defines the record-store contract shared by its backends.

PURPOSE:
  One place for the error vocabulary, the employee record and the record
  validation rules. The memory and sqlite backends both speak this contract;
  the API layer classifies these errors into HTTP status codes.

ERROR CATEGORIES:
  1. Lookup errors  - ErrNotFound for missing records
  2. Write errors   - ErrDuplicateID, ErrInvalidRecord
  3. Validation     - ValidationError carries the offending field

USAGE:
  if errors.Is(err, store.ErrNotFound) {
      // 404
  }
  var verr *store.ValidationError
  if errors.As(err, &verr) {
      // 400 with verr.Field
  }

SEE ALSO:
  - store/memory: Map-backed implementation for tests and demos
  - store/sqlite: SQLite implementation backing the server
*/
package store

import (
	"errors"
	"fmt"

	"github.com/floorsight/production-engine/metrics"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when creating a record whose ID is taken.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidRecord is returned when a record fails validation. Wrapped
	// by ValidationError, which names the field.
	ErrInvalidRecord = errors.New("invalid record")
)

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRecord }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// =============================================================================
// EMPLOYEE RECORD
// =============================================================================

// Employee is a supervisor account. Disabled accounts keep their report
// history but surface in the dashboard's informational alert.
type Employee struct {
	ID     metrics.EmployeeID
	Name   string
	Active bool
}

// =============================================================================
// RECORD VALIDATION - Shared by every backend's write path
// =============================================================================

// ValidateReport rejects reports the engine's invariants could not survive.
func ValidateReport(r metrics.ProductionReport) error {
	if r.ID == "" {
		return invalid("id", "must not be empty")
	}
	if !r.Date.Valid() {
		return invalid("date", "must be a YYYY-MM-DD day key")
	}
	if r.LineID == "" {
		return invalid("lineId", "must not be empty")
	}
	if r.ProductID == "" {
		return invalid("productId", "must not be empty")
	}
	if r.QuantityProduced < 0 {
		return invalid("quantityProduced", "must not be negative")
	}
	if r.QuantityWaste < 0 {
		return invalid("quantityWaste", "must not be negative")
	}
	if r.WorkersCount < 0 {
		return invalid("workersCount", "must not be negative")
	}
	if r.WorkHours < 0 {
		return invalid("workHours", "must not be negative")
	}
	return nil
}

// ValidatePlan rejects plans with no identity, no target or a bad date.
func ValidatePlan(p metrics.ProductionPlan) error {
	if p.ID == "" {
		return invalid("id", "must not be empty")
	}
	if p.LineID == "" {
		return invalid("lineId", "must not be empty")
	}
	if p.ProductID == "" {
		return invalid("productId", "must not be empty")
	}
	if p.PlannedQuantity <= 0 {
		return invalid("plannedQuantity", "must be positive")
	}
	if !p.StartDate.Valid() {
		return invalid("startDate", "must be a YYYY-MM-DD day key")
	}
	switch p.Status {
	case metrics.StatusPlanned, metrics.StatusInProgress, metrics.StatusCompleted,
		metrics.StatusPaused, metrics.StatusCancelled:
	default:
		return invalid("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	return nil
}

// ValidateConfig rejects standard-time configs without a usable pair.
func ValidateConfig(c metrics.LineProductConfig) error {
	if c.LineID == "" {
		return invalid("lineId", "must not be empty")
	}
	if c.ProductID == "" {
		return invalid("productId", "must not be empty")
	}
	if c.StandardMinutes <= 0 {
		return invalid("standardMinutes", "must be positive")
	}
	return nil
}

// ValidateCostCenter rejects centers without identity or type.
func ValidateCostCenter(c metrics.CostCenter) error {
	if c.ID == "" {
		return invalid("id", "must not be empty")
	}
	if c.Name == "" {
		return invalid("name", "must not be empty")
	}
	if c.Type != metrics.CostDirect && c.Type != metrics.CostIndirect {
		return invalid("type", fmt.Sprintf("unknown cost center type %q", c.Type))
	}
	return nil
}

// ValidateCostCenterValue rejects values without a center, month or amount.
func ValidateCostCenterValue(v metrics.CostCenterValue) error {
	if v.CenterID == "" {
		return invalid("centerId", "must not be empty")
	}
	if len(v.Month) != 7 {
		return invalid("month", "must be a YYYY-MM month key")
	}
	if v.Amount.IsNegative() {
		return invalid("amount", "must not be negative")
	}
	return nil
}

// ValidateCostAllocation rejects allocations outside the percentage range.
func ValidateCostAllocation(a metrics.CostAllocation) error {
	if a.CenterID == "" {
		return invalid("centerId", "must not be empty")
	}
	if a.LineID == "" {
		return invalid("lineId", "must not be empty")
	}
	if len(a.Month) != 7 {
		return invalid("month", "must be a YYYY-MM month key")
	}
	if a.Percent < 0 || a.Percent > 100 {
		return invalid("percent", "must be within [0, 100]")
	}
	return nil
}

// ValidateLaborSettings rejects impossible labor parameters.
func ValidateLaborSettings(l metrics.LaborSettings) error {
	if l.HourlyRate.IsNegative() {
		return invalid("hourlyRate", "must not be negative")
	}
	if l.MaxWorkers < 0 {
		return invalid("maxWorkers", "must not be negative")
	}
	if l.DailyHours < 0 || l.DailyHours > 24 {
		return invalid("dailyHours", "must be within [0, 24]")
	}
	return nil
}

// ValidateEmployee rejects accounts without identity.
func ValidateEmployee(e Employee) error {
	if e.ID == "" {
		return invalid("id", "must not be empty")
	}
	if e.Name == "" {
		return invalid("name", "must not be empty")
	}
	return nil
}
