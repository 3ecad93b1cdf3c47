package metrics_test

import (
	"strings"
	"testing"

	"github.com/floorsight/production-engine/metrics"
)

func defaultThresholds() metrics.AlertThresholds {
	return metrics.AlertThresholds{
		WastePercent:        5,
		CostVariancePercent: 10,
		EfficiencyPercent:   75,
		PlanDelayDays:       3,
	}
}

// =============================================================================
// RULE ORDER
// =============================================================================

func TestBuildAlerts_FixedOrder(t *testing.T) {
	// GIVEN: Every rule firing at once
	// THEN: Feed order is cost, plan, waste, efficiency, accounts

	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds:       defaultThresholds(),
		CostVariance:     22.4,
		PlanDelayDays:    4,
		WasteRatio:       8.1,
		Efficiency:       60,
		DisabledAccounts: 2,
	})

	if len(alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(alerts))
	}
	icons := []string{"dollar-sign", "clock", "trash-2", "activity", "user-x"}
	for i, icon := range icons {
		if alerts[i].Icon != icon {
			t.Errorf("position %d: expected %s, got %s", i, icon, alerts[i].Icon)
		}
	}
	if alerts[0].Type != metrics.AlertDanger || alerts[2].Type != metrics.AlertDanger {
		t.Error("cost and waste breaches must read as danger")
	}
	if alerts[1].Type != metrics.AlertWarning || alerts[3].Type != metrics.AlertWarning {
		t.Error("plan and efficiency breaches must read as warning")
	}
	if alerts[4].Type != metrics.AlertInfo {
		t.Error("disabled accounts is informational")
	}
}

func TestBuildAlerts_AllNormalFallback(t *testing.T) {
	// GIVEN: Nothing out of range
	// THEN: Exactly one reassuring info entry, never an empty feed

	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds:   defaultThresholds(),
		CostVariance: 2,
		WasteRatio:   1,
		Efficiency:   90,
	})

	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != metrics.AlertInfo || alerts[0].Icon != "check-circle" {
		t.Errorf("unexpected fallback alert: %+v", alerts[0])
	}
	if alerts[0].Message != "All production indicators are within normal ranges" {
		t.Errorf("unexpected message: %s", alerts[0].Message)
	}
}

// =============================================================================
// INDIVIDUAL RULES
// =============================================================================

func TestBuildAlerts_CostOverrunOnly(t *testing.T) {
	// Savings read as good news, not an alarm.
	in := metrics.AlertInput{
		Thresholds:   defaultThresholds(),
		CostVariance: -22.4,
		Efficiency:   90,
	}
	alerts := metrics.BuildAlerts(in)
	if len(alerts) != 1 || alerts[0].Icon != "check-circle" {
		t.Errorf("negative variance must not alarm: %+v", alerts)
	}

	in.CostVariance = 22.4
	alerts = metrics.BuildAlerts(in)
	if len(alerts) != 1 || alerts[0].Icon != "dollar-sign" {
		t.Fatalf("expected a cost alert, got %+v", alerts)
	}
	if !strings.Contains(alerts[0].Message, "22.4%") || !strings.Contains(alerts[0].Message, "10%") {
		t.Errorf("message must carry the variance and the limit: %s", alerts[0].Message)
	}
}

func TestBuildAlerts_CostAtThresholdStaysQuiet(t *testing.T) {
	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds:   defaultThresholds(),
		CostVariance: 10,
		Efficiency:   90,
	})
	if alerts[0].Icon != "check-circle" {
		t.Errorf("variance at exactly the limit must not alarm: %+v", alerts)
	}
}

func TestBuildAlerts_PlanDelay(t *testing.T) {
	in := metrics.AlertInput{
		Thresholds:    defaultThresholds(),
		PlanDelayDays: 3,
		Efficiency:    90,
	}
	alerts := metrics.BuildAlerts(in)
	if len(alerts) != 1 || alerts[0].Icon != "clock" {
		t.Fatalf("delay at the threshold must alarm, got %+v", alerts)
	}
	if alerts[0].Message != "Production plan is running 3 days behind schedule" {
		t.Errorf("unexpected message: %s", alerts[0].Message)
	}

	in.PlanDelayDays = 2
	alerts = metrics.BuildAlerts(in)
	if alerts[0].Icon != "check-circle" {
		t.Errorf("delay under the threshold must not alarm: %+v", alerts)
	}
}

func TestBuildAlerts_WasteEscalation(t *testing.T) {
	// GIVEN: A 5% waste threshold
	// THEN: 3.9% stays quiet, 4% (80% of threshold) warns, above 5% dangers

	in := metrics.AlertInput{Thresholds: defaultThresholds(), Efficiency: 90}

	in.WasteRatio = 3.9
	if alerts := metrics.BuildAlerts(in); alerts[0].Icon != "check-circle" {
		t.Errorf("3.9%% must stay quiet: %+v", alerts)
	}

	in.WasteRatio = 4
	alerts := metrics.BuildAlerts(in)
	if alerts[0].Icon != "trash-2" || alerts[0].Type != metrics.AlertWarning {
		t.Errorf("4%% must warn: %+v", alerts)
	}
	if !strings.Contains(alerts[0].Message, "approaching") {
		t.Errorf("warning must read as approaching: %s", alerts[0].Message)
	}

	in.WasteRatio = 5.1
	alerts = metrics.BuildAlerts(in)
	if alerts[0].Icon != "trash-2" || alerts[0].Type != metrics.AlertDanger {
		t.Errorf("5.1%% must read as danger: %+v", alerts)
	}
	if !strings.Contains(alerts[0].Message, "exceeds") {
		t.Errorf("danger must read as exceeded: %s", alerts[0].Message)
	}
}

func TestBuildAlerts_EfficiencyBelowTarget(t *testing.T) {
	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds: defaultThresholds(),
		Efficiency: 74,
	})
	if len(alerts) != 1 || alerts[0].Icon != "activity" {
		t.Fatalf("expected an efficiency alert, got %+v", alerts)
	}
	if alerts[0].Message != "Efficiency 74% is below the 75% target" {
		t.Errorf("unexpected message: %s", alerts[0].Message)
	}
}

func TestBuildAlerts_DisabledAccounts(t *testing.T) {
	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds:       defaultThresholds(),
		Efficiency:       90,
		DisabledAccounts: 3,
	})
	if len(alerts) != 1 || alerts[0].Icon != "user-x" || alerts[0].Type != metrics.AlertInfo {
		t.Fatalf("expected an account notice, got %+v", alerts)
	}
}

func TestBuildAlerts_ZeroThresholdDisablesRule(t *testing.T) {
	// An unset threshold means the rule is off, not "alert on everything".
	alerts := metrics.BuildAlerts(metrics.AlertInput{
		Thresholds:   metrics.AlertThresholds{},
		CostVariance: 500,
		WasteRatio:   90,
		Efficiency:   1,
	})
	if len(alerts) != 1 || alerts[0].Icon != "check-circle" {
		t.Errorf("zeroed thresholds must disable the rules: %+v", alerts)
	}
}
