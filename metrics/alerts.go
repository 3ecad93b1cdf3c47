/*
alerts.go - Ordered, threshold-driven alert feed

PURPOSE:
  Evaluates a fixed, ordered list of alert rules against the computed KPIs.
  Each rule appends independently when its condition holds; when nothing
  fires, exactly one synthetic "all normal" info alert is emitted so the
  feed is never empty.

ORDER IS PART OF THE CONTRACT:
  cost variance -> plan delay -> waste -> efficiency -> system info.
  Consumers diff the feed across passes and tests compare it wholesale, so
  rules must not be reordered.

SEE ALSO:
  - health.go: The score displayed beside this feed
  - settings: Threshold values resolved against defaults
*/
package metrics

import "fmt"

// =============================================================================
// ALERT TYPES
// =============================================================================

type AlertType string

const (
	AlertDanger  AlertType = "danger"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

type Alert struct {
	Type    AlertType
	Icon    string
	Message string
}

// AlertThresholds carries the resolved threshold values the rules compare
// against. The settings package produces these; defaults are waste 5%,
// cost variance 10%, efficiency 75%, plan delay 3 days.
type AlertThresholds struct {
	WastePercent        float64
	CostVariancePercent float64
	EfficiencyPercent   float64
	PlanDelayDays       int
}

type AlertInput struct {
	Thresholds AlertThresholds

	CostVariance     float64
	PlanDelayDays    int
	WasteRatio       float64
	Efficiency       float64
	DisabledAccounts int
}

// =============================================================================
// RULE EVALUATION
// =============================================================================

// BuildAlerts walks the rule list in its fixed order and returns the feed.
func BuildAlerts(in AlertInput) []Alert {
	t := in.Thresholds
	var alerts []Alert

	// Cost overrun. Savings (negative variance) never alarm.
	if t.CostVariancePercent > 0 && in.CostVariance > t.CostVariancePercent {
		alerts = append(alerts, Alert{
			Type: AlertDanger,
			Icon: "dollar-sign",
			Message: fmt.Sprintf("Unit cost is %s over standard, beyond the %s limit",
				FormatPercent(in.CostVariance, 1), FormatPercent(t.CostVariancePercent, 0)),
		})
	}

	if t.PlanDelayDays > 0 && in.PlanDelayDays >= t.PlanDelayDays {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Icon:    "clock",
			Message: fmt.Sprintf("Production plan is running %d days behind schedule", in.PlanDelayDays),
		})
	}

	if t.WastePercent > 0 {
		switch {
		case in.WasteRatio > t.WastePercent:
			alerts = append(alerts, Alert{
				Type: AlertDanger,
				Icon: "trash-2",
				Message: fmt.Sprintf("Waste ratio %s exceeds the %s threshold",
					FormatPercent(in.WasteRatio, 1), FormatPercent(t.WastePercent, 0)),
			})
		case in.WasteRatio >= t.WastePercent*0.8:
			alerts = append(alerts, Alert{
				Type: AlertWarning,
				Icon: "trash-2",
				Message: fmt.Sprintf("Waste ratio %s is approaching the %s threshold",
					FormatPercent(in.WasteRatio, 1), FormatPercent(t.WastePercent, 0)),
			})
		}
	}

	if t.EfficiencyPercent > 0 && in.Efficiency < t.EfficiencyPercent {
		alerts = append(alerts, Alert{
			Type: AlertWarning,
			Icon: "activity",
			Message: fmt.Sprintf("Efficiency %s is below the %s target",
				FormatPercent(in.Efficiency, 0), FormatPercent(t.EfficiencyPercent, 0)),
		})
	}

	if in.DisabledAccounts > 0 {
		alerts = append(alerts, Alert{
			Type:    AlertInfo,
			Icon:    "user-x",
			Message: fmt.Sprintf("%d supervisor accounts are disabled", in.DisabledAccounts),
		})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, Alert{
			Type:    AlertInfo,
			Icon:    "check-circle",
			Message: "All production indicators are within normal ranges",
		})
	}
	return alerts
}
