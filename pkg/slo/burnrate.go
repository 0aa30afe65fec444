package slo

import (
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
)

type burnRateWindow struct {
	window    string
	threshold float64
	severity  aggregates.AlertSeverity
}

// Burn rate factors from the SRE workbook multiwindow alerting table:
// a fast window catches sudden severe outages, the slow one budget leaks.
var burnRateWindows = []burnRateWindow{
	{window: "1h", threshold: 14.4, severity: aggregates.SeverityCritical},
	{window: "6h", threshold: 6.0, severity: aggregates.SeverityCritical},
	{window: "24h", threshold: 3.0, severity: aggregates.SeverityWarning},
}

// CalculateBurnRateAlerts evaluates the budget burn rate against the three
// fixed monitoring windows. It always returns exactly three alerts, in 1h,
// 6h, 24h order. Pure and safe for concurrent use.
func CalculateBurnRateAlerts(definition aggregates.SLODefinition, budget aggregates.ErrorBudget, windowHours float64) []aggregates.BurnRateAlert {
	// the rate consuming the whole budget exactly at the end of the window
	normalRate := float64(budget.TotalBudget) / windowHours
	alerts := make([]aggregates.BurnRateAlert, 0, len(burnRateWindows))
	for _, w := range burnRateWindows {
		alerts = append(alerts, aggregates.BurnRateAlert{
			Window:      w.window,
			Threshold:   w.threshold,
			CurrentRate: budget.BurnRate,
			NormalRate:  normalRate,
			Alert:       budget.BurnRate >= normalRate*w.threshold,
			Severity:    w.severity,
		})
	}
	return alerts
}
