package slo

import (
	"time"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
)

// EvaluateSLO builds the status of one SLO from the current metric value and
// a computed error budget. Pure and safe for concurrent use.
//
// The comparison direction depends on the metric kind: availability and
// error rate SLOs pass when the value is at least the target, latency SLOs
// pass when the value stays under their threshold. A latency SLO without a
// threshold falls back to the availability rule, which inverts the
// comparison direction: higher values are then treated as better.
func EvaluateSLO(definition aggregates.SLODefinition, currentValue float64, budget aggregates.ErrorBudget) aggregates.SLOStatus {
	compliance := false
	targetValue := definition.Target
	switch {
	case definition.MetricKind == aggregates.MetricKindLatency && definition.Threshold != nil:
		targetValue = *definition.Threshold
		compliance = currentValue <= targetValue
	default:
		compliance = currentValue >= definition.Target
	}

	alertLevel := aggregates.AlertLevelOK
	if !compliance || budget.RemainingPercentage <= 0 {
		alertLevel = aggregates.AlertLevelCritical
	} else if budget.RemainingPercentage <= 25 {
		alertLevel = aggregates.AlertLevelWarning
	}

	return aggregates.SLOStatus{
		Definition:          definition,
		Timestamp:           time.Now().UTC(),
		CurrentValue:        currentValue,
		TargetValue:         targetValue,
		Compliance:          compliance,
		ConsumedPercentage:  budget.ConsumedPercentage,
		RemainingPercentage: budget.RemainingPercentage,
		BurnRate:            budget.BurnRate,
		EstimatedDepletion:  budget.EstimatedDepletion,
		AlertLevel:          alertLevel,
	}
}
