package slo

import (
	"math"
	"time"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	er "github.com/mcorbin/corbierror"
)

// CalculateErrorBudget computes the error budget for one SLO over a window.
// totalEvents and goodEvents are the observed counts for the window,
// windowHours its length. The function is pure and safe for concurrent use.
func CalculateErrorBudget(definition aggregates.SLODefinition, totalEvents int64, goodEvents int64, windowHours float64) (aggregates.ErrorBudget, error) {
	if totalEvents < 0 {
		return aggregates.ErrorBudget{}, er.Newf("invalid total events count %d", er.BadRequest, true, totalEvents)
	}
	if goodEvents < 0 || goodEvents > totalEvents {
		return aggregates.ErrorBudget{}, er.Newf("invalid good events count %d for %d total events", er.BadRequest, true, goodEvents, totalEvents)
	}
	if windowHours <= 0 {
		return aggregates.ErrorBudget{}, er.New("the evaluation window should be positive", er.BadRequest, true)
	}

	// the epsilon absorbs the float64 rounding of (100 - target) so an
	// exactly-integer budget does not floor down to its predecessor
	totalBudget := int64(math.Floor(float64(totalEvents)*(100-definition.Target)/100 + 1e-9))
	badEvents := totalEvents - goodEvents
	consumed := badEvents
	if consumed > totalBudget {
		consumed = totalBudget
	}
	remaining := totalBudget - consumed

	budget := aggregates.ErrorBudget{
		TotalBudget:     totalBudget,
		ConsumedBudget:  consumed,
		RemainingBudget: remaining,
		// empty window: report the budget as untouched
		ConsumedPercentage:  0,
		RemainingPercentage: 100,
		BurnRate:            float64(badEvents) / windowHours,
	}
	if totalBudget > 0 {
		budget.ConsumedPercentage = float64(consumed) / float64(totalBudget) * 100
		budget.RemainingPercentage = 100 - budget.ConsumedPercentage
	}
	if budget.BurnRate > 0 && remaining > 0 {
		hoursLeft := float64(remaining) / budget.BurnRate
		depletion := time.Now().UTC().Add(time.Duration(hoursLeft * float64(time.Hour)))
		budget.EstimatedDepletion = &depletion
	}
	return budget, nil
}
