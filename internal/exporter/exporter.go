package exporter

import (
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	"github.com/prometheus/client_golang/prometheus"
)

var statusLabels = []string{"slo_name", "slo_type", "slo_window"}

// Exporter translates SLO statuses into Prometheus metrics. The metric
// names and label set are a wire contract with downstream dashboards.
type Exporter struct {
	compliance      *prometheus.GaugeVec
	currentValue    *prometheus.GaugeVec
	targetValue     *prometheus.GaugeVec
	budgetRemaining *prometheus.GaugeVec
	budgetConsumed  *prometheus.GaugeVec
	burnRate        *prometheus.GaugeVec
	violationsTotal *prometheus.CounterVec
}

func New(registry *prometheus.Registry) (*Exporter, error) {
	exporter := &Exporter{
		compliance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_slo_compliance",
				Help: "Whether the SLO is currently met (1) or violated (0)",
			},
			statusLabels),
		currentValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_slo_current_value",
				Help: "Latest observed metric value for the SLO",
			},
			statusLabels),
		targetValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_slo_target_value",
				Help: "Target (or latency threshold) of the SLO",
			},
			statusLabels),
		budgetRemaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_error_budget_remaining_percent",
				Help: "Percentage of the error budget still available",
			},
			statusLabels),
		budgetConsumed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_error_budget_consumed_percent",
				Help: "Percentage of the error budget already consumed",
			},
			statusLabels),
		burnRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "appclacks_error_budget_burn_rate",
				Help: "Error budget consumption rate in bad events per hour",
			},
			statusLabels),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appclacks_slo_violations_total",
				Help: "Count the number of evaluations reporting a violated SLO",
			},
			statusLabels),
	}
	for _, collector := range []prometheus.Collector{
		exporter.compliance,
		exporter.currentValue,
		exporter.targetValue,
		exporter.budgetRemaining,
		exporter.budgetConsumed,
		exporter.burnRate,
		exporter.violationsTotal,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return exporter, nil
}

// ObserveStatus refreshes the gauges for one SLO and counts violations.
// Called by the manager on every stored status.
func (e *Exporter) ObserveStatus(status aggregates.SLOStatus) {
	labels := prometheus.Labels{
		"slo_name":   status.Definition.Name,
		"slo_type":   string(status.Definition.MetricKind),
		"slo_window": string(status.Definition.Window),
	}
	complianceValue := float64(0)
	if status.Compliance {
		complianceValue = 1
	}
	e.compliance.With(labels).Set(complianceValue)
	e.currentValue.With(labels).Set(status.CurrentValue)
	e.targetValue.With(labels).Set(status.TargetValue)
	e.budgetRemaining.With(labels).Set(status.RemainingPercentage)
	e.budgetConsumed.With(labels).Set(status.ConsumedPercentage)
	e.burnRate.With(labels).Set(status.BurnRate)
	if !status.Compliance {
		e.violationsTotal.With(labels).Inc()
	}
}
