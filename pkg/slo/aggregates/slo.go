package aggregates

import (
	"time"

	er "github.com/mcorbin/corbierror"
)

type MetricKind string

const (
	MetricKindAvailability MetricKind = "availability"
	MetricKindLatency      MetricKind = "latency"
	MetricKindErrorRate    MetricKind = "error_rate"
	MetricKindSaturation   MetricKind = "saturation"
)

func (k MetricKind) Validate() error {
	switch k {
	case MetricKindAvailability, MetricKindLatency, MetricKindErrorRate, MetricKindSaturation:
		return nil
	}
	return er.Newf("invalid metric kind %s", er.BadRequest, true, string(k))
}

type SLOWindow string

const (
	WindowHourly    SLOWindow = "hourly"
	WindowDaily     SLOWindow = "daily"
	WindowWeekly    SLOWindow = "weekly"
	WindowMonthly   SLOWindow = "monthly"
	WindowRolling30 SLOWindow = "rolling_30d"
)

func (w SLOWindow) Validate() error {
	switch w {
	case WindowHourly, WindowDaily, WindowWeekly, WindowMonthly, WindowRolling30:
		return nil
	}
	return er.Newf("invalid SLO window %s", er.BadRequest, true, string(w))
}

type AlertLevel string

const (
	AlertLevelOK       AlertLevel = "ok"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// SLODefinition is immutable once registered. The window documents the
// intended evaluation cadence and does not change the budget math.
type SLODefinition struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" validate:"required,max=255"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=255"`
	Labels      map[string]string `json:"labels,omitempty"`
	Target      float64           `json:"target" validate:"required,gt=0,lte=100"`
	Window      SLOWindow         `json:"window" validate:"required"`
	MetricKind  MetricKind        `json:"metric-kind" validate:"required"`
	Threshold   *float64          `json:"threshold,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	CreatedAt   time.Time         `json:"created-at"`
}

// ErrorBudget is recomputed on every evaluation and never persisted.
type ErrorBudget struct {
	TotalBudget         int64   `json:"total-budget"`
	ConsumedBudget      int64   `json:"consumed-budget"`
	RemainingBudget     int64   `json:"remaining-budget"`
	ConsumedPercentage  float64 `json:"consumed-percentage"`
	RemainingPercentage float64 `json:"remaining-percentage"`
	// BurnRate is expressed in bad events per hour.
	BurnRate float64 `json:"burn-rate"`
	// EstimatedDepletion is only set when the budget is burning and some
	// budget remains. Absent means "no meaningful ETA", not "never".
	EstimatedDepletion *time.Time `json:"estimated-depletion,omitempty"`
}

// SLOStatus is the latest known state for one SLO key.
type SLOStatus struct {
	Definition          SLODefinition `json:"definition"`
	Timestamp           time.Time     `json:"timestamp"`
	CurrentValue        float64       `json:"current-value"`
	TargetValue         float64       `json:"target-value"`
	Compliance          bool          `json:"compliance"`
	ConsumedPercentage  float64       `json:"error-budget-consumed-percent"`
	RemainingPercentage float64       `json:"error-budget-remaining-percent"`
	BurnRate            float64       `json:"error-budget-burn-rate"`
	EstimatedDepletion  *time.Time    `json:"estimated-depletion,omitempty"`
	AlertLevel          AlertLevel    `json:"alert-level"`
}

// BurnRateAlert is the evaluation of one fixed monitoring window.
type BurnRateAlert struct {
	Window      string        `json:"window"`
	Threshold   float64       `json:"threshold"`
	CurrentRate float64       `json:"current-rate"`
	NormalRate  float64       `json:"normal-rate"`
	Alert       bool          `json:"alert"`
	Severity    AlertSeverity `json:"severity"`
}

// Summary counts stored statuses by alert level.
type Summary struct {
	Total    int `json:"total"`
	OK       int `json:"ok"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}
