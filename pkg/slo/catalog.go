package slo

import (
	"time"

	"github.com/appclacks/slo-server/internal/util"
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
)

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// DefaultCatalog returns the platform SLO definitions seeded into every
// manager before any custom registration.
func DefaultCatalog() []aggregates.SLODefinition {
	now := time.Now().UTC()
	return []aggregates.SLODefinition{
		{
			ID:          util.NewUUID(),
			Name:        "api-availability",
			Description: stringPtr("Availability of the public API"),
			Target:      99.9,
			Window:      aggregates.WindowMonthly,
			MetricKind:  aggregates.MetricKindAvailability,
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "api-latency-p95",
			Description: stringPtr("95th percentile latency of the public API"),
			Target:      99.9,
			Window:      aggregates.WindowDaily,
			MetricKind:  aggregates.MetricKindLatency,
			Threshold:   floatPtr(500),
			Unit:        "ms",
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "api-latency-p99",
			Description: stringPtr("99th percentile latency of the public API"),
			Target:      99.9,
			Window:      aggregates.WindowDaily,
			MetricKind:  aggregates.MetricKindLatency,
			Threshold:   floatPtr(1000),
			Unit:        "ms",
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "api-error-rate",
			Description: stringPtr("Share of API requests answered without a server error"),
			Target:      99.5,
			Window:      aggregates.WindowDaily,
			MetricKind:  aggregates.MetricKindErrorRate,
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "healthcheck-execution-latency-p95",
			Description: stringPtr("95th percentile of healthcheck probe execution time"),
			Target:      99,
			Window:      aggregates.WindowDaily,
			MetricKind:  aggregates.MetricKindLatency,
			Threshold:   floatPtr(30000),
			Unit:        "ms",
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "healthcheck-scheduler-availability",
			Description: stringPtr("Share of healthcheck executions scheduled on time"),
			Target:      99.95,
			Window:      aggregates.WindowRolling30,
			MetricKind:  aggregates.MetricKindAvailability,
			CreatedAt:   now,
		},
		{
			ID:          util.NewUUID(),
			Name:        "pushgateway-ingest-latency-p95",
			Description: stringPtr("95th percentile latency of pushgateway metric ingestion"),
			Target:      99,
			Window:      aggregates.WindowDaily,
			MetricKind:  aggregates.MetricKindLatency,
			Threshold:   floatPtr(200),
			Unit:        "ms",
			CreatedAt:   now,
		},
	}
}
