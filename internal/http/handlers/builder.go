package handlers

import (
	"context"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
)

type SLOManager interface {
	RegisterSLO(ctx context.Context, definition aggregates.SLODefinition) error
	UnregisterSLO(ctx context.Context, name string) error
	UpdateSLOStatus(name string, currentValue float64, totalEvents int64, goodEvents int64, windowHours float64) (aggregates.SLOStatus, error)
	GetSLO(name string) (aggregates.SLODefinition, error)
	GetSLOStatus(name string) (aggregates.SLOStatus, error)
	GetSLOBurnRates(name string) ([]aggregates.BurnRateAlert, error)
	GetAllSLOs() []aggregates.SLODefinition
	GetAllSLOStatuses() []aggregates.SLOStatus
	GetSummary() aggregates.Summary
	HasCriticalSLOs() bool
}

type Builder struct {
	manager SLOManager
}

func NewBuilder(manager SLOManager) *Builder {
	return &Builder{
		manager: manager,
	}
}
