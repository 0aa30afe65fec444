package database

import (
	"context"
	"fmt"
	"time"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
)

type dbSLODefinition struct {
	ID          string
	Name        string
	Description *string
	Labels      *string
	Target      float64
	Window      string `db:"slo_window"`
	MetricKind  string `db:"metric_kind"`
	Threshold   *float64
	Unit        *string
	CreatedAt   time.Time `db:"created_at"`
}

func toSLODefinition(definition dbSLODefinition) (*aggregates.SLODefinition, error) {
	labels, err := stringToLabels(definition.Labels)
	if err != nil {
		return nil, err
	}
	result := &aggregates.SLODefinition{
		ID:          definition.ID,
		Name:        definition.Name,
		Description: definition.Description,
		Labels:      labels,
		Target:      definition.Target,
		Window:      aggregates.SLOWindow(definition.Window),
		MetricKind:  aggregates.MetricKind(definition.MetricKind),
		Threshold:   definition.Threshold,
		CreatedAt:   definition.CreatedAt,
	}
	if definition.Unit != nil {
		result.Unit = *definition.Unit
	}
	return result, nil
}

// CreateOrUpdateSLODefinition upserts a definition, keyed by its name.
func (c *Database) CreateOrUpdateSLODefinition(ctx context.Context, definition aggregates.SLODefinition) error {
	labels, err := labelsToString(definition.Labels)
	if err != nil {
		return err
	}
	data := dbSLODefinition{
		ID:          definition.ID,
		Name:        definition.Name,
		Description: definition.Description,
		Labels:      labels,
		Target:      definition.Target,
		Window:      string(definition.Window),
		MetricKind:  string(definition.MetricKind),
		Threshold:   definition.Threshold,
		CreatedAt:   definition.CreatedAt,
	}
	if definition.Unit != "" {
		data.Unit = &definition.Unit
	}
	result, err := c.db.NamedExecContext(ctx,
		`INSERT INTO slo_definition (id, name, description, labels, target, slo_window, metric_kind, threshold, unit, created_at)
		 VALUES (:id, :name, :description, :labels, :target, :slo_window, :metric_kind, :threshold, :unit, :created_at)
		 ON CONFLICT (name) DO UPDATE SET
		 description=EXCLUDED.description, labels=EXCLUDED.labels, target=EXCLUDED.target,
		 slo_window=EXCLUDED.slo_window, metric_kind=EXCLUDED.metric_kind, threshold=EXCLUDED.threshold, unit=EXCLUDED.unit`,
		data)
	if err != nil {
		return fmt.Errorf("fail to save SLO definition %s: %w", definition.Name, err)
	}
	return checkResult(result, 1)
}

func (c *Database) ListSLODefinitions(ctx context.Context) ([]*aggregates.SLODefinition, error) {
	definitions := []dbSLODefinition{}
	err := c.db.SelectContext(ctx, &definitions, "SELECT id, name, description, labels, target, slo_window, metric_kind, threshold, unit, created_at FROM slo_definition")
	if err != nil {
		return nil, err
	}
	result := []*aggregates.SLODefinition{}
	for i := range definitions {
		definition, err := toSLODefinition(definitions[i])
		if err != nil {
			return nil, err
		}
		result = append(result, definition)
	}
	return result, nil
}

func (c *Database) DeleteSLODefinition(ctx context.Context, name string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM slo_definition WHERE name=$1", name)
	if err != nil {
		return err
	}
	return checkResult(result, 1)
}
