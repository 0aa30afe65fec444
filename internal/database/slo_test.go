package database_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	"github.com/baidubce/bce-sdk-go/util"
	"github.com/stretchr/testify/assert"
)

func TestSLODefinitionCRUD(t *testing.T) {
	description := "availability of the payment service"
	threshold := float64(300)
	labels := map[string]string{"team": "payments", "env": "prod"}
	definition := aggregates.SLODefinition{
		ID:          util.NewUUID(),
		Name:        "payments-availability",
		Description: &description,
		Labels:      labels,
		Target:      99.9,
		Window:      aggregates.WindowMonthly,
		MetricKind:  aggregates.MetricKindAvailability,
		CreatedAt:   time.Now().UTC(),
	}
	err := TestComponent.CreateOrUpdateSLODefinition(context.Background(), definition)
	assert.NoError(t, err)

	definitions, err := TestComponent.ListSLODefinitions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, definitions, 1)
	result := definitions[0]
	if result.ID != definition.ID || result.Name != definition.Name || *result.Description != description || !reflect.DeepEqual(result.Labels, labels) || result.CreatedAt.IsZero() {
		t.Fatalf("Invalid SLO definition returned by ListSLODefinitions\n%+v", result)
	}
	assert.Equal(t, aggregates.MetricKindAvailability, result.MetricKind)
	assert.Equal(t, aggregates.WindowMonthly, result.Window)
	assert.Nil(t, result.Threshold)

	// upsert on the same name
	definition.Target = 99.95
	definition.MetricKind = aggregates.MetricKindLatency
	definition.Threshold = &threshold
	definition.Unit = "ms"
	err = TestComponent.CreateOrUpdateSLODefinition(context.Background(), definition)
	assert.NoError(t, err)

	definitions, err = TestComponent.ListSLODefinitions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, definitions, 1)
	result = definitions[0]
	assert.Equal(t, 99.95, result.Target)
	assert.Equal(t, aggregates.MetricKindLatency, result.MetricKind)
	if assert.NotNil(t, result.Threshold) {
		assert.Equal(t, threshold, *result.Threshold)
	}
	assert.Equal(t, "ms", result.Unit)

	err = TestComponent.DeleteSLODefinition(context.Background(), definition.Name)
	assert.NoError(t, err)

	err = TestComponent.DeleteSLODefinition(context.Background(), definition.Name)
	assert.ErrorContains(t, err, "not found")

	definitions, err = TestComponent.ListSLODefinitions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, definitions, 0)
}
